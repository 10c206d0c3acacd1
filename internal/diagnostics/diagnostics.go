// Package diagnostics evaluates the fixed diagnostic rule set against an
// index and merges it with any diagnostics already carried from the
// extractor's raw JSON (spec.md §4.13).
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/tokenizer"
)

const (
	MissingDocumentation = "SDK001"
	EmptyEntryPoint       = "SDK002"
	DeprecatedParameter   = "SDK003"
)

type dedupeKey struct {
	id     string
	target string
	text   string
}

// Evaluate merges idx's upstream diagnostics (carried in the raw extractor
// JSON) with freshly evaluated rule findings, then de-duplicates by
// (id, target_type, text).
func Evaluate(idx apimodel.Index) []apimodel.Diagnostic {
	all := append([]apimodel.Diagnostic{}, idx.Diagnostics()...)
	all = append(all, evaluateRules(idx)...)

	seen := make(map[dedupeKey]struct{}, len(all))
	out := make([]apimodel.Diagnostic, 0, len(all))
	for _, d := range all {
		key := dedupeKey{d.ID, d.Target, d.Text}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

func evaluateRules(idx apimodel.Index) []apimodel.Diagnostic {
	var out []apimodel.Diagnostic
	types := idx.AllTypes()

	deprecated := make(map[string]struct{})
	for _, t := range types {
		if t.IsDeprecatedType() {
			deprecated[t.TypeName()] = struct{}{}
		}
	}

	for _, t := range types {
		if strings.TrimSpace(t.Doc()) == "" {
			out = append(out, apimodel.Diagnostic{
				ID:     MissingDocumentation,
				Level:  "Info",
				Target: t.TypeName(),
				Text:   fmt.Sprintf("%s has no documentation", t.TypeName()),
			})
		}

		if t.IsEntryPoint() {
			if noBehavior(t) {
				out = append(out, apimodel.Diagnostic{
					ID:     EmptyEntryPoint,
					Level:  "Warning",
					Target: t.TypeName(),
					Text:   fmt.Sprintf("%s is an entry point with no operations", t.TypeName()),
				})
			}
		}

		for _, sig := range t.References().Signatures {
			for tok := range tokenizer.Tokenize(sig) {
				// Tokenize already splits on '.' and '/', so a qualified
				// reference like "System.Deprecated.Foo" yields "Foo" as its
				// own token -- the bare-name check below also resolves the
				// qualified form without extra bookkeeping.
				if _, ok := deprecated[tok]; ok {
					out = append(out, apimodel.Diagnostic{
						ID:     DeprecatedParameter,
						Level:  "Warning",
						Target: t.TypeName(),
						Text:   fmt.Sprintf("%s references deprecated type %s", t.TypeName(), tok),
					})
				}
			}
		}
	}

	return out
}

// noBehavior reports whether t has zero behavior-bearing members, the
// condition SDK002 checks via IsClientType's negation when entry_point is
// set: an entry point is "empty" when it could never become a client type.
func noBehavior(t apimodel.NamedType) bool {
	return !t.IsClientType()
}
