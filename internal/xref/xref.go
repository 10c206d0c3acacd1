// Package xref resolves, for each named type in an index, the subset of a
// known-name universe it syntactically references: in its base/implements/
// embeds list, and in its member signatures (spec.md §4.10). It builds on
// internal/tokenizer rather than substring matching so "Error" never
// spuriously matches "ErrorHandler".
package xref

import (
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/tokenizer"
)

// genericOpeners are the glyphs that introduce generic/type arguments
// across the five languages (<T>, [T], or, in Go's base-like embed case,
// none at all -- `(` covers constructor-like base forms seen in some
// extractor raw shapes).
const genericOpeners = "<[("

// headBefore returns s trimmed to the portion before the first generic
// opener, with surrounding whitespace removed. "Iterable<Item>" -> "Iterable".
func headBefore(s string) string {
	if i := strings.IndexAny(s, genericOpeners); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// GetReferencedTypes returns the subset of universe that nt syntactically
// references, allocating a new set.
func GetReferencedTypes(nt apimodel.NamedType, universe map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	CollectInto(out, nt, universe)
	return out
}

// CollectInto clears dst, then fills it with the subset of universe that nt
// syntactically references. Base-like entries (base/implements/embeds)
// contribute only their head -- the portion before a generic opener -- never
// their type arguments. Member signatures are tokenized in full.
func CollectInto(dst map[string]struct{}, nt apimodel.NamedType, universe map[string]struct{}) {
	for k := range dst {
		delete(dst, k)
	}

	rs := nt.References()

	for _, b := range rs.BaseLike {
		head := headBefore(b)
		if head == "" {
			continue
		}
		if _, known := universe[head]; known {
			dst[head] = struct{}{}
		}
	}

	tokens := make(map[string]struct{})
	for _, sig := range rs.Signatures {
		tokenizer.AppendInto(tokens, sig)
	}
	for tok := range tokens {
		if _, known := universe[tok]; known {
			dst[tok] = struct{}{}
		}
	}
}

// BuildTypeUniverse returns the set of every type name in idx, the universe
// the resolver and formatter check referenced tokens against.
func BuildTypeUniverse(idx apimodel.Index) map[string]struct{} {
	universe := make(map[string]struct{})
	for _, t := range idx.AllTypes() {
		universe[t.TypeName()] = struct{}{}
	}
	return universe
}

// BuildDependencyGraph returns a mapping from every known type name to the
// set of known type names it references. Unknown tokens are omitted by
// construction, since CollectInto only ever adds members of universe.
func BuildDependencyGraph(idx apimodel.Index) map[string]map[string]struct{} {
	universe := BuildTypeUniverse(idx)
	graph := make(map[string]map[string]struct{})
	scratch := make(map[string]struct{})
	for _, t := range idx.AllTypes() {
		CollectInto(scratch, t, universe)
		refs := make(map[string]struct{}, len(scratch))
		for k := range scratch {
			refs[k] = struct{}{}
		}
		graph[t.TypeName()] = refs
	}
	return graph
}
