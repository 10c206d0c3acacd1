// Package format renders a language-flavored textual stub listing for an
// apimodel.Index, optionally truncated to a character budget in a
// deterministic, priority-ordered way, and optionally annotated with a
// usage-coverage summary (spec.md §4.11).
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/usage"
	"github.com/oxhq/apiindex/internal/xref"
)

const truncationMarker = "... truncated ..."

// truncationHeadroom is the budget reserved so the marker itself always
// fits once emission stops.
const truncationHeadroom = len(truncationMarker) + 8

// Format renders idx as a language-flavored stub listing. When budgetChars
// is positive and the full rendering would exceed it, emits a priority-
// ordered subset followed by a single truncation marker.
func Format(idx apimodel.Index, budgetChars int) (string, bool) {
	return render(idx, budgetChars, nil)
}

// FormatWithCoverage renders idx the same way as Format, prefixed by a
// coverage summary block derived from usageIdx.
func FormatWithCoverage(idx apimodel.Index, usageIdx usage.Index, budgetChars int) (string, bool) {
	return render(idx, budgetChars, &usageIdx)
}

func render(idx apimodel.Index, budgetChars int, usageIdx *usage.Index) (string, bool) {
	tiers := orderedTiers(idx)
	commentPrefix := commentPrefixFor(idx.Language())

	var out strings.Builder
	if usageIdx != nil {
		out.WriteString(coverageSummary(*usageIdx, commentPrefix))
	}

	budgetless := budgetChars <= 0
	remaining := budgetChars
	truncated := false

	for _, tier := range tiers {
		for _, t := range tier {
			stub := renderType(idx, t)
			if !budgetless {
				if len(stub) > remaining-truncationHeadroom {
					truncated = true
					break
				}
				remaining -= len(stub)
			}
			out.WriteString(stub)
		}
		if truncated {
			break
		}
	}

	if truncated {
		out.WriteString(truncationMarker)
		out.WriteString("\n")
	}

	if !truncated && idx.Language() == "go" {
		if raw, ok := idx.(interface{ Raw() apimodel.GoApiIndex }); ok {
			for _, pkg := range raw.Raw().Packages {
				out.WriteString(renderGoPackageLevel(pkg))
			}
		}
	}

	if len(idx.Dependencies()) > 0 {
		out.WriteString(dependencySection(idx.Dependencies(), commentPrefix))
	}

	return out.String(), truncated
}

// orderedTiers returns the five inclusion tiers from spec.md §4.11 in
// emission order: client types, one-hop-reachable types, error types,
// model types, everything else. Each type appears in exactly one tier.
func orderedTiers(idx apimodel.Index) [][]apimodel.NamedType {
	all := idx.AllTypes()
	included := make(map[string]struct{})

	var clientTier []apimodel.NamedType
	for _, t := range all {
		if t.IsClientType() {
			clientTier = append(clientTier, t)
			included[t.TypeName()] = struct{}{}
		}
	}

	graph := xref.BuildDependencyGraph(idx)
	reachableNames := make(map[string]struct{})
	for _, c := range clientTier {
		for ref := range graph[c.TypeName()] {
			if _, already := included[ref]; already {
				continue
			}
			reachableNames[ref] = struct{}{}
		}
	}
	var reachableTier []apimodel.NamedType
	for _, t := range all {
		if _, ok := reachableNames[t.TypeName()]; ok {
			reachableTier = append(reachableTier, t)
			included[t.TypeName()] = struct{}{}
		}
	}

	var errorTier []apimodel.NamedType
	for _, t := range all {
		if _, already := included[t.TypeName()]; already {
			continue
		}
		if t.IsErrorType() {
			errorTier = append(errorTier, t)
			included[t.TypeName()] = struct{}{}
		}
	}

	var modelTier []apimodel.NamedType
	for _, t := range all {
		if _, already := included[t.TypeName()]; already {
			continue
		}
		if t.IsModelType() {
			modelTier = append(modelTier, t)
			included[t.TypeName()] = struct{}{}
		}
	}

	var otherTier []apimodel.NamedType
	for _, t := range all {
		if _, already := included[t.TypeName()]; already {
			continue
		}
		otherTier = append(otherTier, t)
	}

	return [][]apimodel.NamedType{clientTier, reachableTier, errorTier, modelTier, otherTier}
}

func commentPrefixFor(lang string) string {
	switch lang {
	case "python":
		return "#"
	case "typescript", "go", "java", "dotnet":
		return "//"
	default:
		return "//"
	}
}

func renderType(idx apimodel.Index, t apimodel.NamedType) string {
	switch idx.Language() {
	case "dotnet":
		return renderDotNetType(t)
	case "python":
		return renderPythonType(t)
	case "typescript":
		return renderTypeScriptType(idx, t)
	case "go":
		return renderGoType(t)
	case "java":
		return renderJavaType(t)
	default:
		return fmt.Sprintf("%s\n", t.TypeName())
	}
}

func dependencySection(deps []apimodel.DependencyInfo, commentPrefix string) string {
	var b strings.Builder
	b.WriteString(commentPrefix)
	b.WriteString(" Dependency Types\n")
	sorted := make([]apimodel.DependencyInfo, len(deps))
	copy(sorted, deps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Package < sorted[j].Package })
	for _, d := range sorted {
		b.WriteString(commentPrefix)
		b.WriteString(" ")
		b.WriteString(d.Package)
		if len(d.Types) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(d.Types, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// coverageSummary renders the "covered operations grouped by client type"
// and "uncovered API" blocks that precede the stub listing when coverage
// data is available (spec.md §4.11).
func coverageSummary(u usage.Index, commentPrefix string) string {
	var b strings.Builder
	grouped := usage.GroupCoveredByClient(u)

	clientNames := make([]string, 0, len(grouped))
	for name := range grouped {
		clientNames = append(clientNames, name)
	}
	sort.Strings(clientNames)

	if len(u.UncoveredOperations) == 0 && len(clientNames) > 0 {
		b.WriteString(commentPrefix)
		b.WriteString(" All operations are covered\n")
		return b.String()
	}

	for _, name := range clientNames {
		ops := grouped[name]
		b.WriteString(commentPrefix)
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(": ")
		limit := ops
		extra := 0
		if len(ops) > 10 {
			limit = ops[:10]
			extra = len(ops) - 10
		}
		names := make([]string, len(limit))
		for i, op := range limit {
			names[i] = op.Operation
		}
		b.WriteString(strings.Join(names, ", "))
		if extra > 0 {
			fmt.Fprintf(&b, " (+%d more)", extra)
		}
		b.WriteString("\n")
	}

	if len(u.UncoveredOperations) > 0 {
		b.WriteString(commentPrefix)
		b.WriteString(" Uncovered API\n")
		for _, op := range u.UncoveredOperations {
			b.WriteString(commentPrefix)
			b.WriteString(" ")
			b.WriteString(op.ClientType)
			b.WriteString(".")
			b.WriteString(op.Operation)
			if op.Signature != "" {
				b.WriteString(": ")
				b.WriteString(op.Signature)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
