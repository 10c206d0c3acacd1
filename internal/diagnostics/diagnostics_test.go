package diagnostics

import (
	"testing"

	"github.com/oxhq/apiindex/internal/apimodel"
)

func TestEvaluateMissingDocumentation(t *testing.T) {
	idx := apimodel.NewGoIndex(apimodel.GoApiIndex{
		Packages: []apimodel.GoPackageInfo{
			{Structs: []apimodel.GoStructInfo{{Name: "Widget"}}},
		},
	})
	diags := Evaluate(idx)
	if !hasDiagnostic(diags, MissingDocumentation, "Widget") {
		t.Fatalf("expected SDK001 for undocumented Widget, got %+v", diags)
	}
}

func TestEvaluateEmptyEntryPoint(t *testing.T) {
	idx := apimodel.NewGoIndex(apimodel.GoApiIndex{
		Packages: []apimodel.GoPackageInfo{
			{Structs: []apimodel.GoStructInfo{{Name: "Client", DocComment: "doc", EntryPoint: true}}},
		},
	})
	diags := Evaluate(idx)
	if !hasDiagnostic(diags, EmptyEntryPoint, "Client") {
		t.Fatalf("expected SDK002 for behaviorless entry point, got %+v", diags)
	}
}

func TestEvaluateDeprecatedParameter(t *testing.T) {
	idx := apimodel.NewGoIndex(apimodel.GoApiIndex{
		Packages: []apimodel.GoPackageInfo{
			{
				Structs: []apimodel.GoStructInfo{
					{Name: "OldWidget", DocComment: "doc", IsDeprecated: true},
					{
						Name: "Client", DocComment: "doc", EntryPoint: true,
						Methods: []apimodel.GoFuncInfo{
							{Name: "UseOld", Receiver: "c *Client", Params: []string{"w OldWidget"}, DocComment: "doc"},
						},
					},
				},
			},
		},
	})
	diags := Evaluate(idx)
	if !hasDiagnostic(diags, DeprecatedParameter, "Client") {
		t.Fatalf("expected SDK003 for deprecated-type reference, got %+v", diags)
	}
}

func TestEvaluateDeduplicates(t *testing.T) {
	idx := apimodel.NewGoIndex(apimodel.GoApiIndex{
		Packages: []apimodel.GoPackageInfo{
			{Structs: []apimodel.GoStructInfo{{Name: "Widget"}}},
		},
	})
	upstreamDup := apimodel.Diagnostic{ID: MissingDocumentation, Level: "Info", Target: "Widget", Text: "Widget has no documentation"}
	withUpstream := idx.WithDiagnostics([]apimodel.Diagnostic{upstreamDup})
	diags := Evaluate(withUpstream)
	count := 0
	for _, d := range diags {
		if d.ID == MissingDocumentation && d.Target == "Widget" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected dedup to a single SDK001 for Widget, got %d", count)
	}
}

func TestEvaluateEmptyIndexYieldsEmptyDiagnostics(t *testing.T) {
	idx := apimodel.NewGoIndex(apimodel.GoApiIndex{})
	diags := Evaluate(idx)
	if len(diags) != 0 {
		t.Fatalf("expected empty diagnostics for empty index, got %+v", diags)
	}
}

func hasDiagnostic(diags []apimodel.Diagnostic, id, target string) bool {
	for _, d := range diags {
		if d.ID == id && d.Target == target {
			return true
		}
	}
	return false
}
