package format

import (
	"strings"
	"testing"

	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/usage"
)

func goFixture() apimodel.Index {
	return apimodel.NewGoIndex(apimodel.GoApiIndex{
		Package: "widgets",
		Packages: []apimodel.GoPackageInfo{
			{
				Name: "widgets",
				Structs: []apimodel.GoStructInfo{
					{
						Name:       "Client",
						EntryPoint: true,
						Methods: []apimodel.GoFuncInfo{
							{Name: "NewClient", Ret: "*Client"},
							{Name: "ListWidgets", Receiver: "c *Client", Ret: "([]Widget, error)"},
						},
					},
					{
						Name:   "Widget",
						Fields: []apimodel.GoFieldInfo{{Name: "ID", Type: "string"}},
					},
				},
				Constants: []apimodel.GoConstInfo{{Name: "DefaultTimeout", Value: "30"}},
			},
		},
	})
}

func TestFormatNoBudgetRendersEverything(t *testing.T) {
	out, truncated := Format(goFixture(), 0)
	if truncated {
		t.Fatal("expected no truncation with zero budget")
	}
	if !strings.Contains(out, "Client") || !strings.Contains(out, "Widget") {
		t.Fatalf("expected both types rendered, got: %s", out)
	}
	if !strings.Contains(out, "func (c *Client) ListWidgets") {
		t.Fatalf("expected method rendered with parenthesized receiver, got: %s", out)
	}
	if !strings.Contains(out, "func NewClient()") {
		t.Fatalf("expected constructor rendered without receiver, got: %s", out)
	}
}

func TestFormatClientTierRendersBeforeModelTier(t *testing.T) {
	out, _ := Format(goFixture(), 0)
	clientIdx := strings.Index(out, "Client")
	widgetIdx := strings.Index(out, "Widget")
	if clientIdx < 0 || widgetIdx < 0 {
		t.Fatal("expected both types present")
	}
	if clientIdx > widgetIdx {
		t.Fatalf("expected client type before model type, got client@%d widget@%d", clientIdx, widgetIdx)
	}
}

func TestFormatTightBudgetTruncates(t *testing.T) {
	out, truncated := Format(goFixture(), 10)
	if !truncated {
		t.Fatal("expected truncation under a tiny budget")
	}
	if !strings.Contains(out, "truncated") {
		t.Fatalf("expected truncation marker, got: %s", out)
	}
}

func TestFormatWithCoverageAllCovered(t *testing.T) {
	u := usage.Index{
		CoveredOperations: []usage.OperationUsage{
			{ClientType: "Client", Operation: "ListWidgets", File: "main.go", Line: 3},
		},
	}
	out, _ := FormatWithCoverage(goFixture(), u, 0)
	if !strings.Contains(out, "All operations are covered") {
		t.Fatalf("expected all-covered summary, got: %s", out)
	}
}

func TestFormatWithCoverageListsUncovered(t *testing.T) {
	u := usage.Index{
		UncoveredOperations: []usage.UncoveredOperation{
			{ClientType: "Client", Operation: "ListWidgets", Signature: "() ([]Widget, error)"},
		},
	}
	out, _ := FormatWithCoverage(goFixture(), u, 0)
	if !strings.Contains(out, "Uncovered API") || !strings.Contains(out, "Client.ListWidgets") {
		t.Fatalf("expected uncovered section, got: %s", out)
	}
}

func TestRenderGoIfaceAndTypeAlias(t *testing.T) {
	idx := apimodel.NewGoIndex(apimodel.GoApiIndex{
		Package: "widgets",
		Packages: []apimodel.GoPackageInfo{{
			Name: "widgets",
			Interfaces: []apimodel.GoIfaceInfo{
				{Name: "Doer", Methods: []apimodel.GoFuncInfo{{Name: "Do", Ret: "error"}}},
			},
			Types: []apimodel.GoTypeAlias{{Name: "ID", Underlying: "string"}},
		}},
	})
	out, _ := Format(idx, 0)
	if !strings.Contains(out, "type Doer interface {") || !strings.Contains(out, "Do() error") {
		t.Fatalf("expected interface rendered with its method, got: %s", out)
	}
	if !strings.Contains(out, "type ID string") {
		t.Fatalf("expected type alias rendered, got: %s", out)
	}
}

func TestRenderTypeScriptInterfaceEnumAndAlias(t *testing.T) {
	idx := apimodel.NewTypeScriptIndex(apimodel.TypeScriptApiIndex{
		Package: "widgets",
		Modules: []apimodel.TSModuleInfo{{
			Name: "index",
			Interfaces: []apimodel.TSInterfaceInfo{{
				Name:       "Options",
				Properties: []apimodel.TSPropertyInfo{{Name: "timeout", Type: "number"}},
			}},
			Enums: []apimodel.TSEnumInfo{{Name: "Color", Values: []string{"Red", "Blue"}}},
			Types: []apimodel.TSTypeAliasInfo{{Name: "Handler", Sig: "(e: Event) => void"}},
		}},
	})
	out, _ := Format(idx, 0)
	if !strings.Contains(out, "export interface Options {") || !strings.Contains(out, "timeout: number;") {
		t.Fatalf("expected interface rendered with its property, got: %s", out)
	}
	if !strings.Contains(out, "export enum Color {") || !strings.Contains(out, "Red,") {
		t.Fatalf("expected enum rendered with its values, got: %s", out)
	}
	if !strings.Contains(out, "export type Handler = (e: Event) => void;") {
		t.Fatalf("expected type alias rendered, got: %s", out)
	}
}

func TestRenderJavaEnum(t *testing.T) {
	idx := apimodel.NewJavaIndex(apimodel.JavaApiIndex{
		Package: "widgets",
		Packages: []apimodel.JavaPackageInfo{{
			Name:  "com.acme.widgets",
			Enums: []apimodel.JavaEnumInfo{{Name: "Status", Values: []string{"ACTIVE", "INACTIVE"}}},
		}},
	})
	out, _ := Format(idx, 0)
	if !strings.Contains(out, "public enum Status {") || !strings.Contains(out, "ACTIVE, INACTIVE;") {
		t.Fatalf("expected Java enum rendered with its constants, got: %s", out)
	}
}
