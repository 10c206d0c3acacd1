package usage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oxhq/apiindex/internal/apimodel"
)

func goIndexFixture() apimodel.Index {
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
							{Name: "ListWidgets", IsMethod: true},
							{Name: "CreateWidget", IsMethod: true},
						},
					},
				},
			},
		},
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAnalyzeTypedReceiver(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", `package main

func main() {
	c := &Client{}
	c.ListWidgets()
	c.CreateWidget()
}
`)
	idx, err := Analyze(context.Background(), dir, goIndexFixture())
	if err != nil {
		t.Fatal(err)
	}
	if idx.FileCount != 1 {
		t.Fatalf("expected 1 file scanned, got %d", idx.FileCount)
	}
	if len(idx.CoveredOperations) != 2 {
		t.Fatalf("expected 2 covered operations, got %+v", idx.CoveredOperations)
	}
	if len(idx.UncoveredOperations) != 0 {
		t.Fatalf("expected 0 uncovered operations, got %+v", idx.UncoveredOperations)
	}
}

func TestAnalyzeDeduplicatesCallSites(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", `package main

func main() {
	c := &Client{}
	c.ListWidgets()
	c.ListWidgets()
}
`)
	idx, err := Analyze(context.Background(), dir, goIndexFixture())
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.CoveredOperations) != 1 {
		t.Fatalf("expected dedup to 1 covered operation, got %+v", idx.CoveredOperations)
	}
	if idx.CoveredOperations[0].Line != 5 {
		t.Fatalf("expected anchor at first call site (line 5), got %d", idx.CoveredOperations[0].Line)
	}
}

func TestAnalyzeUncoveredOperationsListed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", `package main

func main() {
	c := &Client{}
	c.ListWidgets()
}
`)
	idx, err := Analyze(context.Background(), dir, goIndexFixture())
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.UncoveredOperations) != 1 || idx.UncoveredOperations[0].Operation != "CreateWidget" {
		t.Fatalf("expected CreateWidget uncovered, got %+v", idx.UncoveredOperations)
	}
}

func TestAnalyzeExcludesVendorDirectories(t *testing.T) {
	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	if err := os.MkdirAll(vendor, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, vendor, "skip.go", `package main

func main() {
	c := &Client{}
	c.ListWidgets()
}
`)
	idx, err := Analyze(context.Background(), dir, goIndexFixture())
	if err != nil {
		t.Fatal(err)
	}
	if idx.FileCount != 0 {
		t.Fatalf("expected vendor/ excluded from scan, got file count %d", idx.FileCount)
	}
}

func TestAnalyzeWithExclusionsSkipsMatchingBasename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", `package main

func main() {
	c := &Client{}
	c.ListWidgets()
}
`)
	writeFile(t, dir, "main_test.go", `package main

func test() {
	c := &Client{}
	c.CreateWidget()
}
`)
	idx, err := AnalyzeWithExclusions(context.Background(), dir, goIndexFixture(), []string{"*_test.go"})
	if err != nil {
		t.Fatal(err)
	}
	if idx.FileCount != 1 {
		t.Fatalf("expected _test.go excluded from scan, got file count %d", idx.FileCount)
	}
	if len(idx.CoveredOperations) != 1 || idx.CoveredOperations[0].Operation != "ListWidgets" {
		t.Fatalf("expected only ListWidgets covered, got %+v", idx.CoveredOperations)
	}
}

func TestAnalyzeWithExclusionsMatchesRelativePath(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "internal", "generated")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "gen.go", `package generated

func gen() {
	c := &Client{}
	c.CreateWidget()
}
`)
	idx, err := AnalyzeWithExclusions(context.Background(), dir, goIndexFixture(), []string{"internal/**"})
	if err != nil {
		t.Fatal(err)
	}
	if idx.FileCount != 0 {
		t.Fatalf("expected internal/** excluded from scan, got file count %d", idx.FileCount)
	}
}

func tsInterfaceSubclientFixture() apimodel.Index {
	return apimodel.NewTypeScriptIndex(apimodel.TypeScriptApiIndex{
		Package: "widgets",
		Modules: []apimodel.TSModuleInfo{{
			Name: "index",
			Classes: []apimodel.TSClassInfo{{
				Name:       "Client",
				EntryPoint: true,
				Methods:    []apimodel.TSMethodInfo{{Name: "connect"}},
				Properties: []apimodel.TSPropertyInfo{{Name: "widgets", Type: "WidgetsSubclient"}},
			}},
			Interfaces: []apimodel.TSInterfaceInfo{{
				Name:    "WidgetsSubclient",
				Methods: []apimodel.TSMethodInfo{{Name: "listWidgets"}},
			}},
		}},
	})
}

func TestAnalyzeInterfaceSubclientChainedAccess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.ts", `const client = new Client();
client.widgets.listWidgets();
`)
	idx, err := Analyze(context.Background(), dir, tsInterfaceSubclientFixture())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, op := range idx.CoveredOperations {
		if op.ClientType == "WidgetsSubclient" && op.Operation == "listWidgets" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected listWidgets covered via the WidgetsSubclient interface, got %+v", idx.CoveredOperations)
	}
}

func TestAnalyzeInterfaceSubclientViaIntermediateVariable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.ts", `const client = new Client();
const sub = client.widgets;
sub.listWidgets();
`)
	idx, err := Analyze(context.Background(), dir, tsInterfaceSubclientFixture())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, op := range idx.CoveredOperations {
		if op.ClientType == "WidgetsSubclient" && op.Operation == "listWidgets" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected listWidgets covered via the declared property type of an intermediate variable, got %+v", idx.CoveredOperations)
	}
}

func goTopLevelFunctionFixture() apimodel.Index {
	return apimodel.NewGoIndex(apimodel.GoApiIndex{
		Package: "widgets",
		Packages: []apimodel.GoPackageInfo{{
			Name:      "widgets",
			Functions: []apimodel.GoFuncInfo{{Name: "NewDefaultClient"}},
		}},
	})
}

func TestAnalyzeTopLevelFunctionCoverage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", `package main

func main() {
	NewDefaultClient()
}
`)
	idx, err := Analyze(context.Background(), dir, goTopLevelFunctionFixture())
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.CoveredOperations) != 1 || idx.CoveredOperations[0].Operation != "NewDefaultClient" {
		t.Fatalf("expected the module-level function covered, got %+v", idx.CoveredOperations)
	}
}

func pyBaseChainFixture() apimodel.Index {
	return apimodel.NewPythonIndex(apimodel.PythonApiIndex{
		Package: "widgets",
		Modules: []apimodel.PyModuleInfo{{
			Name: "widgets",
			Classes: []apimodel.PyClassInfo{
				{Name: "BaseClient", EntryPoint: true, Methods: []apimodel.PyMethodInfo{{Name: "close"}}},
				{Name: "WidgetClient", Base: "BaseClient", EntryPoint: true, Methods: []apimodel.PyMethodInfo{{Name: "list_widgets"}}},
				{Name: "GadgetClient", Base: "BaseClient", EntryPoint: true, Methods: []apimodel.PyMethodInfo{{Name: "list_widgets"}}},
			},
		}},
	})
}

func TestAnalyzeSharedAncestorFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", `c = make_client()
c.list_widgets()
`)
	idx, err := Analyze(context.Background(), dir, pyBaseChainFixture())
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.CoveredOperations) != 1 || idx.CoveredOperations[0].ClientType != "BaseClient" {
		t.Fatalf("expected the call attributed to the shared ancestor BaseClient, got %+v", idx.CoveredOperations)
	}
}

func TestAnalyzeCaseSensitiveMethodMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", `package main

func main() {
	c := &Client{}
	c.listwidgets()
}
`)
	idx, err := Analyze(context.Background(), dir, goIndexFixture())
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.CoveredOperations) != 0 {
		t.Fatalf("expected case-sensitive mismatch to produce no coverage, got %+v", idx.CoveredOperations)
	}
}
