package extract

import (
	"context"
	"testing"

	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/availability"
	"github.com/oxhq/apiindex/internal/stdlib"
)

func TestFilterDependenciesDropsStdlibPackage(t *testing.T) {
	deps := []apimodel.DependencyInfo{
		{Package: "fmt", Types: []string{"Stringer"}},
		{Package: "github.com/acme/widgets", Types: []string{"Widget"}},
	}
	out := filterDependencies(stdlib.Go, deps)
	if len(out) != 1 || out[0].Package != "github.com/acme/widgets" {
		t.Fatalf("expected only the non-stdlib dependency to survive, got %+v", out)
	}
}

func TestFilterDependenciesDropsBuiltinOnlyTypes(t *testing.T) {
	deps := []apimodel.DependencyInfo{
		{Package: "github.com/acme/widgets", Types: []string{"string", "int"}},
	}
	out := filterDependencies(stdlib.Go, deps)
	if len(out) != 0 {
		t.Fatalf("expected dependency with only built-in types to be dropped entirely, got %+v", out)
	}
}

func TestFilterDependenciesKeepsMixedTypes(t *testing.T) {
	deps := []apimodel.DependencyInfo{
		{Package: "github.com/acme/widgets", Types: []string{"string", "Widget"}},
	}
	out := filterDependencies(stdlib.Go, deps)
	if len(out) != 1 || len(out[0].Types) != 1 || out[0].Types[0] != "Widget" {
		t.Fatalf("expected only the built-in type to be stripped, got %+v", out)
	}
}

func TestSplitWarningsEmptyStderr(t *testing.T) {
	if got := splitWarnings("   \n  "); got != nil {
		t.Fatalf("expected nil warnings for blank stderr, got %+v", got)
	}
}

func TestSplitWarningsSplitsLines(t *testing.T) {
	got := splitWarnings("warning: one\nwarning: two\n")
	if len(got) != 2 || got[0] != "warning: one" || got[1] != "warning: two" {
		t.Fatalf("unexpected split: %+v", got)
	}
}

func TestRunExternalUnavailableReturnsUnavailableError(t *testing.T) {
	cfg := Config{
		Language: stdlib.Go,
		Availability: availability.ExtractorConfig{
			Language:              "test-nonexistent-language",
			NativeBinaryName:      "nonexistent-extractor-binary-xyz",
			RuntimeToolName:       "nonexistent-runtime-xyz",
			RuntimeCandidates:     []string{"nonexistent-runtime-xyz"},
			DisableDockerFallback: true,
		},
		Args: func(string) []string { return nil },
	}
	_, _, err := runExternal(context.Background(), cfg, "/tmp/does-not-exist")
	if err == nil {
		t.Fatal("expected an error when no tool is available")
	}
}

func TestDefaultConfigBuildsArgsPerLanguage(t *testing.T) {
	for _, lang := range []stdlib.Language{stdlib.Go, stdlib.Java, stdlib.Python, stdlib.TypeScript} {
		cfg := DefaultConfig(lang)
		if cfg.Args == nil {
			t.Fatalf("expected Args builder for %s", lang)
		}
		if args := cfg.Args("/src"); len(args) == 0 {
			t.Fatalf("expected non-empty args for %s, got %+v", lang, args)
		}
	}
}
