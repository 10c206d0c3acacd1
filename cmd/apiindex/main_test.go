package main

import "testing"

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	root := newRootCommand()
	if root.Use != "apiindex" {
		t.Fatalf("expected Use=apiindex, got %q", root.Use)
	}

	want := map[string]bool{"extract": false, "format": false, "usage": false, "diagnostics": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestExtractRequiresLanguage(t *testing.T) {
	var source, language string
	cmd := newExtractCommand(&source, &language)
	cmd.SetArgs(nil)
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Fatal("expected an error when --language is empty")
	}
}

func TestUsageRequiresClientSource(t *testing.T) {
	source, language := ".", "go"
	cmd := newUsageCommand(&source, &language)
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Fatal("expected an error when --client-source is empty")
	}
}

func TestResolveIndexUnknownLanguage(t *testing.T) {
	if _, err := resolveIndex(nil, "cobol", "."); err == nil {
		t.Fatal("expected an error for an unsupported language")
	}
}

func TestUsageCommandRegistersExcludeFlag(t *testing.T) {
	source, language := ".", "go"
	cmd := newUsageCommand(&source, &language)
	if cmd.Flags().Lookup("exclude") == nil {
		t.Fatal("expected usage command to register an --exclude flag")
	}
}

func TestFormatCommandRegistersCoverageExcludeFlag(t *testing.T) {
	source, language := ".", "go"
	cmd := newFormatCommand(&source, &language)
	if cmd.Flags().Lookup("coverage-exclude") == nil {
		t.Fatal("expected format command to register a --coverage-exclude flag")
	}
}
