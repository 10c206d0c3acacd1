package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEvictStaleNativeBinariesKeepsCurrentHashAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"extractor_abc123", "extractor_old111", "extractor_old222", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := EvictStaleNativeBinaries(dir, "abc123"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	remaining := make(map[string]bool)
	for _, e := range entries {
		remaining[e.Name()] = true
	}
	if len(remaining) != 2 || !remaining["extractor_abc123"] || !remaining["readme.txt"] {
		t.Fatalf("expected only extractor_abc123 and readme.txt to remain, got %+v", remaining)
	}
}

func TestEvictStaleNativeBinariesKeepsExeSuffix(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"extractor_abc123.exe", "extractor_old111.exe"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := EvictStaleNativeBinaries(dir, "abc123"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "extractor_abc123.exe" {
		t.Fatalf("expected only extractor_abc123.exe to remain, got %+v", entries)
	}
}

func TestEvictStaleNativeBinariesAbsentDirectoryIsNotAnError(t *testing.T) {
	if err := EvictStaleNativeBinaries(filepath.Join(os.TempDir(), "apiindex-nonexistent-cache-dir"), "abc123"); err != nil {
		t.Fatalf("expected no error for an absent cache directory, got %v", err)
	}
}
