package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// goExtractorCacheFilePrefix and its suffix match the Go cache layout
// (spec.md §4.8, §8.1 scenario 1): compiled binaries live as
// extractor_{hash} or extractor_{hash}.exe in a per-host cache directory.
const goExtractorCacheFilePrefix = "extractor_"

// GoExtractorCacheDir returns the per-host directory the Go extractor
// compiles its embedded analyzer binary into.
func GoExtractorCacheDir() string {
	return filepath.Join(os.TempDir(), "apiindex-go-extractor-cache")
}

// embeddedGoAnalyzerHash identifies the embedded analyzer source the Go
// extractor compiles into a cached binary; bump it whenever that source
// changes so stale binaries are evicted on the next run.
const embeddedGoAnalyzerHash = "a1"

// EvictStaleNativeBinaries removes every extractor_{hash} or
// extractor_{hash}.exe file in cacheDir whose hash doesn't equal
// currentHash, preserving any other filename untouched. A cache directory
// that doesn't exist yet is not an error (spec.md §4.8).
func EvictStaleNativeBinaries(cacheDir, currentHash string) error {
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	currentNames := map[string]struct{}{
		goExtractorCacheFilePrefix + currentHash:        {},
		goExtractorCacheFilePrefix + currentHash + ".exe": {},
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, goExtractorCacheFilePrefix) {
			continue
		}
		if _, keep := currentNames[name]; keep {
			continue
		}
		if err := os.Remove(filepath.Join(cacheDir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
