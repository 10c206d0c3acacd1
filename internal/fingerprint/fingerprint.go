// Package fingerprint computes a content-addressed digest over a directory
// tree, used by the extraction cache (internal/cache) to detect source
// changes without re-running an extractor.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// excludedDirs are pruned during traversal and never contribute to the digest.
var excludedDirs = map[string]struct{}{
	".git":        {},
	"node_modules": {},
	"vendor":      {},
	"bin":         {},
	"obj":         {},
	"target":      {},
	".venv":       {},
}

type entry struct {
	relPath string
	size    int64
	modTime int64
}

// Compute returns a lowercase hex digest derived from the ordered
// (relative_path, size, last_modified) triples of every regular file under
// root whose extension is in extensions. extensions entries may be given
// with or without a leading dot. A root that does not exist yields "" and
// never returns an error.
func Compute(root string, extensions map[string]struct{}) (string, error) {
	if _, err := os.Stat(root); err != nil {
		return "", nil
	}

	norm := make(map[string]struct{}, len(extensions))
	for ext := range extensions {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		norm[ext] = struct{}{}
	}

	entries, err := collect(root, norm)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", e.relPath, e.size, e.modTime)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func collect(root string, extensions map[string]struct{}) ([]entry, error) {
	var out []entry

	var walk func(dir string) error
	walk = func(dir string) error {
		items, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

		for _, item := range items {
			name := item.Name()
			full := filepath.Join(dir, name)

			if item.IsDir() {
				if _, skip := excludedDirs[name]; skip {
					continue
				}
				if err := walk(full); err != nil {
					return err
				}
				continue
			}

			if len(extensions) > 0 {
				ext := strings.ToLower(filepath.Ext(name))
				if _, ok := extensions[ext]; !ok {
					continue
				}
			}

			info, err := item.Info()
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return err
			}
			if !info.Mode().IsRegular() {
				continue
			}

			rel, err := filepath.Rel(root, full)
			if err != nil {
				rel = full
			}
			out = append(out, entry{
				relPath: filepath.ToSlash(rel),
				size:    info.Size(),
				modTime: info.ModTime().UnixNano(),
			})
		}
		return nil
	}

	if err := walk(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}
