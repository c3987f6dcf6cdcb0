package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FromPaths resolves plain paths, directories, and doublestar glob patterns
// into selected files. Directories contribute their direct, regular-file
// children. Duplicates are dropped and the order of first appearance is kept.
func FromPaths(patterns []string) ([]File, error) {
	var (
		files []File
		seen  = map[string]bool{}
	)

	add := func(path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if seen[key] {
			return nil
		}
		seen[key] = true

		files = append(files, File{
			Name:      filepath.Base(path),
			Path:      path,
			SizeBytes: info.Size(),
		})
		return nil
	}

	for _, pattern := range patterns {
		if isGlob(pattern) {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", pattern, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				if err := add(m); err != nil {
					return nil, err
				}
			}
			continue
		}

		info, err := os.Stat(pattern)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", pattern, err)
		}

		if !info.IsDir() {
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(pattern)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", pattern, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if err := add(filepath.Join(pattern, e.Name())); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
