package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/fontmeta"
)

// Discover lists candidate font files in dir: regular files with a .ttf or
// .otf extension at the top level, or in the whole tree when cfg.Recursive
// is set. The duplicates folder and paths matching cfg.Ignore are pruned.
// Paths are sorted for deterministic processing order.
func Discover(dir string, cfg *config.Config) ([]string, error) {
	var files []string
	keep := func(path string) {
		rel, err := filepath.Rel(dir, path)
		if err != nil || cfg.Ignored(rel) {
			return
		}
		if fontmeta.HasFontExtension(path) {
			files = append(files, path)
		}
	}

	if !cfg.Recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				keep(filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(files)
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			rel, _ := filepath.Rel(dir, path)
			if rel == config.DuplicatesDir || cfg.Ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			keep(path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
