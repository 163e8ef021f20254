package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/display"
	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/naming"
)

// GroupByFoundry moves every top-level family folder of dir under a folder
// named for its foundry, merging into an existing dir/Foundry/Family when
// one is already there. The foundry is taken from the first readable font
// in the folder; folders without one are left alone. Folders that already
// are foundry folders are skipped, so repeating the pass is harmless.
func GroupByFoundry(ctx context.Context, dir string, cfg *config.Config, deps Deps) (FoundryStats, error) {
	log := deps.Log
	stats := FoundryStats{Foundries: make(map[string]int)}
	if err := checkDir(dir); err != nil {
		return stats, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, errors.Errorf("reading %s: %w", dir, err)
	}

	log.Info("Grouping families in %s by foundry", dir)
	foundryOf := make(map[string]string)
	for _, e := range entries {
		if !e.IsDir() || e.Name() == config.DuplicatesDir || cfg.Ignored(e.Name()) {
			continue
		}
		stats.Folders++
		m := sampleFont(filepath.Join(dir, e.Name()), deps.Reader)
		if m == nil {
			log.Debug("No readable font in %s, leaving it in place", e.Name())
			stats.Skipped++
			continue
		}
		foundry := naming.Clean(m.Foundry)
		if foundry == e.Name() {
			log.Debug("%s is already a foundry folder", e.Name())
			stats.Skipped++
			continue
		}
		foundryOf[e.Name()] = foundry
		log.Trace().Str("family", e.Name()).Str("foundry", foundry).Str("sample", m.Path).Msg("foundry")
	}

	families := make([]string, 0, len(foundryOf))
	for f := range foundryOf {
		families = append(families, f)
	}
	sort.Strings(families)

	for _, family := range families {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return stats, ctx.Err()
		}
		foundry := foundryOf[family]
		foundryDir := filepath.Join(dir, foundry)
		if err := deps.Mover.EnsureDir(foundryDir); err != nil {
			log.Error("%v", err)
			stats.Failed++
			continue
		}
		if err := deps.Mover.MoveDirectory(filepath.Join(dir, family), filepath.Join(foundryDir, family)); err != nil {
			log.Error("Failed to move %s into %s: %v", family, foundry, err)
			stats.Failed++
			continue
		}
		stats.Moved++
		stats.Foundries[foundry]++
		if !deps.Mover.DryRun() {
			log.Success("%s -> %s", family, filepath.Join(foundry, family))
		}
	}

	log.Info("Foundry grouping summary:")
	log.Info("  - %s moved into %s", display.Plural(stats.Moved, "family folder"), display.Plural(len(stats.Foundries), "foundry folder"))
	if stats.Failed > 0 {
		log.Warn("  - %d failed", stats.Failed)
	}
	return stats, nil
}

// sampleFont returns metadata for the first font in dir's tree, in walk
// order, that the reader accepts and that names a family.
func sampleFont(dir string, reader fontmeta.Reader) *fontmeta.Metadata {
	var found *fontmeta.Metadata
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !fontmeta.HasFontExtension(path) {
			return nil
		}
		if !reader.IsFontFile(path) {
			return nil
		}
		m, err := reader.ReadMetadata(path)
		if err != nil || m == nil {
			return nil
		}
		found = m
		return fs.SkipAll
	})
	return found
}
