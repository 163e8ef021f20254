package pipeline

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/logging"
)

// ScanStats counts what a scan saw.
type ScanStats struct {
	Candidates int // Files with a font extension.
	Fonts      int // Files whose metadata was stored.
	NotFonts   int // Failed the magic or structural check.
	NoFamily   int // Parsed but carried no family name.
	Unreadable int // Read or parse errors.
}

// Scan reads metadata for every candidate file in dir with up to
// cfg.Workers concurrent readers and records the results in store. Paths
// already in processed are left alone. Per-file failures are logged and
// counted; only a failure to list dir is returned as an error.
func Scan(
	ctx context.Context,
	dir string,
	cfg *config.Config,
	reader fontmeta.Reader,
	store *Store,
	processed *ProcessedSet,
	log *logging.Logger,
) (ScanStats, error) {
	files, err := Discover(dir, cfg)
	if err != nil {
		return ScanStats{}, err
	}

	var notFonts, noFamily, unreadable atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if processed.Contains(path) {
				return nil
			}
			if !reader.IsFontFile(path) {
				log.Debug("Not a font file: %s", filepath.Base(path))
				notFonts.Add(1)
				return nil
			}
			m, err := reader.ReadMetadata(path)
			if err != nil {
				log.Warn("Cannot read font %s: %v", filepath.Base(path), err)
				unreadable.Add(1)
				return nil
			}
			if m == nil {
				log.Debug("No family name, skipping: %s", filepath.Base(path))
				noFamily.Add(1)
				return nil
			}
			store.Put(path, *m)
			log.Trace().
				Str("path", path).
				Str("family", m.Family).
				Str("subfamily", m.Subfamily).
				Str("foundry", m.Foundry).
				Int("weight", m.Weight).
				Bool("italic", m.Italic).
				Msg("metadata")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanStats{}, err
	}

	return ScanStats{
		Candidates: len(files),
		Fonts:      store.Len(),
		NotFonts:   int(notFonts.Load()),
		NoFamily:   int(noFamily.Load()),
		Unreadable: int(unreadable.Load()),
	}, nil
}
