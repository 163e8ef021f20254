package pipeline

import (
	"context"

	"github.com/backmassage/fontsrt/internal/config"
)

// RunBatch runs [Run] for every directory listed in batchFile. A missing or
// unreadable batch file is fatal. Entries that are not directories are
// skipped with a warning, and a directory whose run fails does not stop
// the batch. Each directory gets fresh scan state; cfg is shared.
func RunBatch(ctx context.Context, batchFile string, cfg *config.Config, deps Deps) (BatchStats, error) {
	log := deps.Log
	dirs, err := config.LoadBatchFile(batchFile)
	if err != nil {
		return BatchStats{}, err
	}

	var stats BatchStats
	log.Info("Batch: %d directories", len(dirs))
	for i, dir := range dirs {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return stats, ctx.Err()
		}
		if err := checkDir(dir); err != nil {
			log.Warn("Skipping %s: not a directory", dir)
			stats.Invalid++
			continue
		}

		log.Info("[%d/%d] %s", i+1, len(dirs), dir)
		runStats, err := Run(ctx, dir, cfg, deps)
		stats.Totals.Add(runStats)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			log.Error("Failed to organize %s: %v", dir, err)
			stats.Failed++
			continue
		}
		stats.Directories++
	}

	log.Info("Batch complete: %d organized, %d skipped, %d failed", stats.Directories, stats.Invalid, stats.Failed)
	return stats, nil
}
