package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/display"
	"github.com/backmassage/fontsrt/internal/grouper"
	"github.com/backmassage/fontsrt/internal/naming"
	"github.com/backmassage/fontsrt/internal/planner"
)

// Run organizes dir and then, if the foundry question is answered yes,
// regroups the result by foundry.
func Run(ctx context.Context, dir string, cfg *config.Config, deps Deps) (RunStats, error) {
	stats, err := Organize(ctx, dir, cfg, deps)
	if err != nil {
		return stats, err
	}
	yes, err := AskFoundry(dir, cfg, deps.Prompt)
	if err != nil {
		deps.Log.Warn("No answer to the foundry question, skipping: %v", err)
		return stats, nil
	}
	if yes {
		if _, err := GroupByFoundry(ctx, dir, cfg.WithFoundryGrouping(), deps); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// AskFoundry decides whether to run the foundry pass for dir.
// --group-by-foundry answers yes, --no-prompt or a missing prompter answers
// no, and otherwise the user is asked.
func AskFoundry(dir string, cfg *config.Config, confirm Confirmer) (bool, error) {
	switch {
	case cfg.AssumeFoundry:
		return true, nil
	case cfg.NoPrompt || confirm == nil:
		return false, nil
	}
	return confirm.Confirm(fmt.Sprintf("Group the families in %s by foundry?", dir), false)
}

// checkDir returns ErrInvalidPath unless dir is an existing directory.
func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return errors.WithDetails(errors.Errorf("%w: %s: %w", config.ErrInvalidPath, dir, err), "path", dir)
	}
	if !fi.IsDir() {
		return errors.WithDetails(errors.Errorf("%w: %s is not a directory", config.ErrInvalidPath, dir), "path", dir)
	}
	return nil
}

// organizer holds the per-directory state of one Organize call.
type organizer struct {
	dir       string
	dupDir    string
	cfg       *config.Config
	deps      Deps
	processed *ProcessedSet
	resolver  *naming.CollisionResolver
	dups      *duplicateIndex
	stats     RunStats
}

// Organize sorts the fonts in dir into family folders. Failing to create
// the duplicates folder or to list dir aborts the run; per-file failures
// are logged, counted, and skipped.
func Organize(ctx context.Context, dir string, cfg *config.Config, deps Deps) (RunStats, error) {
	log := deps.Log
	if err := checkDir(dir); err != nil {
		return RunStats{}, err
	}

	o := &organizer{
		dir:       dir,
		dupDir:    filepath.Join(dir, config.DuplicatesDir),
		cfg:       cfg,
		deps:      deps,
		processed: NewProcessedSet(),
		resolver:  naming.NewCollisionResolver(exists),
		dups:      newDuplicateIndex(),
	}
	if err := deps.Mover.EnsureDir(o.dupDir); err != nil {
		return RunStats{}, errors.Errorf("creating duplicates folder: %w", err)
	}

	log.Info("Scanning %s", dir)
	store := NewStore()
	scan, err := Scan(ctx, dir, cfg, deps.Reader, store, o.processed, log)
	if err != nil {
		return RunStats{}, err
	}
	o.stats.Found = scan.Fonts
	o.stats.Unreadable = scan.Unreadable
	log.Info("Found %s (%d candidates)", display.Plural(scan.Fonts, "font"), scan.Candidates)

	groups, merges := grouper.Merge(grouper.Group(store.Snapshot()))
	for _, m := range merges {
		log.Debug("Merged family group '%s' into '%s'", m.From, m.Into)
	}
	log.Info("Grouped into %s", display.Plural(len(groups), "family group"))

	for _, key := range groups.Keys() {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			o.logSummary()
			return o.stats, ctx.Err()
		}
		g := planner.Group{Family: key, Foundry: grouper.Foundry(groups[key])}
		for _, e := range groups[key] {
			o.place(g, e)
		}
	}

	o.logSummary()
	return o.stats, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// organized reports whether e already sits at its planned location. A file
// inside the foundry layout left by an earlier foundry pass counts too, so
// a later recursive sort does not flatten it back out.
func (o *organizer) organized(g planner.Group, e grouper.Entry) bool {
	if planner.IsOrganized(o.dir, e.Path, e.Meta, g, o.cfg) {
		return true
	}
	return !planner.UsesFoundryFolders(o.cfg) &&
		planner.IsOrganized(o.dir, e.Path, e.Meta, g, o.cfg.WithFoundryGrouping())
}

// place handles one font: skip it if already in place, divert identical
// copies to duplicates/, otherwise move it to its planned location.
func (o *organizer) place(g planner.Group, e grouper.Entry) {
	log := o.deps.Log
	if !o.processed.TryAdd(e.Path) {
		log.Debug("Already processed: %s", e.Path)
		return
	}
	o.stats.Processed++

	target := planner.Plan(o.dir, e.Meta, g, o.cfg)
	sig := e.Meta.Signature()
	log.Trace().Str("path", e.Path).Str("group", g.Family).Str("target", target.Path()).Msg("planned")

	if o.organized(g, e) {
		o.resolver.Resolve(e.Path, e.Path)
		o.dups.add(sig, e.Path)
		o.stats.Skipped++
		log.Trace().Str("path", e.Path).Stringer("action", planner.ActionSkip).Msg("placed")
		log.Debug("Already organized: %s", o.rel(e.Path))
		return
	}

	if !o.cfg.KeepDuplicates {
		original, dup, err := o.dups.find(sig, e.Path)
		if err != nil {
			log.Warn("Duplicate check failed for %s: %v", filepath.Base(e.Path), err)
		}
		if dup {
			o.move(e, filepath.Join(o.dupDir, filepath.Base(e.Path)), planner.ActionDuplicate, original)
			return
		}
	}

	if dest, ok := o.move(e, target.Path(), planner.ActionMove, ""); ok {
		o.dups.add(sig, dest)
	}
}

// move resolves collisions for requested and moves e there. It returns the
// path the content now lives at (the source path in dry-run mode).
func (o *organizer) move(e grouper.Entry, requested string, action planner.Action, original string) (string, bool) {
	log := o.deps.Log
	dest := o.resolver.Resolve(e.Path, requested)
	res, err := o.deps.Mover.MoveFile(e.Path, dest)
	if err != nil {
		o.resolver.Release(e.Path, dest)
		o.stats.Failed++
		log.Error("Failed to move %s: %v", filepath.Base(e.Path), err)
		return "", false
	}

	switch action {
	case planner.ActionDuplicate:
		o.stats.Duplicates++
		log.Warn("Duplicate of %s: %s -> %s", o.rel(original), filepath.Base(e.Path), o.rel(res.Path))
	default:
		o.stats.Moved++
		if filepath.Base(res.Path) != filepath.Base(e.Path) {
			o.stats.Renamed++
		}
		if !o.deps.Mover.DryRun() {
			log.Success("%s -> %s", filepath.Base(e.Path), o.rel(res.Path))
		}
	}
	log.Trace().Str("path", e.Path).Str("dest", res.Path).Stringer("action", action).Msg("placed")
	o.stats.BytesMoved += res.Bytes
	if res.StraySource {
		o.stats.StraySources = append(o.stats.StraySources, e.Path)
	}

	if o.deps.Mover.DryRun() {
		return e.Path, true
	}
	return res.Path, true
}

// rel shortens path for display.
func (o *organizer) rel(path string) string {
	if r, err := filepath.Rel(o.dir, path); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	return path
}

func (o *organizer) logSummary() {
	log := o.deps.Log
	s := &o.stats
	log.Info("Font organization summary:")
	log.Info("  - %s processed", display.Plural(s.Processed, "font"))
	if s.Failed > 0 {
		log.Warn("  - %d failed", s.Failed)
	}
	if len(s.StraySources) > 0 {
		log.Warn("  - %s copied but not removed:", display.Plural(len(s.StraySources), "source"))
		for _, p := range s.StraySources {
			log.Warn("      %s", p)
		}
	}
	if o.deps.Out != nil {
		if table, err := display.Table(s.Rows()); err == nil {
			fmt.Fprintln(o.deps.Out, table)
		}
	}
}
