package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/check"
	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/pipeline"
)

func (a *app) sort(cmd *cobra.Command, dir string) error {
	if a.cfg.DryRun {
		a.log.Warn("DRY RUN")
	}
	if _, err := pipeline.Run(cmd.Context(), dir, &a.cfg, a.deps()); err != nil {
		return errors.Errorf("organizing %s: %w", dir, err)
	}
	return nil
}

func (a *app) foundry(cmd *cobra.Command, dir string) error {
	if a.cfg.DryRun {
		a.log.Warn("DRY RUN")
	}
	if _, err := pipeline.GroupByFoundry(cmd.Context(), dir, a.cfg.WithFoundryGrouping(), a.deps()); err != nil {
		return errors.Errorf("grouping %s by foundry: %w", dir, err)
	}
	return nil
}

func newSortCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sort [dir]",
		Short: "Sort fonts into family folders",
		Long: `Sort reads every font at the top level of dir (or the whole tree with
--recursive), groups them by family, and moves each into dir/<Family>/.
Identical copies go to dir/duplicates/. Afterwards it offers to group the
family folders by foundry.

Fonts already sitting in a dir/<Foundry>/<Family>/ folder left by the
foundry pass are treated as sorted, so a later --recursive sort keeps
that layout instead of moving them back to dir/<Family>/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveDir(args)
			if err != nil {
				return err
			}
			return a.sort(cmd, dir)
		},
	}
}

func newFoundryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "foundry [dir]",
		Short: "Group family folders under their foundry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveDir(args)
			if err != nil {
				return err
			}
			return a.foundry(cmd, dir)
		},
	}
}

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Sort every directory listed in a file",
		Long: `Batch reads one directory per line from file. Blank lines and lines
starting with # are ignored. Each directory is sorted independently and
the foundry question is asked for each one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			_, err := pipeline.RunBatch(cmd.Context(), file, &a.cfg, a.deps())
			return err
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Report fonts that are not where sort would put them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveDir(args)
			if err != nil {
				return err
			}
			_, err = check.Run(dir, &a.cfg, fontmeta.SFNTReader{}, a.log)
			return err
		},
	}
}
