package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/display"
	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/logging"
	"github.com/backmassage/fontsrt/internal/mover"
	"github.com/backmassage/fontsrt/internal/pipeline"
	"github.com/backmassage/fontsrt/internal/prompt"
)

// Menu entries for the interactive root command.
const (
	menuSort = iota
	menuFoundry
)

var menuOptions = []string{
	"Sort fonts into family folders",
	"Group family folders by foundry",
}

// app carries state shared by every command: the resolved config, the
// logger, and the prompter.
type app struct {
	cfg        config.Config
	configFile string
	in         *os.File
	out        io.Writer
	log        *logging.Logger
	prompter   prompt.Prompter
}

func newApp(in *os.File, out io.Writer) *app {
	return &app{cfg: config.DefaultConfig(), in: in, out: out}
}

// setup loads the optional config file, validates, and opens the logger.
// Runs once, before any command.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configFile != "" {
		fc, err := config.LoadFile(a.configFile)
		if err != nil {
			return err
		}
		if err := config.ApplyFile(&a.cfg, fc, cmd.Flags()); err != nil {
			return err
		}
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.NewLogger(&a.cfg)
	if err != nil {
		return err
	}
	a.log = log
	a.prompter = prompt.New(a.in, a.out)
	log.Trace().
		Str("pattern", string(a.cfg.Pattern)).
		Bool("dry_run", a.cfg.DryRun).
		Bool("recursive", a.cfg.Recursive).
		Int("workers", a.cfg.Workers).
		Strs("ignore", a.cfg.Ignore).
		Msg("config")
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
	}
}

func (a *app) deps() pipeline.Deps {
	var confirm pipeline.Confirmer
	if a.prompter != nil {
		confirm = a.prompter
	}
	return pipeline.Deps{
		Reader: fontmeta.SFNTReader{},
		Log:    a.log,
		Mover:  mover.New(a.log, a.cfg.DryRun),
		Prompt: confirm,
		Out:    a.out,
	}
}

// resolveDir takes the directory from args, or asks for one.
func (a *app) resolveDir(args []string) (string, error) {
	if len(args) > 0 {
		return config.NormalizeDirArg(args[0]), nil
	}
	if a.cfg.NoPrompt {
		return "", errors.Errorf("%w: no directory given", config.ErrInvalidPath)
	}
	dir, err := a.prompter.Directory("Font directory")
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.Errorf("%w: no directory given", config.ErrInvalidPath)
	}
	return config.NormalizeDirArg(dir), nil
}

func newRootCmd(a *app) *cobra.Command {
	var sortNow, foundryNow bool

	cmd := &cobra.Command{
		Use:   "fontsrt [dir]",
		Short: "Sort a font library into family folders",
		Long: `fontsrt reads the name table of every .ttf and .otf file in a directory,
groups styles of the same family together, and moves them into one folder
per family with consistent file names. A second pass can group the family
folders under their foundry.

Without a subcommand fontsrt asks what to do.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			display.PrintBanner(a.out)
			dir, err := a.resolveDir(args)
			if err != nil {
				return err
			}

			choice := menuSort
			switch {
			case sortNow:
			case foundryNow:
				choice = menuFoundry
			case !a.cfg.NoPrompt:
				choice, err = a.prompter.Choice("What would you like to do?", menuOptions)
				if err != nil {
					return err
				}
			}

			switch choice {
			case menuSort:
				return a.sort(cmd, dir)
			case menuFoundry:
				return a.foundry(cmd, dir)
			default:
				a.log.Info("Nothing to do")
				return nil
			}
		},
	}

	config.BindFlags(cmd.PersistentFlags(), &a.cfg)
	cmd.PersistentFlags().StringVarP(&a.configFile, config.FlagConfig, "c", "", "Config file (.yaml, .yml or .hcl)")
	cmd.Flags().BoolVar(&sortNow, "sort", false, "Sort without showing the menu")
	cmd.Flags().BoolVar(&foundryNow, "foundry", false, "Group by foundry without showing the menu")
	cmd.MarkFlagsMutuallyExclusive("sort", "foundry")

	cmd.AddCommand(
		newSortCmd(a),
		newFoundryCmd(a),
		newBatchCmd(a),
		newCheckCmd(a),
	)
	return cmd
}
