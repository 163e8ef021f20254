package config

// This file binds Config fields to a pflag.FlagSet owned by the cobra root
// command. Flags are grouped into organization, behavior, prompting, and
// display. Values loaded from a config file are applied only for flags the
// user did not set, so the command line always wins.

import (
	"strings"

	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"
)

// Flag names shared by BindFlags and ApplyFile.
const (
	FlagPattern        = "pattern"
	FlagDebug          = "debug"
	FlagGroupByFoundry = "group-by-foundry"
	FlagNoPrompt       = "no-prompt"
	FlagDryRun         = "dry-run"
	FlagRecursive      = "recursive"
	FlagIgnore         = "ignore"
	FlagWorkers        = "workers"
	FlagKeepDuplicates = "keep-duplicates"
	FlagColor          = "color"
	FlagLog            = "log"
	FlagConfig         = "config"
)

// BindFlags registers every Config flag on fs. cfg should already hold
// defaults; its current values become the flag defaults shown in help.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	defineOrganizationFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	definePromptFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
}

// defineOrganizationFlags registers --pattern and its legacy shorthands.
func defineOrganizationFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&namingPatternValue{&cfg.Pattern}, FlagPattern,
		"Naming pattern: family-subfamily | foundry-family-subfamily | family-weight | foundry-family")
	fs.Var(&patternShorthand{&cfg.Pattern, FoundryFamilySubfamily}, "foundry-family-subfamily", "Same as --pattern foundry-family-subfamily")
	fs.Var(&patternShorthand{&cfg.Pattern, FamilyWeight}, "family-weight", "Same as --pattern family-weight")
	fs.Var(&patternShorthand{&cfg.Pattern, FoundryFamily}, "foundry-family", "Same as --pattern foundry-family")
	for _, name := range []string{"foundry-family-subfamily", "family-weight", "foundry-family"} {
		fs.Lookup(name).NoOptDefVal = "true"
	}
}

// defineBehaviorFlags registers dry-run, recursion, ignore globs, workers, duplicates.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.DryRun, FlagDryRun, "n", cfg.DryRun, "Preview moves without touching the filesystem")
	fs.BoolVarP(&cfg.Recursive, FlagRecursive, "r", cfg.Recursive, "Scan subdirectories as well as the top level")
	fs.StringSliceVar(&cfg.Ignore, FlagIgnore, cfg.Ignore, "Glob of paths to skip, relative to the directory (repeatable)")
	fs.IntVarP(&cfg.Workers, FlagWorkers, "j", cfg.Workers, "Parallel metadata readers")
	fs.BoolVar(&cfg.KeepDuplicates, FlagKeepDuplicates, cfg.KeepDuplicates, "Rename identical copies in place instead of moving them to duplicates/")
}

// definePromptFlags registers the answers to interactive questions.
func definePromptFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.AssumeFoundry, FlagGroupByFoundry, cfg.AssumeFoundry, "Group family folders by foundry without asking")
	fs.BoolVar(&cfg.NoPrompt, FlagNoPrompt, cfg.NoPrompt, "Never prompt; unanswered questions default to no")
}

// defineDisplayFlags registers --debug, --color, --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.Debug, FlagDebug, "d", cfg.Debug, "Trace every classification and move decision")
	fs.Var(&colorModeValue{&cfg.ColorMode}, FlagColor, "Colored output: auto | always | never")
	fs.StringVarP(&cfg.LogFile, FlagLog, "l", cfg.LogFile, "Append JSON logs to file")
}

// pflag.Value adapters so enum types (NamingPattern, ColorMode) can use fs.Var.

type namingPatternValue struct{ p *NamingPattern }

func (v *namingPatternValue) String() string { return string(*v.p) }
func (v *namingPatternValue) Type() string   { return "pattern" }
func (v *namingPatternValue) Set(s string) error {
	p, err := ParseNamingPattern(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

// patternShorthand is a boolean-looking flag that selects one pattern.
type patternShorthand struct {
	p      *NamingPattern
	target NamingPattern
}

func (v *patternShorthand) String() string { return "false" }
func (v *patternShorthand) Type() string   { return "bool" }
func (v *patternShorthand) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*v.p = v.target
	case "false", "0", "no":
		// leave pattern alone
	default:
		return errors.Errorf("invalid boolean %q", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (v *colorModeValue) String() string { return string(*v.p) }
func (v *colorModeValue) Type() string   { return "mode" }
func (v *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*v.p = ColorAuto
	case "always", "true", "on":
		*v.p = ColorAlways
	case "never", "false", "off":
		*v.p = ColorNever
	default:
		return errors.Errorf("invalid color mode %q (use auto, always or never)", s)
	}
	return nil
}
