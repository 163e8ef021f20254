// Package config holds runtime configuration: defaults, CLI flag binding,
// config-file loading, and validation. A Config is built once per process
// and shared read-only by every pipeline phase; the foundry pass receives a
// clone from [Config.WithFoundryGrouping] instead of a mutated original.
package config

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Sentinel errors for the configuration and path failures that abort a run.
var (
	ErrConfig      = errors.Base("configuration error")
	ErrInvalidPath = errors.Base("invalid path")
)

// --- Enum types for validated string fields ---

// NamingPattern selects how generated filenames (and, for FoundryFamily,
// directory depth) are built.
type NamingPattern string

const (
	FamilySubfamily        NamingPattern = "family-subfamily"         // "Helvetica (Bold)" (default).
	FoundryFamilySubfamily NamingPattern = "foundry-family-subfamily" // "Adobe Helvetica (Bold)".
	FamilyWeight           NamingPattern = "family-weight"            // "Helvetica 700".
	FoundryFamily          NamingPattern = "foundry-family"           // "Adobe/Helvetica/Adobe_Helvetica".
)

// NamingPatterns lists every pattern in menu order.
var NamingPatterns = []NamingPattern{
	FamilySubfamily,
	FoundryFamilySubfamily,
	FamilyWeight,
	FoundryFamily,
}

// Template renders the pattern in the %Field% notation shown to users.
func (p NamingPattern) Template() string {
	switch p {
	case FoundryFamilySubfamily:
		return "%Foundry% %Family% (%Subfamily%)"
	case FamilyWeight:
		return "%Family% %Weight%"
	case FoundryFamily:
		return "%Foundry%/%Family%"
	default:
		return "%Family% (%Subfamily%)"
	}
}

// Valid reports whether p is one of the four known patterns.
func (p NamingPattern) Valid() bool {
	for _, known := range NamingPatterns {
		if p == known {
			return true
		}
	}
	return false
}

// ParseNamingPattern accepts the kebab-case pattern names, case-insensitive.
func ParseNamingPattern(s string) (NamingPattern, error) {
	p := NamingPattern(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.WithDetails(
			errors.Errorf("%w: invalid naming pattern %q (use family-subfamily, foundry-family-subfamily, family-weight or foundry-family)", ErrConfig, s),
			"pattern", s,
		)
	}
	return p, nil
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DuplicatesDir is the reserved folder created at the root of every
// organized directory.
const DuplicatesDir = "duplicates"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a config file, then by CLI flags.
type Config struct {
	// Organization.
	Pattern        NamingPattern
	GroupByFoundry bool // Set only on the clone handed to the foundry pass.

	// Behavior flags.
	Debug          bool
	DryRun         bool
	Recursive      bool     // Scan subdirectories too (default: top level only).
	KeepDuplicates bool     // Collision-rename identical copies instead of moving them to duplicates/.
	Ignore         []string // doublestar patterns relative to the scanned directory.
	Workers        int      // Metadata reader goroutines. Default: NumCPU.

	// Prompting.
	AssumeFoundry bool // Answer "yes" to the foundry question.
	NoPrompt      bool // Never prompt; unanswered questions default to "no".

	// Display and logging.
	ColorMode ColorMode
	LogFile   string // Optional JSON log file path.
}

// DefaultConfig returns a Config with all defaults.
func DefaultConfig() Config {
	return Config{
		Pattern:   FamilySubfamily,
		Workers:   runtime.NumCPU(),
		ColorMode: ColorAuto,
	}
}

// WithFoundryGrouping returns a copy of c with GroupByFoundry set. The
// receiver is left untouched so callers sharing it never observe the flip.
func (c *Config) WithFoundryGrouping() *Config {
	clone := *c
	clone.Ignore = append([]string(nil), c.Ignore...)
	clone.GroupByFoundry = true
	return &clone
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, worker count, and ignore pattern syntax.
func (c *Config) Validate() error {
	if !c.Pattern.Valid() {
		return errors.Errorf("%w: invalid naming pattern %q", ErrConfig, c.Pattern)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.Errorf("%w: invalid color mode %q (use auto, always or never)", ErrConfig, c.ColorMode)
	}

	if c.Workers < 1 {
		return errors.Errorf("%w: workers must be at least 1 (got %d)", ErrConfig, c.Workers)
	}

	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: invalid ignore pattern %q", ErrConfig, pattern)
		}
	}

	return nil
}

// Ignored reports whether rel (a slash- or OS-separated path relative to
// the scanned directory) matches any ignore pattern.
func (c *Config) Ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
