package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/naming"
)

// DefaultExtension is used for sources without an extension.
const DefaultExtension = "ttf"

// formatters holds one formatting rule per naming pattern.
var formatters = map[config.NamingPattern]func(m fontmeta.Metadata) string{
	config.FamilySubfamily: func(m fontmeta.Metadata) string {
		return withSubfamily(m.Family, m)
	},
	config.FoundryFamilySubfamily: func(m fontmeta.Metadata) string {
		return withSubfamily(m.Foundry+" "+m.Family, m)
	},
	config.FamilyWeight: func(m fontmeta.Metadata) string {
		name := fmt.Sprintf("%s %d", m.Family, m.Weight)
		if m.Italic {
			name += " Italic"
		}
		return name
	},
	config.FoundryFamily: func(m fontmeta.Metadata) string {
		return withSubfamily(m.Foundry+"_"+m.Family, m)
	},
}

// withSubfamily appends " (Subfamily)" unless the style is Regular.
func withSubfamily(base string, m fontmeta.Metadata) string {
	if strings.EqualFold(m.Subfamily, "regular") {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, m.Subfamily)
}

// FormatName renders the file name stem for m under pattern, before
// cleaning. Unknown patterns format as FamilySubfamily.
func FormatName(m fontmeta.Metadata, pattern config.NamingPattern) string {
	format, ok := formatters[pattern]
	if !ok {
		format = formatters[config.FamilySubfamily]
	}
	return format(m)
}

// Extension returns the lower-cased extension of path without the dot,
// or DefaultExtension when there is none.
func Extension(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return DefaultExtension
	}
	return strings.ToLower(ext)
}

// FileName is the cleaned, extension-bearing file name for m.
func FileName(m fontmeta.Metadata, pattern config.NamingPattern) string {
	return naming.Clean(FormatName(m, pattern)) + "." + Extension(m.Path)
}

// UsesFoundryFolders reports whether targets get a foundry level above
// the family folder.
func UsesFoundryFolders(cfg *config.Config) bool {
	return cfg.Pattern == config.FoundryFamily || cfg.GroupByFoundry
}

// FolderPath returns base/family, or base/foundry/family when foundry
// folders are in use. Every font in a group shares the group's folder.
func FolderPath(base string, g Group, cfg *config.Config) string {
	if UsesFoundryFolders(cfg) {
		return filepath.Join(base, naming.Clean(g.Foundry), naming.Clean(g.Family))
	}
	return filepath.Join(base, naming.Clean(g.Family))
}

// Plan computes the target for one font in group g. The folder comes from
// the group and the file name from the font's own metadata.
func Plan(base string, m fontmeta.Metadata, g Group, cfg *config.Config) Target {
	return Target{
		Dir:  FolderPath(base, g, cfg),
		File: FileName(m, cfg.Pattern),
	}
}

// IsOrganized reports whether path already sits at its planned location,
// either under the planned name or a "_N" collision variant of it.
func IsOrganized(base, path string, m fontmeta.Metadata, g Group, cfg *config.Config) bool {
	target := Plan(base, m, g, cfg)
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(target.Dir) {
		return false
	}
	name := filepath.Base(path)
	if name == target.File {
		return true
	}
	ext := filepath.Ext(target.File)
	stem := strings.TrimSuffix(target.File, ext)
	n, ok := strings.CutPrefix(name, stem+"_")
	if !ok {
		return false
	}
	n, ok = strings.CutSuffix(n, ext)
	return ok && n != "" && strings.Trim(n, "0123456789") == ""
}
