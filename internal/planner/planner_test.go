package planner

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/fontmeta"
)

// --- Helper builders ---

func defaultCfg() *config.Config {
	cfg := config.DefaultConfig()
	return &cfg
}

func font(family, sub string) fontmeta.Metadata {
	return fontmeta.Metadata{
		Family:    family,
		Subfamily: sub,
		Foundry:   "Adobe",
		Weight:    fontmeta.Weight(sub),
		Italic:    fontmeta.IsItalic(sub),
		Path:      "/src/" + family + ".ttf",
	}
}

// --- FormatName ---

func TestFormatName(t *testing.T) {
	tests := []struct {
		name    string
		meta    fontmeta.Metadata
		pattern config.NamingPattern
		want    string
	}{
		{"regular omitted", font("Helvetica", "Regular"), config.FamilySubfamily, "Helvetica"},
		{"regular any case", font("Helvetica", "REGULAR"), config.FamilySubfamily, "Helvetica"},
		{"bold", font("Helvetica", "Bold"), config.FamilySubfamily, "Helvetica (Bold)"},
		{"foundry prefix", font("Helvetica", "Bold"), config.FoundryFamilySubfamily, "Adobe Helvetica (Bold)"},
		{"foundry prefix regular", font("Helvetica", "Regular"), config.FoundryFamilySubfamily, "Adobe Helvetica"},
		{"weight", font("Roboto", "Bold"), config.FamilyWeight, "Roboto 700"},
		{"weight italic", font("Roboto", "Bold Italic"), config.FamilyWeight, "Roboto 700 Italic"},
		{"foundry family", font("Garamond", "Italic"), config.FoundryFamily, "Adobe_Garamond (Italic)"},
		{"unknown pattern", font("Inter", "Light"), config.NamingPattern("bogus"), "Inter (Light)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatName(tt.meta, tt.pattern))
		})
	}
}

func TestFileName(t *testing.T) {
	m := font("Helvetica", "Bold")
	m.Path = "/src/HELV-B.OTF"
	assert.Equal(t, "Helvetica (Bold).otf", FileName(m, config.FamilySubfamily))

	m.Path = "/src/noext"
	assert.Equal(t, "Helvetica (Bold).ttf", FileName(m, config.FamilySubfamily))
}

func TestFileNameIsClean(t *testing.T) {
	m := font(`Bad<>:"/\|?*Name`, `Odd/Style`)
	name := FileName(m, config.FamilySubfamily)
	assert.False(t, strings.ContainsAny(name, `<>:"/\|?*`), name)
	assert.True(t, strings.HasSuffix(name, ".ttf"))
}

// --- FolderPath / Plan ---

func TestFolderPath(t *testing.T) {
	cfg := defaultCfg()
	g := Group{Family: "Helvetica Neue", Foundry: "Adobe"}

	assert.Equal(t, filepath.Join("/fonts", "Helvetica Neue"), FolderPath("/fonts", g, cfg))

	cfg.Pattern = config.FoundryFamily
	assert.Equal(t, filepath.Join("/fonts", "Adobe", "Helvetica Neue"), FolderPath("/fonts", g, cfg))

	cfg = defaultCfg().WithFoundryGrouping()
	assert.Equal(t, filepath.Join("/fonts", "Adobe", "Helvetica Neue"), FolderPath("/fonts", g, cfg))
}

func TestPlanUsesGroupKeyForFolderAndMetadataForFile(t *testing.T) {
	cfg := defaultCfg()
	m := font("Festivo LC", "Regular")
	target := Plan("/fonts", m, Group{Family: "Festivo", Foundry: "Adobe"}, cfg)

	assert.Equal(t, filepath.Join("/fonts", "Festivo"), target.Dir)
	assert.Equal(t, "Festivo LC.ttf", target.File)
	assert.Equal(t, filepath.Join("/fonts", "Festivo", "Festivo LC.ttf"), target.Path())
}

func TestPlanUsesGroupFoundryForFolder(t *testing.T) {
	cfg := defaultCfg()
	cfg.Pattern = config.FoundryFamily
	g := Group{Family: "Roboto", Foundry: "Google"}

	m := font("Roboto Slab", "Bold")
	m.Foundry = fontmeta.UnknownFoundry
	target := Plan("/fonts", m, g, cfg)

	assert.Equal(t, filepath.Join("/fonts", "Google", "Roboto"), target.Dir)
	assert.Equal(t, "Unknown_Roboto Slab (Bold).ttf", target.File)
}

// --- IsOrganized ---

func TestIsOrganized(t *testing.T) {
	cfg := defaultCfg()
	m := font("Inter", "Bold")
	dir := filepath.Join("/fonts", "Inter")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"planned name", filepath.Join(dir, "Inter (Bold).ttf"), true},
		{"collision variant", filepath.Join(dir, "Inter (Bold)_2.ttf"), true},
		{"wrong folder", filepath.Join("/fonts", "Inter (Bold).ttf"), false},
		{"wrong name", filepath.Join(dir, "inter-bold.ttf"), false},
		{"non-numeric suffix", filepath.Join(dir, "Inter (Bold)_x.ttf"), false},
		{"empty suffix", filepath.Join(dir, "Inter (Bold)_.ttf"), false},
		{"multi-digit suffix", filepath.Join(dir, "Inter (Bold)_12.ttf"), true},
		{"suffix without extension", filepath.Join(dir, "Inter (Bold)_2"), false},
		{"other extension", filepath.Join(dir, "Inter (Bold)_2.otf"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOrganized("/fonts", tt.path, m, Group{Family: "Inter", Foundry: "Adobe"}, cfg))
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "move", ActionMove.String())
	assert.Equal(t, "skip", ActionSkip.String())
	assert.Equal(t, "duplicate", ActionDuplicate.String())
	assert.Equal(t, "unknown", Action(99).String())
}
