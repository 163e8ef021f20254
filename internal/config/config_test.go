package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/home/me/fonts", "/home/me/fonts"},
		{"single trailing slash", "/home/me/fonts/", "/home/me/fonts"},
		{"multiple trailing slashes", "/home/me/fonts///", "/home/me/fonts"},
		{"root path", "/", "/"},
		{"relative path", "fonts", "fonts"},
		{"relative with slash", "fonts/", "fonts"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestParseNamingPattern(t *testing.T) {
	tests := []struct {
		in      string
		want    NamingPattern
		wantErr bool
	}{
		{"family-subfamily", FamilySubfamily, false},
		{"Foundry-Family-Subfamily", FoundryFamilySubfamily, false},
		{" family-weight ", FamilyWeight, false},
		{"foundry-family", FoundryFamily, false},
		{"family", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNamingPattern(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamingPatternTemplate(t *testing.T) {
	assert.Equal(t, "%Family% (%Subfamily%)", FamilySubfamily.Template())
	assert.Equal(t, "%Foundry% %Family% (%Subfamily%)", FoundryFamilySubfamily.Template())
	assert.Equal(t, "%Family% %Weight%", FamilyWeight.Template())
	assert.Equal(t, "%Foundry%/%Family%", FoundryFamily.Template())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"unknown pattern", func(c *Config) { c.Pattern = "weight" }, true},
		{"empty color", func(c *Config) { c.ColorMode = "" }, true},
		{"never color", func(c *Config) { c.ColorMode = ColorNever }, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"valid ignore", func(c *Config) { c.Ignore = []string{"**/*.afm", "Archive/**"} }, false},
		{"broken ignore", func(c *Config) { c.Ignore = []string{"[abc"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLeavesPromptFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AssumeFoundry = true
	cfg.NoPrompt = true

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.AssumeFoundry)
	assert.True(t, cfg.NoPrompt)
}

func TestWithFoundryGroupingDoesNotMutate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ignore = []string{"a/**"}

	clone := cfg.WithFoundryGrouping()
	clone.Ignore[0] = "b/**"

	assert.True(t, clone.GroupByFoundry)
	assert.False(t, cfg.GroupByFoundry)
	assert.Equal(t, "a/**", cfg.Ignore[0])
	assert.Equal(t, cfg.Pattern, clone.Pattern)
}

func TestIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ignore = []string{"**/*.afm", "Archive/**"}

	assert.True(t, cfg.Ignored("Helvetica.afm"))
	assert.True(t, cfg.Ignored("sub/dir/Helvetica.afm"))
	assert.True(t, cfg.Ignored("Archive/old/Inter.ttf"))
	assert.False(t, cfg.Ignored("Inter.ttf"))
}

func TestBindFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c Config)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, c Config) {
				assert.Equal(t, FamilySubfamily, c.Pattern)
				assert.Equal(t, ColorAuto, c.ColorMode)
				assert.False(t, c.DryRun)
			},
		},
		{
			name: "pattern flag",
			args: []string{"--pattern", "family-weight"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, FamilyWeight, c.Pattern)
			},
		},
		{
			name: "pattern shorthand",
			args: []string{"--foundry-family"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, FoundryFamily, c.Pattern)
			},
		},
		{
			name: "behavior flags",
			args: []string{"-n", "-r", "--ignore", "**/*.afm", "--ignore", "old/**", "-j", "3", "--keep-duplicates"},
			check: func(t *testing.T, c Config) {
				assert.True(t, c.DryRun)
				assert.True(t, c.Recursive)
				assert.Equal(t, []string{"**/*.afm", "old/**"}, c.Ignore)
				assert.Equal(t, 3, c.Workers)
				assert.True(t, c.KeepDuplicates)
			},
		},
		{
			name: "display and prompt flags",
			args: []string{"--debug", "--color", "never", "--log", "/tmp/f.log", "--group-by-foundry", "--no-prompt"},
			check: func(t *testing.T, c Config) {
				assert.True(t, c.Debug)
				assert.Equal(t, ColorNever, c.ColorMode)
				assert.Equal(t, "/tmp/f.log", c.LogFile)
				assert.True(t, c.AssumeFoundry)
				assert.True(t, c.NoPrompt)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			BindFlags(fs, &cfg)
			require.NoError(t, fs.Parse(tt.args))
			tt.check(t, cfg)
		})
	}
}

func TestBindFlagsRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"--pattern", "nope"},
		{"--color", "sometimes"},
	} {
		cfg := DefaultConfig()
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.SetOutput(&strings.Builder{})
		BindFlags(fs, &cfg)
		assert.Error(t, fs.Parse(args), "args %v", args)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "fontsrt.yaml", `
pattern: family-weight
debug: true
recursive: true
ignore:
  - "**/*.afm"
workers: 2
color: never
`)
	fc, err := LoadFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	require.NoError(t, ApplyFile(&cfg, fc, nil))
	assert.Equal(t, FamilyWeight, cfg.Pattern)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, []string{"**/*.afm"}, cfg.Ignore)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.False(t, cfg.DryRun)
}

func TestLoadFileYAMLUnknownKey(t *testing.T) {
	path := writeFile(t, "fontsrt.yml", "patern: family-weight\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestLoadFileEmptyYAML(t *testing.T) {
	path := writeFile(t, "fontsrt.yaml", "")
	fc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Nil(t, fc.Pattern)
}

func TestLoadFileHCL(t *testing.T) {
	path := writeFile(t, "fontsrt.hcl", `
pattern         = "foundry-family"
keep_duplicates = true
log             = "${cwd}/fontsrt.log"
`)
	fc, err := LoadFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	require.NoError(t, ApplyFile(&cfg, fc, nil))
	assert.Equal(t, FoundryFamily, cfg.Pattern)
	assert.True(t, cfg.KeepDuplicates)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd+"/fontsrt.log", cfg.LogFile)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") }},
		{"unknown extension", func(t *testing.T) string { return writeFile(t, "fontsrt.toml", "x = 1") }},
		{"bad hcl", func(t *testing.T) string { return writeFile(t, "fontsrt.hcl", "pattern = ") }},
		{"unknown hcl attribute", func(t *testing.T) string { return writeFile(t, "fontsrt.hcl", `colour = "never"`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
		})
	}
}

func TestApplyFileFlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &cfg)
	require.NoError(t, fs.Parse([]string{"--pattern", "family-weight", "--workers", "7"}))

	pattern := "foundry-family"
	workers := 1
	debug := true
	fc := &FileConfig{Pattern: &pattern, Workers: &workers, Debug: &debug}

	require.NoError(t, ApplyFile(&cfg, fc, fs))
	assert.Equal(t, FamilyWeight, cfg.Pattern)
	assert.Equal(t, 7, cfg.Workers)
	assert.True(t, cfg.Debug)
}

func TestApplyFileBadPattern(t *testing.T) {
	cfg := DefaultConfig()
	bad := "by-vibes"
	err := ApplyFile(&cfg, &FileConfig{Pattern: &bad}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
}
