package config

// This file loads optional config files. The format is chosen by extension:
// .yaml/.yml decode strictly with yaml.v3, .hcl decodes through gohcl with
// `home` and `cwd` variables available to expressions.

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/pflag"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the settable Config fields. Nil means "not present in
// the file" so ApplyFile can leave defaults and flags alone.
type FileConfig struct {
	Pattern        *string  `yaml:"pattern"         hcl:"pattern,optional"`
	Debug          *bool    `yaml:"debug"           hcl:"debug,optional"`
	GroupByFoundry *bool    `yaml:"group_by_foundry" hcl:"group_by_foundry,optional"`
	NoPrompt       *bool    `yaml:"no_prompt"       hcl:"no_prompt,optional"`
	DryRun         *bool    `yaml:"dry_run"         hcl:"dry_run,optional"`
	Recursive      *bool    `yaml:"recursive"       hcl:"recursive,optional"`
	Ignore         []string `yaml:"ignore"          hcl:"ignore,optional"`
	Workers        *int     `yaml:"workers"         hcl:"workers,optional"`
	KeepDuplicates *bool    `yaml:"keep_duplicates" hcl:"keep_duplicates,optional"`
	Color          *string  `yaml:"color"           hcl:"color,optional"`
	Log            *string  `yaml:"log"             hcl:"log,optional"`
}

// LoadFile reads and decodes a config file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("%w: reading config file: %w", ErrConfig, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return loadYAML(data)
	case ".hcl":
		return loadHCL(data, path)
	default:
		return nil, errors.Errorf("%w: unsupported config file extension %q (use .yaml, .yml or .hcl)", ErrConfig, ext)
	}
}

// loadYAML decodes YAML, rejecting unknown keys.
func loadYAML(data []byte) (*FileConfig, error) {
	var fc FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, errors.Errorf("%w: parsing YAML: %w", ErrConfig, err)
	}
	return &fc, nil
}

// loadHCL decodes HCL attributes into a FileConfig.
func loadHCL(data []byte, filename string) (*FileConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: parsing HCL: %s", ErrConfig, diags.Error())
	}

	var fc FileConfig
	diags = gohcl.DecodeBody(file.Body, evalContext(), &fc)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: decoding HCL: %s", ErrConfig, diags.Error())
	}
	return &fc, nil
}

// evalContext exposes the user's home and working directory to HCL
// expressions, e.g. log = "${home}/.cache/fontsrt.log".
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	if home, err := os.UserHomeDir(); err == nil {
		vars["home"] = cty.StringVal(home)
	}
	if cwd, err := os.Getwd(); err == nil {
		vars["cwd"] = cty.StringVal(cwd)
	}
	return &hcl.EvalContext{Variables: vars}
}

// ApplyFile copies values from fc into cfg for every field whose flag was
// not explicitly set on fs. fs may be nil, in which case all values apply.
func ApplyFile(cfg *Config, fc *FileConfig, fs *pflag.FlagSet) error {
	if fc == nil {
		return nil
	}
	unset := func(name string) bool {
		return fs == nil || fs.Lookup(name) == nil || !fs.Changed(name)
	}

	if fc.Pattern != nil && unset(FlagPattern) && unset(string(FoundryFamilySubfamily)) &&
		unset(string(FamilyWeight)) && unset(string(FoundryFamily)) {
		p, err := ParseNamingPattern(*fc.Pattern)
		if err != nil {
			return err
		}
		cfg.Pattern = p
	}
	if fc.Color != nil && unset(FlagColor) {
		if err := (&colorModeValue{&cfg.ColorMode}).Set(*fc.Color); err != nil {
			return errors.Errorf("%w: %w", ErrConfig, err)
		}
	}
	applyBool(&cfg.Debug, fc.Debug, unset(FlagDebug))
	applyBool(&cfg.AssumeFoundry, fc.GroupByFoundry, unset(FlagGroupByFoundry))
	applyBool(&cfg.NoPrompt, fc.NoPrompt, unset(FlagNoPrompt))
	applyBool(&cfg.DryRun, fc.DryRun, unset(FlagDryRun))
	applyBool(&cfg.Recursive, fc.Recursive, unset(FlagRecursive))
	applyBool(&cfg.KeepDuplicates, fc.KeepDuplicates, unset(FlagKeepDuplicates))
	if fc.Ignore != nil && unset(FlagIgnore) {
		cfg.Ignore = append([]string(nil), fc.Ignore...)
	}
	if fc.Workers != nil && unset(FlagWorkers) {
		cfg.Workers = *fc.Workers
	}
	if fc.Log != nil && unset(FlagLog) {
		cfg.LogFile = *fc.Log
	}
	return nil
}

func applyBool(dst *bool, v *bool, apply bool) {
	if v != nil && apply {
		*dst = *v
	}
}
