// Package check audits an organized font tree without changing it
// (`fontsrt check`). It reports files that are not valid fonts, fonts that
// cannot be read, and fonts that are not where a sort run would put them.
package check

import (
	"path/filepath"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/fontmeta"
	"github.com/backmassage/fontsrt/internal/grouper"
	"github.com/backmassage/fontsrt/internal/pipeline"
	"github.com/backmassage/fontsrt/internal/planner"
)

// Logger is the minimal logging interface needed by Run.
// Defined here so check can be tested with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Misplaced is a font that is not at its planned location.
type Misplaced struct {
	Path    string
	Planned string
}

// Report is the result of an audit.
type Report struct {
	Fonts      int // Readable fonts with a family name.
	Organized  int
	Misplaced  []Misplaced
	NotFonts   []string // Font extension, but failed the font check.
	Unreadable []string
}

// OK reports whether the audit found nothing to fix.
func (r Report) OK() bool {
	return len(r.Misplaced) == 0 && len(r.NotFonts) == 0 && len(r.Unreadable) == 0
}

// Run audits dir. Fonts are grouped the way a sort run groups them, and a
// font counts as organized when it sits at its planned location with or
// without a foundry level. The duplicates folder is not audited.
func Run(dir string, cfg *config.Config, reader fontmeta.Reader, log Logger) (Report, error) {
	walk := *cfg
	walk.Recursive = true
	files, err := pipeline.Discover(dir, &walk)
	if err != nil {
		return Report{}, err
	}

	var report Report
	metadata := make(map[string]fontmeta.Metadata, len(files))
	for _, path := range files {
		if !reader.IsFontFile(path) {
			report.NotFonts = append(report.NotFonts, path)
			continue
		}
		m, err := reader.ReadMetadata(path)
		if err != nil {
			log.Debug("Cannot read %s: %v", path, err)
			report.Unreadable = append(report.Unreadable, path)
			continue
		}
		if m == nil {
			continue
		}
		metadata[path] = *m
	}
	report.Fonts = len(metadata)

	groups, _ := grouper.Merge(grouper.Group(metadata))
	foundryCfg := cfg.WithFoundryGrouping()
	for _, key := range groups.Keys() {
		g := planner.Group{Family: key, Foundry: grouper.Foundry(groups[key])}
		for _, e := range groups[key] {
			if planner.IsOrganized(dir, e.Path, e.Meta, g, cfg) ||
				planner.IsOrganized(dir, e.Path, e.Meta, g, foundryCfg) {
				report.Organized++
				continue
			}
			report.Misplaced = append(report.Misplaced, Misplaced{
				Path:    e.Path,
				Planned: planner.Plan(dir, e.Meta, g, cfg).Path(),
			})
		}
	}

	logReport(dir, report, log)
	return report, nil
}

func logReport(dir string, r Report, log Logger) {
	log.Info("=== Check: %s ===", dir)
	log.Info("%d fonts, %d organized", r.Fonts, r.Organized)
	for _, m := range r.Misplaced {
		log.Warn("Misplaced: %s (expected %s)", rel(dir, m.Path), rel(dir, m.Planned))
	}
	for _, p := range r.NotFonts {
		log.Warn("Not a font: %s", rel(dir, p))
	}
	for _, p := range r.Unreadable {
		log.Error("Unreadable: %s", rel(dir, p))
	}
	if r.OK() {
		log.Success("Everything is in place")
	}
}

func rel(dir, path string) string {
	if r, err := filepath.Rel(dir, path); err == nil {
		return r
	}
	return path
}
