package fontmeta

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownFoundries is matched against family prefixes, the manufacturer
// name, and directory names. Longer names come before names they contain.
var knownFoundries = []string{
	"Adobe", "Monotype", "Linotype", "ITC", "URW", "Bitstream", "Google",
	"Microsoft", "Apple", "IBM", "Hoefler", "Typekit", "FontFont", "Emigre",
	"Dalton Maag", "Font Bureau", "House Industries", "P22", "Typotheque",
	"Underware", "Fontfabric", "Fontsmith", "Klim", "Process", "Commercial",
	"Grilli", "Production", "Sudtipos", "Typofonderie", "Canada", "Rosetta",
	"Darden", "Positype", "Typonine", "Latinotype", "Typejockeys", "Suitcase",
	"Elsner+Flake", "Scangraphic", "Berthold", "Letraset", "Agfa", "Paratype",
	"Fontshop", "Letterhead", "Neufville",
}

// postScriptVendors maps the vendor prefix of a "VEND-Name" PostScript
// name to its foundry.
var postScriptVendors = map[string]string{
	"ADBE": "Adobe",
	"MONO": "Monotype",
	"LINO": "Linotype",
	"ITC":  "ITC",
	"URW":  "URW",
	"BITS": "Bitstream",
	"GOOG": "Google",
	"MSFT": "Microsoft",
	"APPL": "Apple",
	"IBM":  "IBM",
	"HOEF": "Hoefler",
	"TKIT": "Typekit",
	"FNTF": "FontFont",
	"EMGR": "Emigre",
	"DLTN": "Dalton Maag",
	"FNTB": "Font Bureau",
	"HIND": "House Industries",
	"P22":  "P22",
	"TYPO": "Typotheque",
	"UNDR": "Underware",
	"KLIM": "Klim",
	"PROC": "Process",
	"COMM": "Commercial",
	"GRIL": "Grilli",
	"SUDT": "Sudtipos",
	"TYPF": "Typofonderie",
	"CANA": "Canada",
	"ROSE": "Rosetta",
	"DARD": "Darden",
	"POSI": "Positype",
	"TYPN": "Typonine",
	"LATN": "Latinotype",
	"TYPJ": "Typejockeys",
	"SUIT": "Suitcase",
	"ELSN": "Elsner+Flake",
	"SCAN": "Scangraphic",
	"BERT": "Berthold",
	"LETR": "Letraset",
	"AGFA": "Agfa",
	"PARA": "Paratype",
	"FNTS": "Fontsmith",
	"LTTR": "Letterhead",
	"NEUF": "Neufville",
}

// trailingAbbreviations maps a suffix such as the "LT" in "HelveticaLT" or
// "Helvetica LT" to a foundry. Checked in order; ambiguous suffixes resolve
// to the more common foundry.
var trailingAbbreviations = []struct {
	abbr    string
	foundry string
}{
	{"ITC", "ITC"},
	{"URW", "URW"},
	{"P22", "P22"},
	{"LT", "Linotype"},
	{"MT", "Monotype"},
	{"BT", "Bitstream"},
	{"MS", "Microsoft"},
	{"GD", "Adobe"},
	{"FF", "FontFont"},
	{"DF", "Emigre"},
	{"DM", "Dalton Maag"},
	{"FB", "Font Bureau"},
	{"HI", "House Industries"},
	{"TT", "Typotheque"},
	{"UW", "Underware"},
	{"FS", "Fontsmith"},
	{"KT", "Klim"},
	{"PT", "Process"},
	{"CT", "Commercial"},
	{"GT", "Grilli"},
	{"ST", "Sudtipos"},
	{"TF", "Typofonderie"},
	{"CD", "Canada"},
	{"RT", "Rosetta"},
	{"DD", "Darden"},
	{"TN", "Typonine"},
	{"TJ", "Typejockeys"},
	{"SC", "Suitcase"},
	{"EF", "Elsner+Flake"},
	{"SG", "Scangraphic"},
	{"LS", "Letraset"},
	{"AG", "Agfa"},
	{"LH", "Letterhead"},
	{"NV", "Neufville"},
}

// leadingFoundry matches family names such as "Adobe Garamond".
var leadingFoundry = regexp.MustCompile(`^(` + foundryAlternation() + `)\s+\S`)

func foundryAlternation() string {
	quoted := make([]string, len(knownFoundries))
	for i, f := range knownFoundries {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(quoted, "|")
}

// NameSources are the strings foundry inference looks at.
type NameSources struct {
	PostScript   string
	Manufacturer string
	Family       string
	Path         string
}

// InferFoundry runs each inference step in order and returns the first hit:
// PostScript vendor prefix, manufacturer name, leading foundry in the
// family, trailing abbreviation, then the parent and grandparent directory.
func InferFoundry(src NameSources) string {
	steps := []func(NameSources) string{
		func(s NameSources) string { return FoundryFromPostScript(s.PostScript) },
		func(s NameSources) string { return FoundryFromManufacturer(s.Manufacturer) },
		func(s NameSources) string { return FoundryFromFamily(s.Family) },
		func(s NameSources) string { return FoundryFromAbbreviation(s.Family) },
		func(s NameSources) string { return FoundryFromPath(s.Path) },
	}
	for _, step := range steps {
		if f := step(src); f != "" {
			return f
		}
	}
	return UnknownFoundry
}

// FoundryFromPostScript resolves "ADBE-Garamond" style vendor prefixes.
func FoundryFromPostScript(psName string) string {
	vendor, _, ok := strings.Cut(psName, "-")
	if !ok {
		return ""
	}
	return postScriptVendors[vendor]
}

// FoundryFromManufacturer finds a known foundry inside the name table's
// manufacturer string, e.g. "Adobe Systems Incorporated".
func FoundryFromManufacturer(manufacturer string) string {
	if manufacturer == "" {
		return ""
	}
	lower := strings.ToLower(manufacturer)
	for _, f := range knownFoundries {
		if _, ok := findWord(lower, strings.ToLower(f)); ok {
			return f
		}
	}
	return ""
}

// FoundryFromFamily returns the foundry a family name starts with.
func FoundryFromFamily(family string) string {
	m := leadingFoundry.FindStringSubmatch(family)
	if m == nil {
		return ""
	}
	return m[1]
}

// FoundryFromAbbreviation resolves a trailing foundry abbreviation. The
// abbreviation must be its own word or follow a lowercase letter, so
// "HelveticaLT" and "Helvetica LT" match but "ROBOTO" does not.
func FoundryFromAbbreviation(family string) string {
	family = strings.TrimSpace(family)
	for _, t := range trailingAbbreviations {
		if !strings.HasSuffix(family, t.abbr) {
			continue
		}
		rest := family[:len(family)-len(t.abbr)]
		if rest == "" {
			continue
		}
		prev := []rune(rest)[len([]rune(rest))-1]
		if unicode.IsSpace(prev) || unicode.IsLower(prev) {
			return t.foundry
		}
	}
	return ""
}

// FoundryFromPath looks for a known foundry name in the parent, then the
// grandparent, directory of path. The match is returned as it is written
// in the directory name, title-cased.
func FoundryFromPath(path string) string {
	if path == "" {
		return ""
	}
	parent := filepath.Dir(path)
	for _, dir := range []string{parent, filepath.Dir(parent)} {
		name := filepath.Base(dir)
		if name == "." || name == string(filepath.Separator) {
			continue
		}
		lower := strings.ToLower(name)
		for _, f := range knownFoundries {
			if i, ok := findWord(lower, strings.ToLower(f)); ok {
				match := lower[i : i+len(f)]
				if len(lower) == len(name) {
					match = name[i : i+len(f)]
				}
				return titleCase(match)
			}
		}
	}
	return ""
}

// titleCase upper-cases the first letter of each word and leaves the rest
// alone, so "dalton maag" becomes "Dalton Maag" and "ITC" stays "ITC".
func titleCase(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// findWord returns the byte index of needle in haystack when it is bounded
// by non-alphanumeric characters or the string ends. Both are lowercase.
func findWord(haystack, needle string) (int, bool) {
	for from := 0; from <= len(haystack)-len(needle); {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return 0, false
		}
		i += from
		end := i + len(needle)
		if boundary(haystack, i-1) && boundary(haystack, end) {
			return i, true
		}
		from = i + 1
	}
	return 0, false
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := rune(s[i])
	return !unicode.IsLetter(c) && !unicode.IsDigit(c)
}
