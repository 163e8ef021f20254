package fontmeta

import "strings"

// weightRules maps subfamily substrings to weight classes. Rules are tried
// in order, so compound terms (extrablack, semibold) come before the plain
// terms they contain (black, bold).
var weightRules = []struct {
	terms  []string
	weight int
}{
	{[]string{"extrablack", "ultrablack", "extra black", "ultra black"}, 950},
	{[]string{"thin", "hairline"}, 100},
	{[]string{"extralight", "extra light", "ultralight", "ultra light"}, 200},
	{[]string{"semibold", "demibold", "semi bold", "demi bold"}, 600},
	{[]string{"extrabold", "ultrabold", "extra bold", "ultra bold"}, 800},
	{[]string{"light"}, 300},
	{[]string{"medium"}, 500},
	{[]string{"bold"}, 700},
	{[]string{"black", "heavy"}, 900},
	{[]string{"regular", "normal", "book"}, 400},
}

// DefaultWeight is used when a subfamily names no weight.
const DefaultWeight = 400

// Weight classifies a subfamily string into a numeric weight.
func Weight(subfamily string) int {
	s := strings.ToLower(subfamily)
	for _, rule := range weightRules {
		for _, term := range rule.terms {
			if strings.Contains(s, term) {
				return rule.weight
			}
		}
	}
	return DefaultWeight
}

// IsItalic reports whether a subfamily string names an italic or oblique style.
func IsItalic(subfamily string) bool {
	s := strings.ToLower(subfamily)
	return strings.Contains(s, "italic") || strings.Contains(s, "oblique")
}
