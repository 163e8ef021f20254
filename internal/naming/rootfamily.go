package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minRootLen is the shortest first word RootFamily will reduce to.
const minRootLen = 4

// RootFamily reduces names like "Arial A", "Breul B", or "Roboto 2" to their
// first word. Everything else is returned trimmed and otherwise unchanged;
// "Hygge Sans" and "Festivo Basic" keep their full names.
func RootFamily(family string) string {
	tokens := strings.Fields(family)
	if len(tokens) < 2 {
		return strings.TrimSpace(family)
	}
	first, second := tokens[0], tokens[1]
	if utf8.RuneCountInString(first) < minRootLen {
		return strings.TrimSpace(family)
	}
	if utf8.RuneCountInString(second) <= 2 || isDigits(second) {
		return first
	}
	return strings.TrimSpace(family)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
