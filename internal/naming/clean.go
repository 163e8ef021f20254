package naming

import (
	"strings"
	"unicode"
)

// illegalChars are replaced by underscores in path components.
const illegalChars = `<>:"/\|?*`

// Clean makes s safe as a single path component: illegal characters become
// underscores, surrounding whitespace and dots are trimmed, and an empty
// result becomes "Unknown".
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return '_'
		}
		return r
	}, s)
	s = strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '.' })
	if s == "" {
		return Unknown
	}
	return s
}
