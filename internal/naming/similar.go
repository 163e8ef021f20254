package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Thresholds for Similar.
const (
	minSharedWordLen   = 4 // Shared first word must be at least this long.
	minPrefixRuleLen   = 4 // Common-prefix rule applies from this length.
	prefixRatioPercent = 70
	editDivisor        = 5 // Allowed edits: shorter length / editDivisor, at least 1.
)

// Similar reports whether two family keys likely name the same family.
// Comparison is case-insensitive with whitespace collapsed. Rules, in order:
//
//  1. identical names are similar;
//  2. different first letters are never similar;
//  3. a name that prefixes the other is similar;
//  4. a shared first word of four or more letters is similar;
//  5. a common prefix covering 70% of the shorter name (four or more
//     letters) is similar;
//  6. otherwise, a Levenshtein distance of at most max(1, shorter/5).
func Similar(a, b string) bool {
	a, b = canonical(a), canonical(b)
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}

	ra, _ := utf8.DecodeRuneInString(a)
	rb, _ := utf8.DecodeRuneInString(b)
	if ra != rb {
		return false
	}

	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		return true
	}

	wa, wb := firstWord(a), firstWord(b)
	if wa == wb && utf8.RuneCountInString(wa) >= minSharedWordLen {
		return true
	}

	shorter := min(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if shorter >= minPrefixRuleLen && commonPrefixLen(a, b)*100 >= shorter*prefixRatioPercent {
		return true
	}

	return levenshtein.Distance(a, b, nil) <= max(1, shorter/editDivisor)
}

// canonical lower-cases s and collapses runs of whitespace.
func canonical(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func firstWord(s string) string {
	word, _, _ := strings.Cut(s, " ")
	return word
}

// commonPrefixLen counts the leading runes a and b share.
func commonPrefixLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return n
}

// CommonWordPrefix returns the leading whole words shared by every name,
// compared case-insensitively and written as in the first name. It returns
// "" when names is empty or the first words differ.
func CommonWordPrefix(names ...string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := strings.Fields(names[0])
	for _, name := range names[1:] {
		words := strings.Fields(name)
		n := 0
		for n < len(prefix) && n < len(words) && strings.EqualFold(prefix[n], words[n]) {
			n++
		}
		prefix = prefix[:n]
	}
	return strings.Join(prefix, " ")
}
