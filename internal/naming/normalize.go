package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Unknown replaces names that normalize or clean to nothing.
const Unknown = "Unknown"

// variableSuffix marks variable fonts; it never belongs to the family key.
const variableSuffix = "Variable"

// preserveTerms denote genuinely distinct families. A name containing one
// as a whole token is returned without style stripping.
var preserveTerms = map[string]bool{
	"Alt":     true,
	"CF":      true,
	"NF":      true,
	"SC":      true,
	"Text":    true,
	"Display": true,
	"Serif":   true,
	"Mono":    true,
}

// styleTokens are trailing words that describe a style rather than a
// family. Longer tokens come first so embedded matching strips
// "ExtraBold" rather than just "Bold".
var styleTokens = []string{
	"ExtraLight", "UltraLight", "ExtraBold", "UltraBold",
	"Condensed", "Expanded", "SemiBold", "DemiBold", "Hairline",
	"Variable", "Regular", "Oblique", "Italic", "Medium",
	"Poster", "Narrow", "Black", "Light", "Heavy", "Title",
	"Extra", "Ultra", "Bold", "Thin", "Book", "Wide", "Semi", "Demi",
}

// ordinalToken matches "2", "3rd", "21st" and similar trailing counters.
var ordinalToken = regexp.MustCompile(`(?i)^[0-9]+(st|nd|rd|th)?$`)

// tokenAction says what to do with a trailing token.
type tokenAction int

const (
	keepToken tokenAction = iota
	dropToken
	trimToken
)

// trailingRules decide, in order, whether the last token of a name is
// dropped, trimmed of an embedded style suffix, or kept.
var trailingRules = []struct {
	name   string
	action tokenAction
	match  func(tok string) bool
}{
	{"style word", dropToken, isStyleToken},
	{"ordinal", dropToken, ordinalToken.MatchString},
	{"embedded style", trimToken, func(tok string) bool { return embeddedStyleCut(tok) > 0 }},
}

// Normalize reduces a raw family name to its grouping key. It is pure,
// deterministic, idempotent, and never returns an empty string.
func Normalize(raw string) string {
	original := strings.Fields(raw)
	if len(original) == 0 {
		return Unknown
	}

	tokens := stripVariable(original)
	if hasPreserveTerm(tokens) {
		return strings.Join(tokens, " ")
	}

	tokens = stripTrailingStyles(tokens)
	if len(tokens) == 0 {
		return original[0]
	}
	return strings.Join(tokens, " ")
}

// stripVariable removes every trailing "Variable" token.
func stripVariable(tokens []string) []string {
	end := len(tokens)
	for end > 0 && strings.EqualFold(tokens[end-1], variableSuffix) {
		end--
	}
	return tokens[:end]
}

func hasPreserveTerm(tokens []string) bool {
	for _, tok := range tokens {
		if preserveTerms[tok] {
			return true
		}
	}
	return false
}

// stripTrailingStyles applies trailingRules to the last token until none
// match. The input slice is not modified.
func stripTrailingStyles(tokens []string) []string {
	out := append([]string(nil), tokens...)
	for len(out) > 0 {
		last := out[len(out)-1]
		action := keepToken
		for _, rule := range trailingRules {
			if rule.match(last) {
				action = rule.action
				break
			}
		}
		switch action {
		case dropToken:
			out = out[:len(out)-1]
		case trimToken:
			out[len(out)-1] = last[:embeddedStyleCut(last)]
		default:
			return out
		}
	}
	return out
}

func isStyleToken(tok string) bool {
	for _, style := range styleTokens {
		if strings.EqualFold(tok, style) {
			return true
		}
	}
	return false
}

// embeddedStyleCut returns the byte offset where a camel-case style suffix
// starts in tok ("RobotoBold" → 6), or 0 when there is none. The suffix
// must start with an upper-case letter that follows a lower-case letter or
// digit, and something must remain before it.
func embeddedStyleCut(tok string) int {
	for _, style := range styleTokens {
		if len(tok) <= len(style) {
			continue
		}
		cut := len(tok) - len(style)
		if !strings.EqualFold(tok[cut:], style) {
			continue
		}
		first, _ := utf8.DecodeRuneInString(tok[cut:])
		prev, _ := utf8.DecodeLastRuneInString(tok[:cut])
		if unicode.IsUpper(first) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			return cut
		}
	}
	return 0
}
