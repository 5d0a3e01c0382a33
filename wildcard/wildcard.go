// Package wildcard implements the glob matching used on every field of a key
// pattern.
//
// A field pattern is a sequence of literal segments separated by the Token.
// Consecutive tokens collapse into a single wildcard. Matching is anchored at
// both ends of the value unless a wildcard sits at that end, so "ap*" matches
// "apple" but not "pineapple", and "*ap*" matches both.
package wildcard

import "strings"

// Token is the wildcard token. One or more consecutive occurrences match any
// run of characters, including the empty one.
const Token = "*"

// Has reports whether s contains at least one wildcard token.
func Has(s string) bool { return strings.Contains(s, Token) }

// Collapse replaces every run of consecutive tokens with a single token.
func Collapse(s string) string {
	if !strings.Contains(s, Token+Token) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := false
	for i := 0; i < len(s); i++ {
		star := s[i] == Token[0]
		if star && prev {
			continue
		}
		b.WriteByte(s[i])
		prev = star
	}
	return b.String()
}

// IsBare reports whether s is made of wildcard tokens only, and therefore
// matches any value.
func IsBare(s string) bool {
	return s != "" && strings.Trim(s, Token) == ""
}

// Match reports whether value matches the field pattern.
//
// Segments before the first wildcard must be a prefix of value, segments
// after the last wildcard a suffix, and the interior segments must occur in
// order without overlapping.
func Match(pattern, value string) bool {
	if !Has(pattern) {
		return pattern == value
	}
	if IsBare(pattern) {
		return true
	}
	segments := strings.Split(Collapse(pattern), Token)
	first, last := segments[0], segments[len(segments)-1]
	if len(value) < len(first)+len(last) {
		return false
	}
	if !strings.HasPrefix(value, first) || !strings.HasSuffix(value, last) {
		return false
	}
	// interior segments are searched between the anchored prefix and suffix.
	rest := value[len(first) : len(value)-len(last)]
	for _, seg := range segments[1 : len(segments)-1] {
		if seg == "" {
			continue
		}
		i := strings.Index(rest, seg)
		if i < 0 {
			return false
		}
		rest = rest[i+len(seg):]
	}
	return true
}
