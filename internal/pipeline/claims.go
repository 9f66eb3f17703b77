package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var clauseSplit = regexp.MustCompile(`[.!?]`)

const maxClaimChars = 300

// ExtractClaim reduces a signal text to its lead claim: the first clause,
// unless it is shorter than six words and a second clause exists, in which
// case the second clause is taken. Truncated to 300 chars.
func ExtractClaim(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	parts := clauseSplit.Split(s, -1)
	first := strings.TrimSpace(parts[0])
	if len(strings.Fields(first)) < 6 && len(parts) > 1 {
		return truncate(strings.TrimSpace(parts[1]), maxClaimChars)
	}
	return truncate(first, maxClaimChars)
}

// ExtractClaims applies ExtractClaim to every text
func ExtractClaims(texts []string) []string {
	claims := make([]string, len(texts))
	for i, t := range texts {
		claims[i] = ExtractClaim(t)
	}
	return claims
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
