package pipeline

import (
	"regexp"
	"strings"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"if": true, "in": true, "on": true, "at": true, "for": true, "to": true,
	"of": true, "with": true, "by": true, "from": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "can": true,
}

var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)copyright.*?reserved\.?`),
	regexp.MustCompile(`(?i)all rights reserved\.?`),
	regexp.MustCompile(`(?i)reuters`),
	regexp.MustCompile(`(?i)associated press`),
	regexp.MustCompile(`©\s?\d{4}`),
}

var punctStrip = regexp.MustCompile(`[^\w\s.\-]`)

// TokenSieve aggressively cleans free text for prompts and local
// summaries: lowercased, boilerplate and stopwords removed.
func TokenSieve(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	for _, p := range boilerplatePatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = punctStrip.ReplaceAllString(text, "")

	words := make([]string, 0, len(text)/5)
	for _, w := range strings.Fields(text) {
		if stopwords[w] || len(w) <= 2 {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// LocalSummary is the fallback summary: the sieved head of the top three
// texts.
func LocalSummary(texts []string) string {
	if len(texts) == 0 {
		return "Sem dados para resumir."
	}

	var b strings.Builder
	b.WriteString("Resumo Local:\n")
	for i, t := range texts {
		if i >= 3 {
			break
		}
		clean := truncate(TokenSieve(t), 150)
		b.WriteString("- " + clean + "...\n")
	}
	return b.String()
}
