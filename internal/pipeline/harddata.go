package pipeline

import (
	"regexp"
	"strings"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

var (
	pctPattern = regexp.MustCompile(`[+-]?\d+(?:\.\d+)?\s?%`)
	valPattern = regexp.MustCompile(`(?:[$€£]|USD|EUR|BRL)\s?\d+(?:\.\d+)?\s?(?:M|bn|k|milhões|bilhões)?`)
)

const maxHardDataPerKind = 10

// ExtractHardData scans texts for numeric facts: percentages and monetary
// values, unique in first-seen order, top 10 per kind.
func ExtractHardData(texts []string) models.HardData {
	combined := strings.Join(texts, " ")

	return models.HardData{
		Percentages: uniqueHead(pctPattern.FindAllString(combined, -1), maxHardDataPerKind),
		Monetary:    uniqueHead(valPattern.FindAllString(combined, -1), maxHardDataPerKind),
		KeyNumbers:  []string{},
	}
}

// FormatHardData renders the extracted facts as prompt evidence
func FormatHardData(data models.HardData) string {
	if len(data.Percentages) == 0 && len(data.Monetary) == 0 {
		return "Nenhum dado numerico concreto detectado."
	}

	var b strings.Builder
	b.WriteString("DADOS CONCRETOS DETECTADOS:\n")
	if len(data.Percentages) > 0 {
		b.WriteString("- Variacoes/Percentagens: " + strings.Join(data.Percentages, ", ") + "\n")
	}
	if len(data.Monetary) > 0 {
		b.WriteString("- Valores/Moeda: " + strings.Join(data.Monetary, ", ") + "\n")
	}
	return b.String()
}

func uniqueHead(matches []string, limit int) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, limit)
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out
}
