package analysis

import "sort"

// Coordination measures dominance of the top-3 sources within a bundle:
// the sum of the three highest occurrence counts over the total count.
// High values mean few sources dominate the narrative.
func Coordination(sources []string) float64 {
	if len(sources) == 0 {
		return 0.0
	}

	counts := make(map[string]int)
	for _, s := range sources {
		counts[s]++
	}

	occurrences := make([]int, 0, len(counts))
	for _, c := range counts {
		occurrences = append(occurrences, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(occurrences)))

	top := 0
	for i, c := range occurrences {
		if i >= 3 {
			break
		}
		top += c
	}

	return float64(top) / float64(len(sources))
}
