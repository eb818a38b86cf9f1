package pipeline

import "slices"

// median returns the upper median: for even-sized samples the element at
// index len/2 of the ascending sort, not an interpolated middle. Downstream
// output compatibility depends on this exact tie-break.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

func average(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// modeString returns the most frequent value, breaking ties in favor of the
// value that reached the winning count first. Returns "" for an empty list.
func modeString(values []string) string {
	counts := make(map[string]int, len(values))
	best := ""
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
