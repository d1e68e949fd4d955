package structure

import "sort"

// fontStatsSamplePages bounds the font-statistics pass to the document head.
const fontStatsSamplePages = 5

// fallbackHeadingThreshold is used when the sample contains no positive font
// sizes at all; heading detection then degrades to the text-only heuristic.
const fallbackHeadingThreshold = 12.0

// headingScale sets the heading threshold relative to the body-text mode.
const headingScale = 1.2

// FontStats summarizes the font sizes observed in the document sample.
// Mode is the most frequent size and is presumed to be body text.
type FontStats struct {
	Min              float64
	Max              float64
	Median           float64
	Mode             float64
	ModeCount        int
	Sizes            []float64
	HeadingThreshold float64
}

// ComputeFontStats samples up to the first five pages, weighting each word's
// size by its character count so the mode tracks per-character frequency.
func ComputeFontStats(pages []Page) FontStats {
	stats := FontStats{HeadingThreshold: fallbackHeadingThreshold}

	counts := make(map[float64]int)
	var order []float64 // first-seen order for deterministic tie-breaks

	sample := pages
	if len(sample) > fontStatsSamplePages {
		sample = sample[:fontStatsSamplePages]
	}

	for _, page := range sample {
		for _, w := range page.Words {
			if w.FontSize <= 0 {
				continue
			}
			chars := len([]rune(w.Text))
			if chars == 0 {
				chars = 1
			}
			if counts[w.FontSize] == 0 {
				order = append(order, w.FontSize)
			}
			counts[w.FontSize] += chars
			for i := 0; i < chars; i++ {
				stats.Sizes = append(stats.Sizes, w.FontSize)
			}
			if stats.Min == 0 || w.FontSize < stats.Min {
				stats.Min = w.FontSize
			}
			if w.FontSize > stats.Max {
				stats.Max = w.FontSize
			}
		}
	}

	if len(stats.Sizes) == 0 {
		return stats
	}

	sorted := append([]float64(nil), stats.Sizes...)
	sort.Float64s(sorted)
	stats.Median = sorted[len(sorted)/2]

	for _, size := range order {
		if counts[size] > stats.ModeCount {
			stats.Mode = size
			stats.ModeCount = counts[size]
		}
	}
	stats.HeadingThreshold = stats.Mode * headingScale

	return stats
}
