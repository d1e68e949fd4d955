package structure

import (
	"strings"
	"unicode"
)

// Heading classification is an ordered list of named predicate rules
// evaluated short-circuit, so the policy is inspectable data rather than
// buried control flow.

// ruleInput carries everything a heading rule may look at.
type ruleInput struct {
	text     string
	size     float64
	fontName string
	stats    FontStats
}

type headingRule struct {
	name    string
	matches func(in ruleInput) bool
}

// boldFontMarkers are substrings of font family names that indicate a
// heading-weight face.
var boldFontMarkers = []string{"bold", "black", "heavy", "extrabold"}

// fontHeadingRules classify a paragraph's first line using font properties,
// falling back to text shape when size information is absent.
var fontHeadingRules = []headingRule{
	{
		// Larger than 120% of the body-text mode.
		name: "size-above-threshold",
		matches: func(in ruleInput) bool {
			return in.size > in.stats.HeadingThreshold
		},
	},
	{
		// Face name marks a heavy weight regardless of size.
		name: "bold-font-name",
		matches: func(in ruleInput) bool {
			lower := strings.ToLower(in.fontName)
			for _, marker := range boldFontMarkers {
				if strings.Contains(lower, marker) {
					return true
				}
			}
			return false
		},
	},
	{
		// No size data at all: defer to the text-only heuristic.
		name: "no-font-info",
		matches: func(in ruleInput) bool {
			return in.size == 0 && isHeadingByText(in.text)
		},
	},
	{
		// Known size below threshold, but the text is short and shaped
		// like a title.
		name: "short-title-shape",
		matches: func(in ruleInput) bool {
			if in.size == 0 || len(in.text) >= 150 {
				return false
			}
			if isTitleCase(in.text) && len(in.text) < 100 {
				return true
			}
			return isAllUpper(in.text) && len(in.text) < 80
		},
	},
}

// isHeadingFontBased reports whether a line opens a new section. Text under
// three characters never qualifies.
func isHeadingFontBased(text string, size float64, fontName string, stats FontStats) bool {
	if len(text) < 3 {
		return false
	}
	in := ruleInput{text: text, size: size, fontName: fontName, stats: stats}
	for _, rule := range fontHeadingRules {
		if rule.matches(in) {
			return true
		}
	}
	return false
}

// textHeadingRules are the pure shape heuristics used when no font size data
// exists for a line.
var textHeadingRules = []headingRule{
	{
		name: "very-short",
		matches: func(in ruleInput) bool {
			return len(in.text) < 20 && wordCount(in.text) < 5
		},
	},
	{
		name: "title-case",
		matches: func(in ruleInput) bool {
			return isTitleCase(in.text) && len(in.text) < 100 && wordCount(in.text) < 10
		},
	},
	{
		name: "all-caps",
		matches: func(in ruleInput) bool {
			return isAllUpper(in.text) && len(in.text) < 80 && wordCount(in.text) < 12
		},
	},
	{
		name: "mostly-capitalized",
		matches: func(in ruleInput) bool {
			words := strings.Fields(in.text)
			if len(words) >= 8 || len(in.text) >= 80 {
				return false
			}
			capitalized := 0
			for _, w := range words {
				r := []rune(w)
				if len(r) > 0 && unicode.IsUpper(r[0]) {
					capitalized++
				}
			}
			return float64(capitalized) >= float64(len(words))*0.7
		},
	},
	{
		name: "trailing-colon",
		matches: func(in ruleInput) bool {
			return strings.HasSuffix(in.text, ":") && len(in.text) < 100
		},
	},
	{
		// Short line with no sentence punctuation in its interior
		// (headings rarely carry mid-line periods or commas).
		name: "short-unpunctuated",
		matches: func(in ruleInput) bool {
			if len(in.text) >= 150 || wordCount(in.text) >= 15 {
				return false
			}
			mid := in.text
			if len(in.text) > 20 {
				mid = in.text[10 : len(in.text)-10]
			}
			return !strings.ContainsAny(mid, ".!?,")
		},
	},
}

// isHeadingByText is the fallback heuristic used only when font size data is
// entirely absent for a line.
func isHeadingByText(text string) bool {
	if len(text) < 3 {
		return false
	}
	in := ruleInput{text: text}
	for _, rule := range textHeadingRules {
		if rule.matches(in) {
			return true
		}
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// isTitleCase reports whether uppercase letters appear only at the start of
// cased runs and at least one cased character exists.
func isTitleCase(text string) bool {
	cased := false
	prevCased := false
	for _, r := range text {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			cased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			cased = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// isAllUpper reports whether text contains at least one uppercase letter and
// no lowercase letters.
func isAllUpper(text string) bool {
	upper := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}
	return upper
}
