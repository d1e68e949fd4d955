package structure

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// lineOfWords builds a line of words sharing one baseline.
func lineOfWords(bottom, size float64, font string, words ...string) []Word {
	out := make([]Word, len(words))
	for i, w := range words {
		out[i] = Word{Text: w, Bottom: bottom, FontSize: size, FontName: font}
	}
	return out
}

func TestComputeFontStats_ModeAndThreshold(t *testing.T) {
	pages := []Page{{Number: 1, Words: append(
		lineOfWords(700, 18, "Helvetica", "Heading"),
		lineOfWords(650, 10, "Helvetica", "body", "body", "body", "body")...,
	)}}
	stats := ComputeFontStats(pages)
	if stats.Mode != 10 {
		t.Fatalf("mode = %v, want 10", stats.Mode)
	}
	if stats.HeadingThreshold != 12 {
		t.Errorf("threshold = %v, want 12", stats.HeadingThreshold)
	}
	if stats.Min != 10 || stats.Max != 18 {
		t.Errorf("min/max = %v/%v, want 10/18", stats.Min, stats.Max)
	}
}

func TestComputeFontStats_NoSizesFallsBack(t *testing.T) {
	pages := []Page{{Number: 1, Words: lineOfWords(700, 0, "", "plain", "text")}}
	stats := ComputeFontStats(pages)
	if stats.HeadingThreshold != fallbackHeadingThreshold {
		t.Errorf("threshold = %v, want fallback %v", stats.HeadingThreshold, fallbackHeadingThreshold)
	}
	if stats.ModeCount != 0 {
		t.Errorf("mode count = %d, want 0", stats.ModeCount)
	}
}

func TestComputeFontStats_SamplesFirstFivePages(t *testing.T) {
	var pages []Page
	for i := 1; i <= 6; i++ {
		pages = append(pages, Page{Number: i, Words: lineOfWords(700, 10, "F", "word")})
	}
	// Page 6 carries a giant size that must not affect the sample.
	pages[5].Words = lineOfWords(700, 99, "F", "word", "word", "word", "word", "word", "word")
	stats := ComputeFontStats(pages)
	if stats.Max == 99 {
		t.Error("page 6 leaked into the five-page sample")
	}
}

func TestGroupLines_BaselineTolerance(t *testing.T) {
	words := []Word{
		{Text: "one", Bottom: 700},
		{Text: "two", Bottom: 702}, // within 3 units: same line
		{Text: "three", Bottom: 680},
	}
	lines := groupLines(words)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "one two" {
		t.Errorf("line 0 = %q, want %q", lines[0].Text, "one two")
	}
	if lines[1].Text != "three" {
		t.Errorf("line 1 = %q, want %q", lines[1].Text, "three")
	}
}

func TestGroupLines_PropertiesFromFirstWord(t *testing.T) {
	words := []Word{
		{Text: "Big", Bottom: 700, FontSize: 20, FontName: "Helvetica-Bold"},
		{Text: "small", Bottom: 700, FontSize: 10, FontName: "Helvetica"},
	}
	lines := groupLines(words)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Size != 20 || lines[0].FontName != "Helvetica-Bold" {
		t.Errorf("line properties = %v/%q, want first word's", lines[0].Size, lines[0].FontName)
	}
}

func TestExtractHeadingText_MixedFontLine(t *testing.T) {
	stats := FontStats{HeadingThreshold: 12}
	line := Line{
		Text: "Results And Body text continues here",
		Words: []Word{
			{Text: "Results", FontSize: 18},
			{Text: "And", FontSize: 18},
			{Text: "Body", FontSize: 10},
			{Text: "text", FontSize: 10},
		},
	}
	got := extractHeadingText(line, stats)
	if got != "Results And" {
		t.Errorf("heading = %q, want %q", got, "Results And")
	}
}

func TestExtractHeadingText_KeepsFirstTwoWords(t *testing.T) {
	// Body-sized words before two heading words have been collected are
	// kept; the boundary only applies after the minimum.
	stats := FontStats{HeadingThreshold: 12}
	line := Line{
		Words: []Word{
			{Text: "Intro", FontSize: 10},
			{Text: "Part", FontSize: 10},
			{Text: "body", FontSize: 10},
		},
	}
	got := extractHeadingText(line, stats)
	if got != "Intro Part" {
		t.Errorf("heading = %q, want %q", got, "Intro Part")
	}
}

func TestIsHeadingFontBased(t *testing.T) {
	stats := FontStats{HeadingThreshold: 12}
	cases := []struct {
		name string
		text string
		size float64
		font string
		want bool
	}{
		{"size above threshold", "Some Heading Line", 14, "Helvetica", true},
		{"bold font name", "Heading", 10, "Arial-BoldMT", true},
		{"too short", "ab", 20, "Helvetica", false},
		{"body size body shape", "this is a normal sentence, it has punctuation and plenty of lowercase words in it.", 10, "Helvetica", false},
		{"title case short", "Analysis Of Results", 10, "Helvetica", true},
		{"all caps short", "RESULTS AND DISCUSSION", 10, "Helvetica", true},
		{"zero size falls back to text heuristic", "Short Title", 0, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := isHeadingFontBased(tc.text, tc.size, tc.font, stats)
			if got != tc.want {
				t.Errorf("isHeadingFontBased(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestIsHeadingByText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"very short", "Overview", true},
		{"trailing colon", "Key findings of the study:", true},
		{"all caps", "EXPERIMENTAL SETUP", true},
		{"long sentence", "This sentence, which contains commas and a period, runs long enough that none of the heading shapes apply to it at all here.", false},
		{"short unpunctuated", "findings from the second trial", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isHeadingByText(tc.text); got != tc.want {
				t.Errorf("isHeadingByText(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

// threePageTokens builds the canonical scenario: one clearly larger-font
// heading line per page with a body paragraph under it.
func threePageTokens() []Page {
	titles := []string{"Introduction", "Methods", "Results"}
	var pages []Page
	for i, title := range titles {
		words := lineOfWords(700, 18, "Helvetica", title)
		body := lineOfWords(650, 10, "Helvetica",
			strings.Fields("this body paragraph carries well over thirty characters of content")...)
		pages = append(pages, Page{Number: i + 1, Words: append(words, body...)})
	}
	return pages
}

func TestStructure_ThreePageScenario(t *testing.T) {
	s := NewStructurer(testLogger())
	doc := s.Structure(threePageTokens(), Metadata{TotalPages: 3})

	if len(doc.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(doc.Sections))
	}
	wantTitles := []string{"Introduction", "Methods", "Results"}
	for i, sec := range doc.Sections {
		if sec.Title != wantTitles[i] {
			t.Errorf("section %d title = %q, want %q", i, sec.Title, wantTitles[i])
		}
		if len(sec.PageNumbers) != 1 || sec.PageNumbers[0] != i+1 {
			t.Errorf("section %d pages = %v, want [%d]", i, sec.PageNumbers, i+1)
		}
		if len(sec.Paragraphs) == 0 {
			t.Errorf("section %d has no paragraphs", i)
		}
	}
}

func TestStructure_Idempotent(t *testing.T) {
	s := NewStructurer(testLogger())
	pages := threePageTokens()
	first := s.Structure(pages, Metadata{TotalPages: 3})
	second := s.Structure(pages, Metadata{TotalPages: 3})
	if !reflect.DeepEqual(first.Sections, second.Sections) {
		t.Error("structuring the same token stream twice produced different sections")
	}
}

func TestStructure_PlaceholderIntroductionKept(t *testing.T) {
	// Content before the first heading lands in the implicit
	// "Introduction" section.
	body := lineOfWords(700, 10, "Helvetica",
		strings.Fields("leading body text before any heading appears with enough length")...)
	heading := lineOfWords(400, 18, "Helvetica", "Methods")
	// Blank separation comes from the baseline gap producing two
	// paragraphs only if a blank line exists; place heading on page 2.
	pages := []Page{
		{Number: 1, Words: body},
		{Number: 2, Words: heading},
	}
	s := NewStructurer(testLogger())
	doc := s.Structure(pages, Metadata{TotalPages: 2})
	if len(doc.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Introduction" {
		t.Errorf("title = %q, want Introduction", doc.Sections[0].Title)
	}
}

func TestStructure_PlaceholderDroppedWhenEmpty(t *testing.T) {
	s := NewStructurer(testLogger())
	doc := s.Structure(threePageTokens(), Metadata{TotalPages: 3})
	for _, sec := range doc.Sections {
		if len(sec.Paragraphs) == 0 {
			t.Errorf("section %q persisted with no paragraphs", sec.Title)
		}
	}
}

func TestStructure_ShortFragmentsDropped(t *testing.T) {
	heading := lineOfWords(700, 18, "Helvetica", "Methods")
	fragment := lineOfWords(650, 10, "Helvetica", "tiny")
	pages := []Page{{Number: 1, Words: append(heading, fragment...)}}
	s := NewStructurer(testLogger())
	doc := s.Structure(pages, Metadata{TotalPages: 1})
	if len(doc.Sections) != 0 {
		t.Fatalf("got %d sections, want 0 (fragment below floor)", len(doc.Sections))
	}
}
