package structure

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
)

// Line-grouping and noise thresholds. Fragments below the paragraph floors
// are dropped deliberately: polluting a section is worse than losing a
// fragment.
const (
	lineBaselineTolerance = 3.0 // page units between words on one line
	headingRestMinChars   = 20  // remaining heading-paragraph lines kept above this
	paragraphMinChars     = 30  // body paragraphs kept above this
	minHeadingWords       = 2   // words kept before the size boundary applies
)

// Structurer builds a Document from positioned word tokens.
type Structurer struct {
	logger *slog.Logger
}

func NewStructurer(logger *slog.Logger) *Structurer {
	return &Structurer{logger: logger}
}

// Structure runs the single structuring pass: font statistics, line and
// paragraph grouping, heading classification, and section emission.
func (s *Structurer) Structure(pages []Page, meta Metadata) *Document {
	stats := ComputeFontStats(pages)
	s.logger.Debug("font statistics",
		"mode", stats.Mode, "median", stats.Median, "threshold", stats.HeadingThreshold)

	doc := &Document{Metadata: meta}
	builder := newSectionBuilder()

	for _, page := range pages {
		lines := groupLines(page.Words)
		doc.Pages = append(doc.Pages, PageRecord{Number: page.Number, Lines: lines})

		for _, para := range groupParagraphs(lines) {
			s.emitParagraph(builder, para, page.Number, stats)
		}
	}

	doc.Sections = builder.finish()
	s.logger.Info("document structured",
		"pages", len(pages), "sections", len(doc.Sections))
	return doc
}

// emitParagraph classifies a paragraph's first line and routes its text into
// the open section, opening a new one when a heading is found.
func (s *Structurer) emitParagraph(b *sectionBuilder, para paragraph, pageNum int, stats FontStats) {
	if len(para.lines) == 0 {
		return
	}
	first := para.lines[0]

	if isHeadingFontBased(first.Text, first.Size, first.FontName, stats) {
		title := extractHeadingText(first, stats)
		s.logger.Debug("heading detected", "title", title, "page", pageNum)
		b.open(title)
		for _, rest := range para.lines[1:] {
			if len(rest.Text) > headingRestMinChars {
				b.append(rest.Text, pageNum)
			}
		}
		return
	}

	parts := make([]string, len(para.lines))
	for i, line := range para.lines {
		parts[i] = line.Text
	}
	text := strings.Join(parts, "\n")
	if len(text) > paragraphMinChars {
		b.append(text, pageNum)
	}
}

// groupLines merges consecutive words into lines: a word joins the current
// line while its baseline is within tolerance of the line's baseline. Line
// properties come from the first word only.
func groupLines(words []Word) []Line {
	var lines []Line
	var current *Line

	for _, w := range words {
		if current != nil && math.Abs(w.Bottom-current.Bottom) > lineBaselineTolerance {
			lines = append(lines, *current)
			current = nil
		}
		if current == nil {
			current = &Line{Bottom: w.Bottom, Size: w.FontSize, FontName: w.FontName}
		}
		if current.Text != "" {
			current.Text += " "
		}
		current.Text += w.Text
		current.Words = append(current.Words, w)
	}
	if current != nil && len(current.Words) > 0 {
		lines = append(lines, *current)
	}
	return lines
}

// groupParagraphs merges consecutive non-blank lines into paragraphs. Blank
// lines delimit paragraphs but produce none themselves.
func groupParagraphs(lines []Line) []paragraph {
	var paras []paragraph
	var current paragraph

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			if len(current.lines) > 0 {
				paras = append(paras, current)
				current = paragraph{}
			}
			continue
		}
		trimmed := line
		trimmed.Text = text
		current.lines = append(current.lines, trimmed)
	}
	if len(current.lines) > 0 {
		paras = append(paras, current)
	}
	return paras
}

// extractHeadingText isolates the heading when heading and body text share a
// physical line. Words are taken front-to-back; once at least two
// heading-sized words are collected, the first word at or below the
// threshold marks the boundary. Ties prefer keeping the leading words.
func extractHeadingText(line Line, stats FontStats) string {
	if len(line.Words) == 0 {
		return strings.TrimSpace(line.Text)
	}

	var kept []string
	for _, w := range line.Words {
		if w.FontSize > 0 && w.FontSize <= stats.HeadingThreshold && len(kept) >= minHeadingWords {
			break
		}
		kept = append(kept, w.Text)
	}

	if len(kept) == 0 {
		return strings.TrimSpace(line.Text)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// sectionBuilder accumulates the open section during the structuring pass.
// Sections with no paragraphs are never persisted; the initial placeholder
// survives only if content arrives before the first heading.
type sectionBuilder struct {
	sections []Section
	title    string
	parts    []string
	pages    map[int]struct{}
	nextID   int
}

func newSectionBuilder() *sectionBuilder {
	return &sectionBuilder{
		title:  "Introduction",
		pages:  map[int]struct{}{},
		nextID: 1,
	}
}

func (b *sectionBuilder) append(text string, pageNum int) {
	b.parts = append(b.parts, text)
	b.pages[pageNum] = struct{}{}
}

// open closes the current section (if it has content) and starts a new one.
func (b *sectionBuilder) open(title string) {
	b.close()
	b.title = title
}

func (b *sectionBuilder) close() {
	if len(b.parts) == 0 {
		b.parts = nil
		b.pages = map[int]struct{}{}
		return
	}
	pages := make([]int, 0, len(b.pages))
	for p := range b.pages {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	b.sections = append(b.sections, Section{
		ID:          fmt.Sprintf("section_%d", b.nextID),
		Title:       b.title,
		Paragraphs:  b.parts,
		PageNumbers: pages,
	})
	b.nextID++
	b.parts = nil
	b.pages = map[int]struct{}{}
}

// finish closes the final open section unconditionally (if it has content)
// and returns all emitted sections.
func (b *sectionBuilder) finish() []Section {
	b.close()
	return b.sections
}
