// Package pdftext reads PDFs into positioned words and document metadata.
// Glyph positions come from ledongthuc/pdf; metadata and the page count
// come from pdfcpu, which validates the cross-reference table on the way.
package pdftext

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/slidecast/slidecast/structure"
)

// Glyph grouping tolerances, in PDF points. Glyphs on the same baseline
// belong to the same row; a horizontal gap wider than wordGapTolerance
// starts a new word.
const (
	rowTolerance     = 2.0
	wordGapTolerance = 3.0
)

// Reader extracts positioned words page by page.
type Reader struct {
	logger *slog.Logger
}

func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadPages extracts every page's words in reading order. Pages that fail
// to parse are skipped with a warning; a document yielding no pages at all
// is an error.
func (r *Reader) ReadPages(path string) ([]structure.Page, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []structure.Page
	for num := 1; num <= doc.NumPage(); num++ {
		page := doc.Page(num)
		if page.V.IsNull() {
			continue
		}

		words, pageErr := extractWords(page)
		if pageErr != nil {
			r.logger.Warn("skipping unreadable page", "page", num, "error", pageErr)
			continue
		}
		pages = append(pages, structure.Page{Number: num, Words: words})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no readable pages in %s", path)
	}

	r.logger.Info("extracted pdf text", "path", path, "pages", len(pages))
	return pages, nil
}

func extractWords(page pdf.Page) (words []structure.Word, err error) {
	// The underlying parser panics on malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page content panic: %v", rec)
		}
	}()

	content := page.Content()

	var glyphs []pdf.Text
	pageTop := 0.0
	for _, t := range content.Text {
		if t.Y > pageTop {
			pageTop = t.Y
		}
		glyphs = append(glyphs, t)
	}

	for _, row := range groupRows(glyphs) {
		words = append(words, rowWords(row, pageTop)...)
	}
	return words, nil
}

// groupRows buckets glyphs by baseline, top of page first.
func groupRows(glyphs []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]pdf.Text
	for _, g := range sorted {
		if len(rows) > 0 {
			last := rows[len(rows)-1]
			if last[0].Y-g.Y <= rowTolerance {
				rows[len(rows)-1] = append(last, g)
				continue
			}
		}
		rows = append(rows, []pdf.Text{g})
	}
	return rows
}

// rowWords merges a baseline row's glyphs left to right into words. A new
// word starts at a whitespace glyph or a gap wider than the tolerance.
func rowWords(row []pdf.Text, pageTop float64) []structure.Word {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var words []structure.Word
	var current strings.Builder
	var start, end float64
	var first *pdf.Text

	flush := func() {
		if first == nil || current.Len() == 0 {
			first = nil
			current.Reset()
			return
		}
		words = append(words, structure.Word{
			Text:     current.String(),
			Bottom:   pageTop - first.Y,
			Width:    end - start,
			FontSize: first.FontSize,
			FontName: first.Font,
		})
		first = nil
		current.Reset()
	}

	for i := range row {
		g := row[i]
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if first != nil && g.X-end > wordGapTolerance {
			flush()
		}
		if first == nil {
			first = &row[i]
			start = g.X
		}
		current.WriteString(g.S)
		end = g.X + g.W
	}
	flush()

	return words
}
