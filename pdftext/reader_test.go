package pdftext

import (
	"log/slog"
	"testing"

	"github.com/ledongthuc/pdf"
)

func glyph(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, Font: "Helvetica", FontSize: 12}
}

func TestGroupRows_BaselineTolerance(t *testing.T) {
	glyphs := []pdf.Text{
		glyph("a", 10, 700, 6),
		glyph("b", 16, 701, 6), // same row, within tolerance
		glyph("c", 10, 650, 6), // separate row
	}
	rows := groupRows(glyphs)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0]) != 2 {
		t.Errorf("top row has %d glyphs, want 2", len(rows[0]))
	}
}

func TestGroupRows_TopOfPageFirst(t *testing.T) {
	glyphs := []pdf.Text{
		glyph("low", 10, 100, 20),
		glyph("high", 10, 700, 20),
	}
	rows := groupRows(glyphs)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0].S != "high" {
		t.Errorf("first row = %q, want the higher glyph", rows[0][0].S)
	}
}

func TestRowWords_MergesAdjacentGlyphs(t *testing.T) {
	row := []pdf.Text{
		glyph("H", 10, 700, 6),
		glyph("i", 16, 700, 3),
		glyph("t", 40, 700, 4), // wide gap: new word
		glyph("o", 44, 700, 5),
	}
	words := rowWords(row, 700)
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2: %+v", len(words), words)
	}
	if words[0].Text != "Hi" || words[1].Text != "to" {
		t.Errorf("words = %q, %q", words[0].Text, words[1].Text)
	}
	if words[0].Width != 9 {
		t.Errorf("width = %v, want 9", words[0].Width)
	}
	if words[0].FontSize != 12 || words[0].FontName != "Helvetica" {
		t.Errorf("font props = %v %q", words[0].FontSize, words[0].FontName)
	}
}

func TestRowWords_WhitespaceBreaks(t *testing.T) {
	row := []pdf.Text{
		glyph("a", 10, 700, 6),
		glyph(" ", 16, 700, 3),
		glyph("b", 19, 700, 6),
	}
	words := rowWords(row, 700)
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
}

func TestRowWords_BottomFromPageTop(t *testing.T) {
	row := []pdf.Text{glyph("x", 10, 650, 6)}
	words := rowWords(row, 700)
	if words[0].Bottom != 50 {
		t.Errorf("bottom = %v, want 50", words[0].Bottom)
	}
}

func TestReadMetadata_MissingFile(t *testing.T) {
	meta := ReadMetadata(slog.New(slog.DiscardHandler), "/nonexistent.pdf")
	if meta.Title != unknownField || meta.Author != unknownField {
		t.Errorf("meta = %+v, want unknown fields", meta)
	}
	if meta.TotalPages != 0 {
		t.Errorf("pages = %d, want 0", meta.TotalPages)
	}
}

func TestReadPages_MissingFile(t *testing.T) {
	r := NewReader(slog.New(slog.DiscardHandler))
	if _, err := r.ReadPages("/nonexistent.pdf"); err == nil {
		t.Error("want error for missing file")
	}
}
