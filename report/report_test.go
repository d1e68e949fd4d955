package report

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/slidecast/slidecast/structure"
	"github.com/slidecast/slidecast/summarize"
)

func TestWrite_RoundTrip(t *testing.T) {
	r := NewReporter(slog.New(slog.DiscardHandler))

	sections := []structure.Section{
		{ID: "section_1", Title: "Introduction", Paragraphs: []string{"one two three"},
			PageNumbers: []int{1, 2}, Importance: 0.82},
		{ID: "section_2", Title: "Appendix", Paragraphs: []string{"four five"},
			PageNumbers: []int{9}, Importance: 0.31},
	}
	selected := sections[:1]
	slides := []summarize.Slide{
		{Number: 1, Title: "Introduction", Bullets: []string{"point a", "point b"},
			SpeakerNotes: "Say this."},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := r.Write(sections, selected, slides, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sectionsSheet)
	if err != nil {
		t.Fatalf("read sections sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d section rows, want header + 2", len(rows))
	}
	if rows[1][1] != "Introduction" || rows[1][5] != "TRUE" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][5] != "FALSE" {
		t.Errorf("unselected section marked selected: %v", rows[2])
	}
	if rows[1][2] != "1, 2" {
		t.Errorf("pages = %q", rows[1][2])
	}

	slideRows, err := f.GetRows(slidesSheet)
	if err != nil {
		t.Fatalf("read slides sheet: %v", err)
	}
	if len(slideRows) != 2 {
		t.Fatalf("got %d slide rows", len(slideRows))
	}
	if slideRows[1][2] != "point a; point b" {
		t.Errorf("bullets = %q", slideRows[1][2])
	}
}
