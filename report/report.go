// Package report writes an optional XLSX analysis report: every scored
// section with its importance and selection state, plus the generated
// slides. The report is diagnostic output; callers treat failures as
// warnings, not pipeline errors.
package report

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/slidecast/slidecast/structure"
	"github.com/slidecast/slidecast/summarize"
)

const (
	sectionsSheet = "Sections"
	slidesSheet   = "Slides"
)

// Reporter writes analysis workbooks.
type Reporter struct {
	logger *slog.Logger
}

func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Write builds the workbook at path. sections is every scored section of
// the document; selected names the section IDs that became slides.
func (r *Reporter) Write(sections []structure.Section, selected []structure.Section, slides []summarize.Slide, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sectionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(slidesSheet); err != nil {
		return fmt.Errorf("add slides sheet: %w", err)
	}

	selectedIDs := make(map[string]bool, len(selected))
	for _, s := range selected {
		selectedIDs[s.ID] = true
	}

	if err := writeRow(f, sectionsSheet, 1,
		"ID", "Title", "Pages", "Words", "Importance", "Selected"); err != nil {
		return err
	}
	for i, s := range sections {
		if err := writeRow(f, sectionsSheet, i+2,
			s.ID, s.Title, joinPages(s.PageNumbers), wordCount(s),
			s.Importance, selectedIDs[s.ID]); err != nil {
			return err
		}
	}

	if err := writeRow(f, slidesSheet, 1,
		"Number", "Title", "Bullets", "Speaker Notes", "Visual"); err != nil {
		return err
	}
	for i, sl := range slides {
		visual := ""
		if sl.Visual != nil {
			visual = sl.Visual.Path
		}
		if err := writeRow(f, slidesSheet, i+2,
			sl.Number, sl.Title, strings.Join(sl.Bullets, "; "), sl.SpeakerNotes, visual); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	r.logger.Info("analysis report written", "path", path,
		"sections", len(sections), "slides", len(slides))
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("report cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

func joinPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ", ")
}

func wordCount(s structure.Section) int {
	n := 0
	for _, p := range s.Paragraphs {
		n += len(strings.Fields(p))
	}
	return n
}
