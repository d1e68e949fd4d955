// Package structure turns positioned word tokens into a hierarchy of titled
// sections. It is pure: extraction backends (pdftext) produce the token
// stream, and everything here is deterministic arithmetic over it.
package structure

// Word is one positioned word token from the extraction backend.
type Word struct {
	Text     string
	Bottom   float64 // vertical baseline position, page units
	Width    float64 // horizontal extent
	FontSize float64 // 0 when the backend has no size information
	FontName string
}

// Page is an ordered sequence of word tokens for one document page.
type Page struct {
	Number int
	Words  []Word
}

// Metadata describes the source document.
type Metadata struct {
	Title      string
	Author     string
	TotalPages int
}

// PageRecord is the per-page container kept in the document model.
// Downstream stages do not consume it today; it holds the grouped lines so
// future layout-aware features have positioned input to work from.
type PageRecord struct {
	Number int
	Lines  []Line
}

// Line is a group of words sharing a vertical baseline. Size and FontName
// come from the line's first word only.
type Line struct {
	Text     string
	Words    []Word
	Bottom   float64
	Size     float64
	FontName string
}

// paragraph groups consecutive non-blank lines.
type paragraph struct {
	lines []Line
}

// Section is a contiguous span of document text introduced by a detected
// heading. PageNumbers is sorted and de-duplicated at section close.
type Section struct {
	ID          string
	Title       string
	Paragraphs  []string
	PageNumbers []int
	Importance  float64 // assigned by the analyze stage
}

// EarliestPage returns the smallest page number, or 0 when the section has
// no recorded pages.
func (s *Section) EarliestPage() int {
	if len(s.PageNumbers) == 0 {
		return 0
	}
	return s.PageNumbers[0]
}

// Document is the structurer's output, produced once and immutable afterward.
type Document struct {
	Metadata Metadata
	Pages    []PageRecord
	Sections []Section
}
