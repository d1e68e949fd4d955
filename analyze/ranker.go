// Package analyze scores sections by importance and selects the ones that
// become slides, preserving original document order among the selected.
package analyze

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/slidecast/slidecast/structure"
	"github.com/slidecast/slidecast/textproc"
)

// Importance weights and scale constants.
const (
	lengthWeight   = 0.4
	keywordWeight  = 0.3
	positionWeight = 0.3

	lengthScale   = 100.0 // word count at which length score saturates
	keywordTarget = 10    // keyword count at which keyword score saturates
	positionScale = 50.0  // page number at which position score bottoms out

	// noPagesPosition is the neutral position score for sections without
	// recorded page numbers.
	noPagesPosition = 0.5

	// missingPage sorts pageless sections past every real page so they
	// can never match a selected earliest page.
	missingPage = 999
)

// Ranker selects up to maxSlides sections for promotion to slides.
type Ranker struct {
	logger    *slog.Logger
	maxSlides int
}

func NewRanker(logger *slog.Logger, maxSlides int) *Ranker {
	return &Ranker{logger: logger, maxSlides: maxSlides}
}

// Score assigns an importance score to every section in place:
// 0.4*length + 0.3*keywords + 0.3*position.
func (r *Ranker) Score(sections []structure.Section) {
	for i := range sections {
		sections[i].Importance = r.score(&sections[i])
	}
}

func (r *Ranker) score(sec *structure.Section) float64 {
	text := strings.Join(sec.Paragraphs, " ")

	lengthScore := min(float64(textproc.WordCount(text))/lengthScale, 1.0)

	keywords := textproc.ExtractKeywords(text, keywordTarget)
	keywordScore := min(float64(len(keywords))/float64(keywordTarget), 1.0)

	positionScore := noPagesPosition
	if len(sec.PageNumbers) > 0 {
		positionScore = 1.0 - min(float64(sec.EarliestPage())/positionScale, 1.0)
	}

	return lengthScore*lengthWeight + keywordScore*keywordWeight + positionScore*positionWeight
}

// Rank scores all sections and returns the selected ones in original
// document order, capped at maxSlides.
//
// Selection works by earliest page number: the top-maxSlides sections by
// importance contribute their earliest pages to a selected set, then the
// original-order scan keeps each section whose earliest page is in that set,
// de-duplicating by page. Two distinct sections sharing an earliest page
// therefore collapse to one selection; tests pin this.
func (r *Ranker) Rank(sections []structure.Section) []structure.Section {
	if len(sections) == 0 {
		r.logger.Warn("no sections found in document")
		return nil
	}

	r.Score(sections)

	byImportance := make([]structure.Section, len(sections))
	copy(byImportance, sections)
	sort.SliceStable(byImportance, func(i, j int) bool {
		return byImportance[i].Importance > byImportance[j].Importance
	})
	top := byImportance
	if len(top) > r.maxSlides {
		top = top[:r.maxSlides]
	}

	selectedPages := map[int]bool{}
	for _, sec := range top {
		if len(sec.PageNumbers) > 0 {
			selectedPages[sec.EarliestPage()] = true
		}
	}

	var selected []structure.Section
	seenPages := map[int]bool{}
	for _, sec := range sections {
		page := missingPage
		if len(sec.PageNumbers) > 0 {
			page = sec.EarliestPage()
		}
		if selectedPages[page] && !seenPages[page] {
			selected = append(selected, sec)
			seenPages[page] = true
			if len(selected) >= r.maxSlides {
				break
			}
		}
	}

	r.logger.Info("sections selected for slides", "selected", len(selected), "total", len(sections))
	return selected
}
