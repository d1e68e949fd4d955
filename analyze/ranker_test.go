package analyze

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/slidecast/slidecast/structure"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func sectionAt(title string, page int, words int) structure.Section {
	return structure.Section{
		Title:       title,
		Paragraphs:  []string{strings.Repeat("word ", words)},
		PageNumbers: []int{page},
	}
}

func TestScore_Weights(t *testing.T) {
	r := NewRanker(testLogger(), 10)
	// 100+ words saturates length; page 1 gives position 0.98.
	sections := []structure.Section{sectionAt("A", 1, 120)}
	r.Score(sections)
	got := sections[0].Importance
	// length 1.0*0.4 + keywords (1 distinct "word" -> 0.1)*0.3 + 0.98*0.3
	want := 0.4 + 0.1*0.3 + 0.98*0.3
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("importance = %v, want %v", got, want)
	}
}

func TestScore_NoPagesNeutralPosition(t *testing.T) {
	r := NewRanker(testLogger(), 10)
	sections := []structure.Section{{Title: "A", Paragraphs: []string{""}}}
	r.Score(sections)
	want := noPagesPosition * positionWeight
	if sections[0].Importance != want {
		t.Errorf("importance = %v, want %v", sections[0].Importance, want)
	}
}

func TestRank_ScenarioTopTwoByPage(t *testing.T) {
	// Five sections at pages 1..5. Rank re-scores, so word counts are
	// shaped to make sections 1 and 3 the two highest scorers; the
	// selection should come out as pages {1,3} in document order.
	sections := []structure.Section{
		sectionAt("s1", 1, 120),
		sectionAt("s2", 2, 5),
		sectionAt("s3", 3, 100),
		sectionAt("s4", 4, 2),
		sectionAt("s5", 5, 40),
	}
	r := NewRanker(testLogger(), 2)
	got := r.Rank(sections)

	if len(got) != 2 {
		t.Fatalf("selected %d sections, want 2", len(got))
	}
	if got[0].Title != "s1" || got[1].Title != "s3" {
		t.Errorf("selected = [%s %s], want [s1 s3]", got[0].Title, got[1].Title)
	}
}

func TestRank_PreservesDocumentOrder(t *testing.T) {
	// Later section scores higher, but output must stay in page order.
	sections := []structure.Section{
		sectionAt("early", 2, 30),
		sectionAt("late", 7, 150),
	}
	r := NewRanker(testLogger(), 2)
	got := r.Rank(sections)
	if len(got) != 2 {
		t.Fatalf("selected %d, want 2", len(got))
	}
	if got[0].Title != "early" {
		t.Errorf("first selected = %q, want %q", got[0].Title, "early")
	}
}

func TestRank_BoundedByMaxSlides(t *testing.T) {
	var sections []structure.Section
	for i := 1; i <= 8; i++ {
		sections = append(sections, sectionAt("s", i, 100))
	}
	r := NewRanker(testLogger(), 3)
	if got := r.Rank(sections); len(got) > 3 {
		t.Errorf("selected %d sections, want <= 3", len(got))
	}
}

func TestRank_SharedEarliestPageCollapses(t *testing.T) {
	// Two distinct sections with the same earliest page collapse to one
	// selection.
	sections := []structure.Section{
		sectionAt("first", 1, 100),
		sectionAt("second", 1, 100),
	}
	r := NewRanker(testLogger(), 2)
	got := r.Rank(sections)
	if len(got) != 1 {
		t.Fatalf("selected %d sections, want 1 (page dedup)", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("kept %q, want the first in document order", got[0].Title)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	r := NewRanker(testLogger(), 5)
	if got := r.Rank(nil); got != nil {
		t.Errorf("Rank(nil) = %v, want nil", got)
	}
}
