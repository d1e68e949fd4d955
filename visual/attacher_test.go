package visual

import (
	"image/png"
	"log/slog"
	"os"
	"testing"

	"github.com/slidecast/slidecast/summarize"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func sampleSlides() []summarize.Slide {
	return []summarize.Slide{
		{
			Number:  1,
			Title:   "Neural Network Training",
			Bullets: []string{"gradient descent converges", "training requires data"},
		},
	}
}

func TestAttach_IconLibraryStub(t *testing.T) {
	a := NewAttacher(testLogger(), StrategyIconLibrary, 800, 600)
	slides := sampleSlides()
	if err := a.Attach(slides, t.TempDir()); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	v := slides[0].Visual
	if v == nil {
		t.Fatal("visual not attached")
	}
	if v.Path != defaultIconPath {
		t.Errorf("icon path = %q, want default", v.Path)
	}
	if v.Type != StrategyIconLibrary {
		t.Errorf("type = %q", v.Type)
	}
}

func TestAttach_SimpleGenerationWritesPNG(t *testing.T) {
	a := NewAttacher(testLogger(), StrategySimpleGeneration, 800, 600)
	slides := sampleSlides()
	dir := t.TempDir()
	if err := a.Attach(slides, dir); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	v := slides[0].Visual
	if v == nil {
		t.Fatal("visual not attached")
	}

	f, err := os.Open(v.Path)
	if err != nil {
		t.Fatalf("open generated image: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode generated image: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("image size = %dx%d, want 800x600", b.Dx(), b.Dy())
	}
}

func TestAttach_KeywordsCapped(t *testing.T) {
	a := NewAttacher(testLogger(), StrategyIconLibrary, 800, 600)
	slides := []summarize.Slide{{
		Number:  1,
		Title:   "alpha beta gamma delta epsilon",
		Bullets: []string{"zeta eta theta iota kappa"},
	}}
	if err := a.Attach(slides, t.TempDir()); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if got := len(slides[0].Visual.KeywordsMatched); got > slideKeywords {
		t.Errorf("got %d keywords, want <= %d", got, slideKeywords)
	}
}
