// Package summarize reduces ranked sections to slide-sized content: a
// title, a fixed number of bullet points, and speaker notes. Summarization
// is purely extractive; no model is involved.
package summarize

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/slidecast/slidecast/structure"
	"github.com/slidecast/slidecast/textproc"
)

// Visual describes the image attached to a slide by the visual stage.
type Visual struct {
	Type            string
	Path            string
	KeywordsMatched []string
}

// Slide is the summarized, single-screen representation of one section.
type Slide struct {
	Number          int
	Title           string
	Bullets         []string
	SpeakerNotes    string
	OriginalSection structure.Section
	Visual          *Visual // attached later, initially absent
}

// Options bounds the generated text.
type Options struct {
	MaxTitleWords   int
	MaxBulletWords  int
	MaxSpeakerWords int
	BulletCount     int
}

// Bullet filters and filler phrases. Bullets that survive truncation must
// still look like sentences (>= 3 words, > 15 chars); anything shorter is
// presumed noise and dropped.
const (
	minBulletWords  = 3
	minBulletChars  = 15
	minSectionChars = 20

	fallbackNotes = "Important points covered in this slide."
	genericBullet = "Important points covered"
)

var fillerBullets = []string{"Key information", "Main points"}

// Summarizer turns sections into slides.
type Summarizer struct {
	logger *slog.Logger
	opts   Options
}

func NewSummarizer(logger *slog.Logger, opts Options) *Summarizer {
	return &Summarizer{logger: logger, opts: opts}
}

// Summarize produces one slide per section, numbered 1..n in input order.
func (s *Summarizer) Summarize(sections []structure.Section) []Slide {
	slides := make([]Slide, 0, len(sections))
	for i, sec := range sections {
		text := strings.Join(sec.Paragraphs, " ")
		slides = append(slides, Slide{
			Number:          i + 1,
			Title:           s.GenerateTitle(sec.Title),
			Bullets:         s.GenerateBullets(text, s.opts.BulletCount),
			SpeakerNotes:    s.GenerateSpeakerNotes(text),
			OriginalSection: sec,
		})
	}
	s.logger.Info("sections summarized", "slides", len(slides))
	return slides
}

// GenerateTitle returns the section title as-is when it fits, otherwise
// hard-truncated with an ellipsis marker.
func (s *Summarizer) GenerateTitle(sectionTitle string) string {
	if textproc.WordCount(sectionTitle) <= s.opts.MaxTitleWords {
		return sectionTitle
	}
	return textproc.TruncateWords(sectionTitle, s.opts.MaxTitleWords)
}

// GenerateBullets extracts count bullets from text. It always returns
// exactly count entries: under-filled slots are topped up from the remaining
// sentence pool, then keyword fillers, then a generic phrase.
func (s *Summarizer) GenerateBullets(text string, count int) []string {
	if len(strings.TrimSpace(text)) < minSectionChars {
		out := make([]string, count)
		for i := range out {
			out[i] = fillerBullets[i%len(fillerBullets)]
		}
		return out
	}

	sentences := textproc.SplitSentences(text)

	type scored struct {
		score    float64
		sentence string
	}
	ranked := make([]scored, 0, len(sentences))
	for _, sent := range sentences {
		ranked = append(ranked, scored{scoreSentence(sent), sent})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	used := map[string]bool{}
	var bullets []string
	appendBullet := func(sent string) {
		cleaned := textproc.TruncateWords(textproc.Normalize(sent), s.opts.MaxBulletWords)
		trimmed := strings.TrimSpace(cleaned)
		if len(trimmed) <= minBulletChars || textproc.WordCount(trimmed) < minBulletWords {
			return
		}
		if used[trimmed] {
			return
		}
		used[trimmed] = true
		bullets = append(bullets, trimmed)
	}

	for _, r := range ranked {
		if len(bullets) >= count {
			break
		}
		appendBullet(r.sentence)
	}

	// Top up from the pool in original order.
	for _, sent := range sentences {
		if len(bullets) >= count {
			break
		}
		appendBullet(sent)
	}

	// Filler floor: keywords first, then the generic phrase.
	for len(bullets) < count {
		if keywords := textproc.ExtractKeywords(text, 3); len(keywords) > 0 {
			bullets = append(bullets, fmt.Sprintf("Key concepts: %s", strings.Join(keywords, ", ")))
		} else {
			bullets = append(bullets, genericBullet)
		}
	}

	return bullets[:count]
}

// scoreSentence prefers medium-length sentences: 10-25 words score best.
func scoreSentence(sent string) float64 {
	switch n := textproc.WordCount(sent); {
	case n >= 10 && n <= 25:
		return 1.0
	case n >= 5 && n < 10:
		return 0.7
	case n > 25 && n <= 40:
		return 0.8
	default:
		return 0.5
	}
}

// GenerateSpeakerNotes takes the first sentence, normalized and truncated.
func (s *Summarizer) GenerateSpeakerNotes(text string) string {
	notes := text
	if sentences := textproc.SplitSentences(text); len(sentences) > 0 {
		notes = sentences[0]
	}
	truncated := textproc.TruncateWords(textproc.Normalize(notes), s.opts.MaxSpeakerWords)
	if strings.TrimSpace(truncated) == "" {
		return fallbackNotes
	}
	return truncated
}
