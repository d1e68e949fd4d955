// Package video turns a slide deck into a narrated video. Slides are read
// back from the PPTX artifact, narrated per slide, rendered to frames, and
// encoded via ffmpeg. Narration failures degrade to captioned playback,
// never to a pipeline abort.
package video

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/slidecast/slidecast/deck"
	"github.com/slidecast/slidecast/tts"
)

// Encoder is the ffmpeg surface the generator needs.
type Encoder interface {
	EncodeVideo(ctx context.Context, listPath, outPath string, width, height, fps int) error
	EncodeGIF(ctx context.Context, listPath, outPath string, width, height, fps int) error
	ConcatAudio(ctx context.Context, listPath, outPath string) error
	Mux(ctx context.Context, videoPath, audioPath, outPath string) error
}

// Output formats.
const (
	FormatMP4 = "mp4"
	FormatGIF = "gif"
)

// Options configures generation.
type Options struct {
	OutputFormat     string
	FPS              int
	Width            int
	Height           int
	MinSlideDuration float64
	// MaxSlideDuration would bound heuristic (text-length estimated) slide
	// durations; no such estimate exists yet, so the value is read from
	// configuration but never consulted. Measured narration is never capped.
	MaxSlideDuration float64
	// KenBurns is read from configuration but not yet acted on; pan/zoom
	// rendering is reserved for a later iteration.
	KenBurns bool
}

// Status classifies the generation result.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// Outcome reports how generation ended and, when degraded, why.
type Outcome struct {
	Status Status
	Reason string
}

// Generator drives the narrate-render-encode sequence.
type Generator struct {
	logger *slog.Logger
	enc    Encoder
	synth  tts.Synthesizer
	opts   Options
}

func NewGenerator(logger *slog.Logger, enc Encoder, synth tts.Synthesizer, opts Options) *Generator {
	return &Generator{logger: logger, enc: enc, synth: synth, opts: opts}
}

// Generate reads the deck at deckPath and writes the finished video to
// outPath. notes carries the per-slide speaker notes in deck order; they
// are preferred for narration, with the slide's own text as fallback,
// since the deck round trip does not preserve them. Intermediate artifacts
// live in a temp dir removed on every path out of this function.
func (g *Generator) Generate(ctx context.Context, deckPath, outPath string, notes []string) (Outcome, error) {
	slides, err := deck.ExtractSlideText(deckPath)
	if err != nil {
		return Outcome{Status: StatusFailed}, fmt.Errorf("read deck: %w", err)
	}

	tmp, err := os.MkdirTemp("", "slidecast-video-")
	if err != nil {
		return Outcome{Status: StatusFailed}, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if g.opts.OutputFormat == FormatGIF {
		return g.generateGIF(ctx, slides, tmp, outPath)
	}

	clips, hasAudio := g.narrate(ctx, slides, notes, tmp)
	durations := g.measureDurations(clips)

	// Captions are a recovery device for narration that existed and was
	// lost downstream. When no narration was produced at all, the video is
	// simply silent.
	if !hasAudio {
		g.logger.Warn("narration unavailable, rendering silent video")
		if err := g.renderAndEncode(ctx, slides, durations, tmp, outPath, false); err != nil {
			return Outcome{Status: StatusFailed}, err
		}
		return Outcome{Status: StatusDegraded, Reason: "narration unavailable, silent video rendered"}, nil
	}

	// Silent filler keeps the audio track aligned with the video timeline
	// when individual clips failed.
	for i, clip := range clips {
		if clip != "" {
			continue
		}
		filler := filepath.Join(tmp, fmt.Sprintf("silence_%02d.wav", i+1))
		if werr := writeSilence(filler, durations[i]); werr != nil {
			g.logger.Warn("silence filler failed, falling back to captions", "error", werr)
			return g.captionFallback(ctx, slides, durations, tmp, outPath, "audio alignment failed")
		}
		clips[i] = filler
	}

	silentVideo := filepath.Join(tmp, "silent.mp4")
	if err := g.renderAndEncode(ctx, slides, durations, tmp, silentVideo, false); err != nil {
		return Outcome{Status: StatusFailed}, err
	}

	audioList := filepath.Join(tmp, "clips.txt")
	if err := writeConcatList(audioList, clips, nil); err != nil {
		return Outcome{Status: StatusFailed}, err
	}
	audioTrack := filepath.Join(tmp, "narration.wav")
	if err := g.enc.ConcatAudio(ctx, audioList, audioTrack); err != nil {
		g.logger.Warn("audio concat failed", "error", err)
		return g.captionFallback(ctx, slides, durations, tmp, outPath, "audio concat failed")
	}

	if err := g.enc.Mux(ctx, silentVideo, audioTrack, outPath); err != nil {
		g.logger.Warn("mux failed", "error", err)
		return g.captionFallback(ctx, slides, durations, tmp, outPath, "mux failed")
	}

	g.logger.Info("video generated", "path", outPath, "slides", len(slides))
	return Outcome{Status: StatusSuccess}, nil
}

func (g *Generator) generateGIF(ctx context.Context, slides []deck.SlideText, tmp, outPath string) (Outcome, error) {
	durations := make([]float64, len(slides))
	for i := range durations {
		durations[i] = g.opts.MinSlideDuration
	}
	list, err := g.renderFrames(slides, durations, tmp, true)
	if err != nil {
		return Outcome{Status: StatusFailed}, err
	}
	if err := g.enc.EncodeGIF(ctx, list, outPath, g.opts.Width, g.opts.Height, g.opts.FPS); err != nil {
		return Outcome{Status: StatusFailed}, err
	}
	g.logger.Info("gif generated", "path", outPath, "slides", len(slides))
	return Outcome{Status: StatusSuccess}, nil
}

// narrate synthesizes one clip per slide. A failed clip leaves an empty
// entry; the second return reports whether any clip succeeded.
func (g *Generator) narrate(ctx context.Context, slides []deck.SlideText, notes []string, tmp string) ([]string, bool) {
	clips := make([]string, len(slides))
	if !g.synth.Available() {
		return clips, false
	}

	hasAudio := false
	for i, slide := range slides {
		text := ""
		if i < len(notes) {
			text = strings.TrimSpace(notes[i])
		}
		if text == "" {
			text = narrationText(slide)
		}
		if text == "" {
			continue
		}
		clip := filepath.Join(tmp, fmt.Sprintf("clip_%02d.wav", i+1))
		if err := g.synth.Synthesize(ctx, text, clip); err != nil {
			g.logger.Warn("narration failed for slide", "slide", i+1, "error", err)
			continue
		}
		clips[i] = clip
		hasAudio = true
	}
	return clips, hasAudio
}

// measureDurations reconciles each slide's display time with its narration.
// A measured clip is authoritative: the slide displays for the full clip
// length, floor-clamped to the minimum so very short narrations do not
// flash by. Slides without a clip display for the minimum. No ceiling
// applies; capping the video segment below the clip length would push every
// later slide out of sync with the concatenated audio track.
func (g *Generator) measureDurations(clips []string) []float64 {
	durations := make([]float64, len(clips))
	for i, clip := range clips {
		durations[i] = g.opts.MinSlideDuration
		if clip == "" {
			continue
		}
		d, err := measureWAV(clip)
		if err != nil {
			g.logger.Warn("clip unmeasurable, using minimum duration", "clip", clip, "error", err)
			continue
		}
		if d < g.opts.MinSlideDuration {
			d = g.opts.MinSlideDuration
		}
		durations[i] = d
	}
	return durations
}

// renderFrames writes the slide frames plus the concat list that plays each
// slide for its duration. Without captions one frame per slide suffices; in
// caption mode each slide gets two frames, the unavailability notice for the
// first quarter of the slide's time and the shorter prompt for the rest.
func (g *Generator) renderFrames(slides []deck.SlideText, durations []float64, tmp string, captions bool) (string, error) {
	var frames []string
	var spans []float64
	for i, slide := range slides {
		if !captions {
			frame := filepath.Join(tmp, fmt.Sprintf("slide_%02d.png", i+1))
			if err := g.renderFrame(slide, "", frame); err != nil {
				return "", fmt.Errorf("render frame for slide %d: %w", i+1, err)
			}
			frames = append(frames, frame)
			spans = append(spans, durations[i])
			continue
		}
		opening := filepath.Join(tmp, fmt.Sprintf("slide_%02d_a.png", i+1))
		if err := g.renderFrame(slide, captionUnavailable, opening); err != nil {
			return "", fmt.Errorf("render frame for slide %d: %w", i+1, err)
		}
		rest := filepath.Join(tmp, fmt.Sprintf("slide_%02d_b.png", i+1))
		if err := g.renderFrame(slide, captionDefault, rest); err != nil {
			return "", fmt.Errorf("render frame for slide %d: %w", i+1, err)
		}
		frames = append(frames, opening, rest)
		spans = append(spans, durations[i]/4, durations[i]*3/4)
	}

	list := filepath.Join(tmp, "frames.txt")
	if err := writeConcatList(list, frames, spans); err != nil {
		return "", err
	}
	return list, nil
}

func (g *Generator) renderAndEncode(ctx context.Context, slides []deck.SlideText, durations []float64, tmp, outPath string, captions bool) error {
	list, err := g.renderFrames(slides, durations, tmp, captions)
	if err != nil {
		return err
	}
	return g.enc.EncodeVideo(ctx, list, outPath, g.opts.Width, g.opts.Height, g.opts.FPS)
}

func (g *Generator) captionFallback(ctx context.Context, slides []deck.SlideText, durations []float64, tmp, outPath, reason string) (Outcome, error) {
	if err := g.renderAndEncode(ctx, slides, durations, tmp, outPath, true); err != nil {
		return Outcome{Status: StatusFailed}, err
	}
	return Outcome{Status: StatusDegraded, Reason: reason + ", captions rendered"}, nil
}

// narrationText flattens a slide into speakable prose, dropping bullet
// glyphs.
func narrationText(slide deck.SlideText) string {
	parts := make([]string, 0, 1+len(slide.Content))
	if slide.Title != "" {
		parts = append(parts, slide.Title)
	}
	for _, line := range slide.Content {
		line = strings.TrimPrefix(line, "• ")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ". ")
}

// writeConcatList writes an ffmpeg concat demuxer list. With durations, each
// entry plays for its duration and the final entry is repeated, as the
// demuxer requires for stills.
func writeConcatList(path string, files []string, durations []float64) error {
	var sb strings.Builder
	for i, file := range files {
		fmt.Fprintf(&sb, "file '%s'\n", file)
		if durations != nil {
			fmt.Fprintf(&sb, "duration %s\n", formatSeconds(durations[i]))
		}
	}
	if durations != nil && len(files) > 0 {
		fmt.Fprintf(&sb, "file '%s'\n", files[len(files)-1])
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func formatSeconds(d float64) string {
	return fmt.Sprintf("%.3f", math.Round(d*1000)/1000)
}
