// Package pipeline orchestrates the six stages that turn a PDF into a
// narrated slide video: extract, structure, analyze, summarize, assemble,
// generate. Stages run in order and the first hard failure aborts the run;
// narration and report problems degrade instead.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/slidecast/slidecast/analyze"
	"github.com/slidecast/slidecast/config"
	"github.com/slidecast/slidecast/deck"
	"github.com/slidecast/slidecast/ffmpeg"
	"github.com/slidecast/slidecast/pdftext"
	"github.com/slidecast/slidecast/report"
	"github.com/slidecast/slidecast/structure"
	"github.com/slidecast/slidecast/summarize"
	"github.com/slidecast/slidecast/tts"
	"github.com/slidecast/slidecast/video"
	"github.com/slidecast/slidecast/visual"
)

// Run statuses.
const (
	StatusSuccess  = "success"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
)

// Output file names inside the run's output directory.
const (
	deckFileName   = "slides.pptx"
	reportFileName = "analysis.xlsx"
	videoBaseName  = "video"
)

// Result summarizes a pipeline run.
type Result struct {
	Status       string
	ErrorMessage string
	Duration     time.Duration
	SlidesPath   string
	VideoPath    string
}

// Pipeline wires the stages from one configuration.
type Pipeline struct {
	logger *slog.Logger
	cfg    *config.Config

	// generateVideo is replaceable in tests; the default probes ffmpeg and
	// builds the real generator.
	generateVideo func(ctx context.Context, deckPath, videoPath string, notes []string) (video.Outcome, error)
}

func New(logger *slog.Logger, cfg *config.Config) *Pipeline {
	p := &Pipeline{logger: logger, cfg: cfg}
	p.generateVideo = p.runVideoStage
	return p
}

// Run executes the full pipeline for one PDF. It never panics across stage
// boundaries; failures come back in the Result.
func (p *Pipeline) Run(ctx context.Context, pdfPath, outDir string) Result {
	start := time.Now()
	p.logger.Info("pipeline started", "pdf", pdfPath, "out", outDir)

	res := p.run(ctx, pdfPath, outDir)
	res.Duration = time.Since(start)

	switch res.Status {
	case StatusFailed:
		p.logger.Error("pipeline failed", "error", res.ErrorMessage, "duration", res.Duration)
	default:
		p.logger.Info("pipeline finished", "status", res.Status, "duration", res.Duration,
			"slides", res.SlidesPath, "video", res.VideoPath)
	}
	return res
}

func (p *Pipeline) run(ctx context.Context, pdfPath, outDir string) Result {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return failed(fmt.Errorf("create output dir: %w", err))
	}

	// Extract.
	reader := pdftext.NewReader(p.logger)
	pages, err := reader.ReadPages(pdfPath)
	if err != nil {
		return failed(fmt.Errorf("extract text: %w", err))
	}
	meta := pdftext.ReadMetadata(p.logger, pdfPath)

	// Structure.
	structurer := structure.NewStructurer(p.logger)
	doc := structurer.Structure(pages, meta)
	if len(doc.Sections) == 0 {
		return failed(fmt.Errorf("no sections found in %s", pdfPath))
	}

	// Analyze. Rank scores the sections in place, so the report sees the
	// importance values too.
	ranker := analyze.NewRanker(p.logger, p.cfg.Analysis.MaxSlides)
	selected := ranker.Rank(doc.Sections)
	if len(selected) == 0 {
		return failed(fmt.Errorf("no sections selected from %s", pdfPath))
	}

	// Summarize.
	summarizer := summarize.NewSummarizer(p.logger, summarize.Options{
		MaxTitleWords:   p.cfg.Summarization.MaxTitleWords,
		MaxBulletWords:  p.cfg.Summarization.MaxBulletWords,
		MaxSpeakerWords: p.cfg.Summarization.MaxSpeakerWords,
		BulletCount:     p.cfg.Summarization.BulletCount,
	})
	slides := summarizer.Summarize(selected)

	// Visuals.
	attacher := visual.NewAttacher(p.logger, p.cfg.Visuals.Strategy,
		p.cfg.Visuals.ImageWidth, p.cfg.Visuals.ImageHeight)
	if err := attacher.Attach(slides, outDir); err != nil {
		return failed(fmt.Errorf("attach visuals: %w", err))
	}

	// Assemble.
	slidesPath := filepath.Join(outDir, deckFileName)
	writer := deck.NewWriter(p.logger, p.cfg.Slides.AspectRatio, p.cfg.Slides.Theme)
	if err := writer.Write(deckSpecs(slides), slidesPath); err != nil {
		return failed(fmt.Errorf("assemble deck: %w", err))
	}

	// Report, best effort.
	if p.cfg.Report.Enabled {
		reporter := report.NewReporter(p.logger)
		reportPath := filepath.Join(outDir, reportFileName)
		if err := reporter.Write(doc.Sections, selected, slides, reportPath); err != nil {
			p.logger.Warn("analysis report failed", "error", err)
		}
	}

	// Generate. Speaker notes travel in memory; the deck round trip does
	// not carry them.
	notes := make([]string, len(slides))
	for i, s := range slides {
		notes[i] = s.SpeakerNotes
	}
	videoPath := filepath.Join(outDir, videoFileName(p.cfg.Video.OutputFormat))
	outcome, err := p.generateVideo(ctx, slidesPath, videoPath, notes)
	if err != nil {
		return Result{
			Status:       StatusFailed,
			ErrorMessage: err.Error(),
			SlidesPath:   slidesPath,
		}
	}

	res := Result{Status: StatusSuccess, SlidesPath: slidesPath, VideoPath: videoPath}
	if outcome.Status == video.StatusDegraded {
		res.Status = StatusDegraded
		res.ErrorMessage = outcome.Reason
	}
	return res
}

func (p *Pipeline) runVideoStage(ctx context.Context, deckPath, videoPath string, notes []string) (video.Outcome, error) {
	enc, err := ffmpeg.NewExecutor(p.logger)
	if err != nil {
		return video.Outcome{Status: video.StatusFailed}, err
	}

	synth := tts.NewSynthesizer(p.logger, p.cfg.Video.TTSEngine, p.cfg.Video.TTSVoice,
		p.cfg.Video.TTSRate, p.cfg.OpenAIAPIKey)

	gen := video.NewGenerator(p.logger, enc, synth, video.Options{
		OutputFormat:     p.cfg.Video.OutputFormat,
		FPS:              p.cfg.Video.FPS,
		Width:            p.cfg.Video.Resolution.Width,
		Height:           p.cfg.Video.Resolution.Height,
		MinSlideDuration: p.cfg.Video.MinSlideDuration,
		MaxSlideDuration: p.cfg.Video.MaxSlideDuration,
		KenBurns:         p.cfg.Video.KenBurnsEnabled,
	})
	return gen.Generate(ctx, deckPath, videoPath, notes)
}

func deckSpecs(slides []summarize.Slide) []deck.SlideSpec {
	specs := make([]deck.SlideSpec, len(slides))
	for i, s := range slides {
		specs[i] = deck.SlideSpec{Title: s.Title, Bullets: s.Bullets}
		if s.Visual != nil && s.Visual.Type == visual.StrategySimpleGeneration {
			specs[i].ImagePath = s.Visual.Path
		}
	}
	return specs
}

func videoFileName(format string) string {
	if format == video.FormatGIF {
		return videoBaseName + ".gif"
	}
	return videoBaseName + ".mp4"
}

func failed(err error) Result {
	return Result{Status: StatusFailed, ErrorMessage: err.Error()}
}
