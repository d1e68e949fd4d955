package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Speed is derived from the configured words-per-minute rate, normalized
// against the baseline and clamped to the API's accepted range.
const (
	minSpeechSpeed = 0.25
	maxSpeechSpeed = 4.0
)

// openaiEngine synthesizes via the OpenAI speech API.
type openaiEngine struct {
	logger *slog.Logger
	client *openai.Client
	voice  string
	speed  float64
}

func newOpenAI(logger *slog.Logger, voice string, rate int, apiKey string) *openaiEngine {
	e := &openaiEngine{logger: logger, voice: voice, speed: speechSpeed(rate)}
	if apiKey == "" {
		logger.Warn("no OpenAI API key set, narration will be skipped")
		return e
	}
	e.client = openai.NewClient(apiKey)
	return e
}

func speechSpeed(rate int) float64 {
	speed := float64(rate) / float64(defaultRate)
	if speed < minSpeechSpeed {
		return minSpeechSpeed
	}
	if speed > maxSpeechSpeed {
		return maxSpeechSpeed
	}
	return speed
}

func (e *openaiEngine) Name() string    { return EngineOpenAI }
func (e *openaiEngine) Available() bool { return e.client != nil }

func (e *openaiEngine) Synthesize(ctx context.Context, text, outPath string) error {
	if e.client == nil {
		return errNotAvailable
	}

	resp, err := e.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(e.voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
		Speed:          e.speed,
	})
	if err != nil {
		return fmt.Errorf("openai speech request: %w", err)
	}
	defer resp.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}
