// Package tts synthesizes narration audio. Engines write one WAV clip per
// request; a failed or unavailable engine is never fatal, callers fall back
// to captioned output instead.
package tts

import (
	"context"
	"log/slog"
)

// Synthesizer renders spoken text to a WAV file.
type Synthesizer interface {
	// Name identifies the engine in logs.
	Name() string
	// Available reports whether the engine can synthesize right now.
	Available() bool
	// Synthesize writes spoken audio for text to outPath as WAV.
	Synthesize(ctx context.Context, text, outPath string) error
}

// Engine names accepted in configuration.
const (
	EngineEspeak   = "espeak"
	EngineOpenAI   = "openai"
	EngineDisabled = "disabled"
)

// defaultRate is the baseline speaking rate in words per minute.
const defaultRate = 150

// NewSynthesizer builds the configured engine. Unknown engine names fall
// back to the disabled engine with a warning.
func NewSynthesizer(logger *slog.Logger, engine, voice string, rate int, apiKey string) Synthesizer {
	if rate <= 0 {
		rate = defaultRate
	}
	switch engine {
	case EngineEspeak:
		return newEspeak(logger, rate)
	case EngineOpenAI:
		return newOpenAI(logger, voice, rate, apiKey)
	case EngineDisabled:
		return Disabled{}
	default:
		logger.Warn("unknown tts engine, narration disabled", "engine", engine)
		return Disabled{}
	}
}

// Disabled is the no-op engine: never available, never synthesizes.
type Disabled struct{}

func (Disabled) Name() string    { return EngineDisabled }
func (Disabled) Available() bool { return false }
func (Disabled) Synthesize(context.Context, string, string) error {
	return errNotAvailable
}
