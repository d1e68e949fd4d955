package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
)

// lookPath is replaceable in tests.
var lookPath = exec.LookPath

var errNotAvailable = errors.New("tts engine not available")

// espeakBinaries are probed in order; espeak-ng is the maintained fork.
var espeakBinaries = []string{"espeak-ng", "espeak"}

// synthesizeTimeout bounds a single clip. Speaker notes are a sentence or
// two, so a minute means something is wrong.
const synthesizeTimeout = 60 * time.Second

// espeakEngine shells out to espeak for offline synthesis.
type espeakEngine struct {
	logger *slog.Logger
	binary string
	rate   int
}

func newEspeak(logger *slog.Logger, rate int) *espeakEngine {
	e := &espeakEngine{logger: logger, rate: rate}
	for _, name := range espeakBinaries {
		if path, err := lookPath(name); err == nil {
			e.binary = path
			break
		}
	}
	if e.binary == "" {
		logger.Warn("espeak not found in PATH, narration will be skipped")
	}
	return e
}

func (e *espeakEngine) Name() string    { return EngineEspeak }
func (e *espeakEngine) Available() bool { return e.binary != "" }

func (e *espeakEngine) Synthesize(ctx context.Context, text, outPath string) error {
	if e.binary == "" {
		return errNotAvailable
	}

	cctx, cancel := context.WithTimeout(ctx, synthesizeTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, e.binary,
		"-w", outPath,
		"-s", strconv.Itoa(e.rate),
		text,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak: %w: %s", err, stderr.String())
	}
	return nil
}
