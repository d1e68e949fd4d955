// Package ffmpeg shells out to the ffmpeg binary for video encoding, audio
// concatenation, and muxing. The binary is probed once at construction;
// callers decide how to degrade when it is absent.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
)

// lookPath is replaceable in tests.
var lookPath = exec.LookPath

// Per-operation timeouts. Audio concat is cheap; encodes can crunch
// thousands of frames.
const (
	encodeTimeout = 120 * time.Second
	concatTimeout = 60 * time.Second
	muxTimeout    = 120 * time.Second
)

// stderrLimit caps how much ffmpeg stderr is carried into error messages.
const stderrLimit = 500

// runFunc executes the binary with args and returns captured stderr.
type runFunc func(ctx context.Context, timeout time.Duration, args []string) (string, error)

// Executor wraps a located ffmpeg binary.
type Executor struct {
	logger *slog.Logger
	binary string
	run    runFunc
}

// NewExecutor probes PATH for ffmpeg. A missing binary is an error here;
// the video stage decides whether that is fatal.
func NewExecutor(logger *slog.Logger) (*Executor, error) {
	binary, err := lookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	e := &Executor{logger: logger, binary: binary}
	e.run = e.execRun
	return e, nil
}

func (e *Executor) execRun(ctx context.Context, timeout time.Duration, args []string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, e.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// EncodeVideo renders the frame list into an H.264 MP4 at the target
// resolution and frame rate. The list file uses ffmpeg's concat demuxer
// format, one frame image per line.
func (e *Executor) EncodeVideo(ctx context.Context, listPath, outPath string, width, height, fps int) error {
	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-vf", fmt.Sprintf("scale=%d:%d,fps=%d", width, height, fps),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", strconv.Itoa(fps),
		"-vsync", "cfr",
		outPath,
	}
	return e.invoke(ctx, "encode video", encodeTimeout, args)
}

// EncodeGIF renders the frame list into an animated GIF.
func (e *Executor) EncodeGIF(ctx context.Context, listPath, outPath string, width, height, fps int) error {
	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-vf", fmt.Sprintf("scale=%d:%d,fps=%d", width, height, fps),
		outPath,
	}
	return e.invoke(ctx, "encode gif", encodeTimeout, args)
}

// ConcatAudio joins per-slide WAV clips into one PCM track. The list file
// uses the concat demuxer format, one clip per line.
func (e *Executor) ConcatAudio(ctx context.Context, listPath, outPath string) error {
	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-acodec", "pcm_s16le",
		"-ar", "22050",
		outPath,
	}
	return e.invoke(ctx, "concat audio", concatTimeout, args)
}

// Mux combines the silent video with the narration track. Video is stream
// copied; audio is re-encoded to AAC.
func (e *Executor) Mux(ctx context.Context, videoPath, audioPath, outPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-map", "0:v:0",
		"-map", "1:a:0",
		outPath,
	}
	return e.invoke(ctx, "mux", muxTimeout, args)
}

func (e *Executor) invoke(ctx context.Context, op string, timeout time.Duration, args []string) error {
	e.logger.Debug("running ffmpeg", "op", op, "args", args)
	stderr, err := e.run(ctx, timeout, args)
	if err != nil {
		if len(stderr) > stderrLimit {
			stderr = stderr[:stderrLimit]
		}
		return fmt.Errorf("ffmpeg %s: %w: %s", op, err, stderr)
	}
	return nil
}
