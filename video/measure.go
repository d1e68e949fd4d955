package video

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Narration clips are resampled to this format at concat time; silent
// filler clips are generated in it directly.
const (
	fillerSampleRate = 22050
	fillerBitDepth   = 16
)

// measureWAV returns a clip's play time in seconds, from the frame count
// and sample rate in the WAV header.
func measureWAV(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open audio clip: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dur, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("measure audio clip %s: %w", path, err)
	}
	return dur.Seconds(), nil
}

// writeSilence writes a silent mono PCM clip of the given length. Slides
// whose synthesis failed get silence so the narration track stays aligned
// with the video timeline.
func writeSilence(path string, seconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create silence clip: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, fillerSampleRate, fillerBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: fillerSampleRate},
		SourceBitDepth: fillerBitDepth,
		Data:           make([]int, int(seconds*fillerSampleRate)),
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write silence clip: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize silence clip: %w", err)
	}
	return nil
}
