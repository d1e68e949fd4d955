package tts

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func stubLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	orig := lookPath
	lookPath = fn
	t.Cleanup(func() { lookPath = orig })
}

func TestNewSynthesizer_UnknownEngineDisabled(t *testing.T) {
	s := NewSynthesizer(testLogger(), "festival", "", 150, "")
	if s.Available() {
		t.Error("unknown engine reported available")
	}
	if s.Name() != EngineDisabled {
		t.Errorf("name = %q", s.Name())
	}
}

func TestDisabled_SynthesizeFails(t *testing.T) {
	err := Disabled{}.Synthesize(context.Background(), "hello", "out.wav")
	if !errors.Is(err, errNotAvailable) {
		t.Errorf("err = %v, want not-available", err)
	}
}

func TestEspeak_PrefersNGBinary(t *testing.T) {
	stubLookPath(t, func(name string) (string, error) {
		if name == "espeak-ng" {
			return "/usr/bin/espeak-ng", nil
		}
		return "/usr/bin/espeak", nil
	})

	e := newEspeak(testLogger(), 150)
	if !e.Available() {
		t.Fatal("engine should be available")
	}
	if e.binary != "/usr/bin/espeak-ng" {
		t.Errorf("binary = %q, want espeak-ng", e.binary)
	}
}

func TestEspeak_UnavailableWithoutBinary(t *testing.T) {
	stubLookPath(t, func(string) (string, error) {
		return "", errors.New("not found")
	})

	e := newEspeak(testLogger(), 150)
	if e.Available() {
		t.Error("engine should be unavailable")
	}
	err := e.Synthesize(context.Background(), "hello", "out.wav")
	if !errors.Is(err, errNotAvailable) {
		t.Errorf("err = %v, want not-available", err)
	}
}

func TestSpeechSpeed_Clamped(t *testing.T) {
	cases := []struct {
		rate int
		want float64
	}{
		{150, 1.0},
		{300, 2.0},
		{75, 0.5},
		{10, 0.25},
		{10000, 4.0},
	}
	for _, c := range cases {
		if got := speechSpeed(c.rate); got != c.want {
			t.Errorf("speechSpeed(%d) = %v, want %v", c.rate, got, c.want)
		}
	}
}

func TestOpenAI_UnavailableWithoutKey(t *testing.T) {
	e := newOpenAI(testLogger(), "alloy", 150, "")
	if e.Available() {
		t.Error("engine should be unavailable without API key")
	}
	err := e.Synthesize(context.Background(), "hello", "out.wav")
	if !errors.Is(err, errNotAvailable) {
		t.Errorf("err = %v, want not-available", err)
	}
}
