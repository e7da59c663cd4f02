package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavio"
)

func TestRunGeneratesWavFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sine.wav")

	err := run([]string{"-output", outPath, "-length", "0.01", "-frequency", "220"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	if fi.Size() <= 44 {
		t.Fatalf("unexpected small wav file size: %d", fi.Size())
	}

	r, err := wavio.Open(outPath)
	if err != nil {
		t.Fatalf("open generated file: %v", err)
	}
	defer r.Close()

	cfg := r.Config()
	if cfg.SampleRate != 48000 {
		t.Fatalf("sample rate=%d, want 48000", cfg.SampleRate)
	}

	if cfg.BitDepth != 16 {
		t.Fatalf("bit depth=%d, want 16", cfg.BitDepth)
	}

	if cfg.NumChans != 1 {
		t.Fatalf("channels=%d, want 1", cfg.NumChans)
	}
}

func TestRunFlagParseError(t *testing.T) {
	err := run([]string{"-length", "not-a-number"})
	if err == nil {
		t.Fatalf("expected failure for invalid flag value")
	}
}

func TestRunDefaultParams(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "default.wav")

	err := run([]string{"-output", outPath, "-length", "0.005"})
	if err != nil {
		t.Fatalf("run with defaults failed: %v", err)
	}

	r, err := wavio.Open(outPath)
	if err != nil {
		t.Fatalf("open generated file: %v", err)
	}
	defer r.Close()

	// 0.005 sec * 48000 Hz = 240 samples
	if r.NumSamples() != 240 {
		t.Fatalf("expected 240 samples, got %d", r.NumSamples())
	}
}

func TestRunStereoFloatFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "float.wav")

	err := run([]string{
		"-output", outPath,
		"-length", "0.001",
		"-rate", "44100",
		"-bits", "32",
		"-channels", "2",
		"-float",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	r, err := wavio.Open(outPath)
	if err != nil {
		t.Fatalf("open generated file: %v", err)
	}
	defer r.Close()

	cfg := r.Config()
	if cfg.AudioFormat != wavio.FormatIEEEFloat {
		t.Fatalf("audio format=%d, want %d", cfg.AudioFormat, wavio.FormatIEEEFloat)
	}

	if cfg.NumChans != 2 {
		t.Fatalf("channels=%d, want 2", cfg.NumChans)
	}

	// 0.001 sec * 44100 Hz = 44 samples, truncated
	if r.NumSamples() != 44 {
		t.Fatalf("expected 44 samples, got %d", r.NumSamples())
	}

	channels, err := r.ReadFloat32(2)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	for i := range channels[0] {
		if channels[0][i] != channels[1][i] {
			t.Fatalf("sample %d differs between channels: %f and %f", i, channels[0][i], channels[1][i])
		}
	}
}

func TestRunRejectsBadLayout(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "bad.wav")

	err := run([]string{"-output", outPath, "-bits", "12", "-length", "0.001"})
	if err == nil {
		t.Fatal("expected error for an unsupported bit depth")
	}
}

func TestRunInvalidOutputPath(t *testing.T) {
	err := run([]string{"-output", "/nonexistent/dir/file.wav", "-length", "0.001"})
	if err == nil {
		t.Fatal("expected error for invalid output path")
	}
}
