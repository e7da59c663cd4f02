package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavio"
)

func writeSourceFile(t *testing.T, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")

	w, err := wavio.Create(path, wavio.Config{
		SampleRate:  44100,
		NumChans:    1,
		BitDepth:    16,
		AudioFormat: wavio.FormatPCM,
	})
	if err != nil {
		t.Fatalf("failed to create the source file: %v", err)
	}

	if err := w.WriteInt16(samples); err != nil {
		t.Fatalf("failed to write samples: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close the writer: %v", err)
	}

	return path
}

func TestRunRequiresPath(t *testing.T) {
	var out bytes.Buffer
	err := run(nil, &out)
	if err == nil {
		t.Fatalf("expected error without input path")
	}

	if !errors.Is(err, errMissingPath) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunConvertsBitDepth(t *testing.T) {
	srcPath := writeSourceFile(t, []int16{0, 16384, -16384, 32767, -32768})

	var outBuf bytes.Buffer
	if err := run([]string{"-path", srcPath, "-bits", "8"}, &outBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	outPath := strings.TrimSuffix(srcPath, ".wav") + ".8bit.wav"
	if !strings.Contains(outBuf.String(), outPath) {
		t.Fatalf("expected output to mention %q, got:\n%s", outPath, outBuf.String())
	}

	r, err := wavio.Open(outPath)
	if err != nil {
		t.Fatalf("open converted file: %v", err)
	}
	defer r.Close()

	cfg := r.Config()
	if cfg.BitDepth != 8 {
		t.Fatalf("bit depth=%d, want 8", cfg.BitDepth)
	}

	if cfg.SampleRate != 44100 {
		t.Fatalf("sample rate=%d, want 44100", cfg.SampleRate)
	}

	channels, err := r.ReadUint8(8)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	want := []uint8{127, 191, 63, 255, 0}
	if len(channels[0]) != len(want) {
		t.Fatalf("read %d samples, want %d", len(channels[0]), len(want))
	}

	for i := range want {
		if channels[0][i] != want[i] {
			t.Fatalf("sample[%d]=%d, want %d", i, channels[0][i], want[i])
		}
	}
}

func TestRunConvertsToFloat(t *testing.T) {
	srcPath := writeSourceFile(t, []int16{-32768, 0, 16384})
	outPath := filepath.Join(t.TempDir(), "float.wav")

	var outBuf bytes.Buffer
	err := run([]string{"-path", srcPath, "-format", "float", "-output", outPath}, &outBuf)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	r, err := wavio.Open(outPath)
	if err != nil {
		t.Fatalf("open converted file: %v", err)
	}
	defer r.Close()

	cfg := r.Config()
	if cfg.AudioFormat != wavio.FormatIEEEFloat {
		t.Fatalf("audio format=%d, want %d", cfg.AudioFormat, wavio.FormatIEEEFloat)
	}

	if cfg.BitDepth != 32 {
		t.Fatalf("bit depth=%d, want 32", cfg.BitDepth)
	}

	channels, err := r.ReadFloat32(8)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	want := []float32{-1.0000305, 0, 0.50001526}
	if len(channels[0]) != len(want) {
		t.Fatalf("read %d samples, want %d", len(channels[0]), len(want))
	}

	for i := range want {
		diff := channels[0][i] - want[i]
		if diff < -1e-6 || diff > 1e-6 {
			t.Fatalf("sample[%d]=%f, want %f", i, channels[0][i], want[i])
		}
	}
}

func TestRunRejectsFloatWidth(t *testing.T) {
	srcPath := writeSourceFile(t, []int16{0})

	var outBuf bytes.Buffer
	err := run([]string{"-path", srcPath, "-format", "float", "-bits", "16"}, &outBuf)
	if !errors.Is(err, wavio.ErrFloatBitDepth) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	srcPath := writeSourceFile(t, []int16{0})

	var outBuf bytes.Buffer
	err := run([]string{"-path", srcPath, "-format", "mp3"}, &outBuf)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunInvalidPath(t *testing.T) {
	var outBuf bytes.Buffer
	err := run([]string{"-path", "/nonexistent/path.wav"}, &outBuf)
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}
