package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
)

// ErrWriterClosed is returned when writing to an already closed writer.
var ErrWriterClosed = errors.New("writer already closed")

// Canonical header geometry: the fmt body is fixed at 16 bytes, the riff
// size field sits at offset 4 and the data size field at offset 40.
const (
	fmtChunkSize   = 16
	riffSizeOffset = 4
	dataSizeOffset = 40
)

// Writer encodes per-channel sample slices into a wav container.
//
// The header goes out at creation time with zeroed size fields; Close seeks
// back and patches them once the data chunk length is known. A writer is
// either open or closed, and sample writes are only valid while open.
type Writer struct {
	w io.WriteSeeker
	f *os.File

	cfg       Config
	dataBytes uint32
	closed    bool
}

// NewWriter validates cfg, writes the header for an empty file to ws and
// returns a writer appending samples to its data chunk.
func NewWriter(ws io.WriteSeeker, cfg Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.BlockAlign = cfg.NumChans * bytesPerSample(cfg.BitDepth)
	cfg.DataChunkSize = 0

	w := &Writer{w: ws, cfg: cfg}

	err := w.writeHeader()
	if err != nil {
		return nil, err
	}

	return w, nil
}

// Create writes a new wav file at path. The returned writer owns the file
// handle and releases it on Close. No file is left behind when the header
// cannot be written.
func Create(path string, cfg Config) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w, err := NewWriter(f, cfg)
	if err != nil {
		f.Close()
		os.Remove(path)

		return nil, err
	}

	w.f = f

	return w, nil
}

// WriteFloat32 appends one slice of samples per channel to the data chunk,
// converting each value to the configured storage format. Every slice must
// have the same length and there must be exactly one per channel; violating
// either is a caller bug and panics.
func (w *Writer) WriteFloat32(channels ...[]float32) error {
	return writeChannels(w, channels, packFloat32Func(w.cfg))
}

// WriteUint8 appends unsigned 8-bit samples, one slice per channel.
func (w *Writer) WriteUint8(channels ...[]uint8) error {
	return writeChannels(w, channels, packUint8Func(w.cfg))
}

// WriteInt16 appends signed 16-bit samples, one slice per channel.
func (w *Writer) WriteInt16(channels ...[]int16) error {
	return writeChannels(w, channels, packInt16Func(w.cfg))
}

// WriteInt24 appends 24-bit samples carried in int32 containers, one slice
// per channel.
func (w *Writer) WriteInt24(channels ...[]int32) error {
	return writeChannels(w, channels, packInt24Func(w.cfg))
}

// WriteInt32 appends signed 32-bit samples, one slice per channel.
func (w *Writer) WriteInt32(channels ...[]int32) error {
	return writeChannels(w, channels, packInt32Func(w.cfg))
}

// Config returns a snapshot of the writer's configuration. DataChunkSize
// reflects the bytes written so far.
func (w *Writer) Config() Config {
	cfg := w.cfg
	cfg.DataChunkSize = w.dataBytes

	return cfg
}

// Close patches the two header size fields, syncs file-backed output and
// releases the file handle when the writer owns one. Close is idempotent;
// only the first call finalizes the header.
func (w *Writer) Close() error {
	if w == nil || w.closed {
		return nil
	}

	w.closed = true

	if _, err := w.w.Seek(riffSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the riff size field: %w", err)
	}

	// the riff chunk covers everything past its own 8-byte header
	if err := w.addLE(uint32(36) + w.dataBytes); err != nil {
		return fmt.Errorf("%w when patching the riff chunk size", err)
	}

	if _, err := w.w.Seek(dataSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the data size field: %w", err)
	}

	if err := w.addLE(w.dataBytes); err != nil {
		return fmt.Errorf("%w when patching the data chunk size", err)
	}

	if _, err := w.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek back to the end: %w", err)
	}

	if f, ok := w.w.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync %s: %w", f.Name(), err)
		}
	}

	if w.f != nil {
		if err := w.f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", w.f.Name(), err)
		}
	}

	return nil
}

// addLE serializes src to the underlying writer in little endian.
func (w *Writer) addLE(src any) error {
	if err := binary.Write(w.w, binary.LittleEndian, src); err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// writeHeader emits the canonical 44-byte header. Both size fields start at
// zero and are patched on Close.
func (w *Writer) writeHeader() error {
	if err := w.addLE(riff.RiffID); err != nil {
		return err
	}

	if err := w.addLE(uint32(0)); err != nil {
		return err
	}

	if err := w.addLE(riff.WavFormatID); err != nil {
		return err
	}

	if err := w.addLE(riff.FmtID); err != nil {
		return err
	}

	if err := w.addLE(uint32(fmtChunkSize)); err != nil {
		return err
	}

	if err := w.addLE(uint16(w.cfg.AudioFormat)); err != nil {
		return fmt.Errorf("error encoding the audio format - %w", err)
	}

	if err := w.addLE(uint16(w.cfg.NumChans)); err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	if err := w.addLE(uint32(w.cfg.SampleRate)); err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	if err := w.addLE(uint32(w.cfg.SampleRate * w.cfg.BlockAlign)); err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	if err := w.addLE(uint16(w.cfg.BlockAlign)); err != nil {
		return fmt.Errorf("error encoding the block align - %w", err)
	}

	if err := w.addLE(uint16(w.cfg.BitDepth)); err != nil {
		return fmt.Errorf("error encoding the bit depth - %w", err)
	}

	if err := w.addLE(riff.DataFormatID); err != nil {
		return err
	}

	return w.addLE(uint32(0))
}

func writeChannels[T any](w *Writer, channels [][]T, pack func([]byte, T) []byte) error {
	if w.closed {
		return ErrWriterClosed
	}

	frames := checkChannels(channels, w.cfg.NumChans)
	if frames == 0 {
		return nil
	}

	return w.writeRaw(interleaveFrames(make([]byte, 0, frames*w.cfg.BlockAlign), channels, pack))
}

func (w *Writer) writeRaw(raw []byte) error {
	n, err := w.w.Write(raw)
	w.dataBytes += uint32(n)

	if err != nil {
		return fmt.Errorf("failed to write sample data: %w", err)
	}

	return nil
}

// checkChannels validates the channel layout and returns the frame count.
// A wrong number of buffers or ragged buffer lengths indicate caller bugs
// and panic.
func checkChannels[T any](channels [][]T, numChans int) int {
	if len(channels) != numChans {
		panic(fmt.Sprintf("wavio: %d channel buffers for %d channels", len(channels), numChans))
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			panic(fmt.Sprintf("wavio: ragged channel buffers: %d and %d samples", frames, len(ch)))
		}
	}

	return frames
}
