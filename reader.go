package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/riff"
)

var (
	// ErrNotRIFF is returned when the stream does not start with a riff tag.
	ErrNotRIFF = errors.New("not a riff file")
	// ErrNotWAVE is returned when the riff form type is not wave.
	ErrNotWAVE = errors.New("not a wave file")
	// ErrFmtChunkNotFound is returned when the stream ends without a fmt chunk.
	ErrFmtChunkNotFound = errors.New("fmt chunk not found")
	// ErrDataChunkNotFound is returned when the stream ends without a data chunk.
	ErrDataChunkNotFound = errors.New("data chunk not found")
	// ErrReaderClosed is returned when reading from an already closed reader.
	ErrReaderClosed = errors.New("reader already closed")
	// ErrDurationNilPointer is returned when calculating duration on a nil reader.
	ErrDurationNilPointer = errors.New("can't calculate the duration of a nil pointer")
)

// Reader decodes the sample data of a wav file.
//
// The header is parsed when the reader is created; sample reads then
// consume the data chunk on demand and stop at its end even when further
// chunks follow it.
type Reader struct {
	r      io.ReadSeeker
	f      *os.File
	parser *riff.Parser

	cfg    Config
	data   io.Reader
	closed bool
}

// NewReader parses the wav header from rs and positions the reader at the
// start of the sample data. The reader does not take ownership of rs.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	r := &Reader{
		r:      rs,
		parser: riff.New(rs),
	}

	err := r.readHeader()
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Open opens the wav file at path and parses its header. The returned
// reader owns the file handle and releases it on Close.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()

		return nil, err
	}

	r.f = f

	return r, nil
}

// ReadFloat32 reads up to count frames from the data chunk into one slice
// per channel, converting each stored sample to float32. Fewer frames than
// requested come back once the chunk runs out; that is normal termination,
// not an error.
func (r *Reader) ReadFloat32(count int) ([][]float32, error) {
	return readChannels(r, count, unpackFloat32Func(r.cfg))
}

// ReadUint8 reads up to count frames as unsigned 8-bit samples.
func (r *Reader) ReadUint8(count int) ([][]uint8, error) {
	return readChannels(r, count, unpackUint8Func(r.cfg))
}

// ReadInt16 reads up to count frames as signed 16-bit samples.
func (r *Reader) ReadInt16(count int) ([][]int16, error) {
	return readChannels(r, count, unpackInt16Func(r.cfg))
}

// ReadInt24 reads up to count frames as 24-bit samples carried sign
// extended in int32 containers.
func (r *Reader) ReadInt24(count int) ([][]int32, error) {
	return readChannels(r, count, unpackInt24Func(r.cfg))
}

// ReadInt32 reads up to count frames as signed 32-bit samples.
func (r *Reader) ReadInt32(count int) ([][]int32, error) {
	return readChannels(r, count, unpackInt32Func(r.cfg))
}

// Config returns a copy of the configuration parsed from the header.
func (r *Reader) Config() Config {
	return r.cfg
}

// NumSamples returns the number of complete frames in the data chunk.
func (r *Reader) NumSamples() uint32 {
	return r.cfg.NumSamples()
}

// Duration returns the playback time of the data chunk.
func (r *Reader) Duration() (time.Duration, error) {
	if r == nil {
		return 0, ErrDurationNilPointer
	}

	return r.cfg.Duration(), nil
}

// String implements the Stringer interface.
func (r *Reader) String() string {
	return r.cfg.String()
}

// Close releases the file handle when the reader owns one. Close is
// idempotent.
func (r *Reader) Close() error {
	if r == nil || r.closed {
		return nil
	}

	r.closed = true

	if r.f != nil {
		if err := r.f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", r.f.Name(), err)
		}
	}

	return nil
}

// readHeader scans the chunk stream until both the fmt and the data chunk
// have been seen, leaving the reader at the start of the sample payload.
// Other chunks are skipped over their word-aligned size.
func (r *Reader) readHeader() error {
	id, size, err := r.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read the riff header: %w", err)
	}

	if id != riff.RiffID {
		return fmt.Errorf("%q - %w", id[:], ErrNotRIFF)
	}

	r.parser.ID = id
	r.parser.Size = size

	if err := binary.Read(r.r, binary.BigEndian, &r.parser.Format); err != nil {
		return fmt.Errorf("failed to read the form type: %w", err)
	}

	if r.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%q - %w", r.parser.Format[:], ErrNotWAVE)
	}

	var (
		haveFmt  bool
		haveData bool
		dataPos  int64
	)

	for !haveFmt || !haveData {
		id, size, err := r.parser.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if !haveFmt {
					return ErrFmtChunkNotFound
				}

				return ErrDataChunkNotFound
			}

			return fmt.Errorf("error reading chunk header - %w", err)
		}

		switch id {
		case riff.FmtID:
			if err := r.readFmtChunk(size); err != nil {
				return err
			}

			haveFmt = true
		case riff.DataFormatID:
			pos, err := r.r.Seek(0, io.SeekCurrent)
			if err != nil {
				return fmt.Errorf("failed to locate the data chunk: %w", err)
			}

			dataPos = pos
			r.cfg.DataChunkSize = size
			haveData = true

			// a data chunk ahead of the fmt chunk is stepped over and
			// revisited once the scan is done
			if !haveFmt {
				if err := r.skipChunk(id, size); err != nil {
					return err
				}
			}
		default:
			if err := r.skipChunk(id, size); err != nil {
				return err
			}
		}
	}

	if _, err := r.r.Seek(dataPos, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the data chunk: %w", err)
	}

	r.data = io.LimitReader(r.r, int64(r.cfg.DataChunkSize))

	return nil
}

// readFmtChunk decodes the 16 byte fmt body, drains any trailing extension
// bytes and validates the resulting configuration.
func (r *Reader) readFmtChunk(size uint32) error {
	// the pad byte of an odd sized chunk is drained along with the body
	padded := size + size%2

	chunk := &riff.Chunk{
		ID:   riff.FmtID,
		Size: int(padded),
		R:    io.LimitReader(r.r, int64(padded)),
	}

	var (
		audioFormat uint16
		numChans    uint16
		sampleRate  uint32
		byteRate    uint32
		blockAlign  uint16
		bitDepth    uint16
	)

	if err := chunk.ReadLE(&audioFormat); err != nil {
		return fmt.Errorf("failed to read the audio format: %w", err)
	}

	if err := chunk.ReadLE(&numChans); err != nil {
		return fmt.Errorf("failed to read the number of channels: %w", err)
	}

	if err := chunk.ReadLE(&sampleRate); err != nil {
		return fmt.Errorf("failed to read the sample rate: %w", err)
	}

	if err := chunk.ReadLE(&byteRate); err != nil {
		return fmt.Errorf("failed to read the avg bytes per sec: %w", err)
	}

	if err := chunk.ReadLE(&blockAlign); err != nil {
		return fmt.Errorf("failed to read the block align: %w", err)
	}

	if err := chunk.ReadLE(&bitDepth); err != nil {
		return fmt.Errorf("failed to read the bit depth: %w", err)
	}

	chunk.Drain()

	r.cfg.AudioFormat = int(audioFormat)
	r.cfg.NumChans = int(numChans)
	r.cfg.SampleRate = int(sampleRate)
	r.cfg.BitDepth = int(bitDepth)
	r.cfg.BlockAlign = int(blockAlign)

	return r.cfg.Validate()
}

// skipChunk drains a chunk payload. Chunks are word aligned, so an odd
// size carries one pad byte.
func (r *Reader) skipChunk(id [4]byte, size uint32) error {
	padded := int64(size) + int64(size%2)

	if _, err := io.CopyN(io.Discard, r.r, padded); err != nil {
		return fmt.Errorf("failed to skip the %q chunk: %w", id[:], err)
	}

	return nil
}

// readFrames pulls up to count frames of raw bytes out of the data chunk,
// truncated to the last complete frame.
func (r *Reader) readFrames(count int) ([]byte, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}

	if count < 0 {
		count = 0
	}

	sampleSize := bytesPerSample(r.cfg.BitDepth)
	raw := make([]byte, count*r.cfg.NumChans*sampleSize)

	n, err := io.ReadFull(r.data, raw)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read sample data: %w", err)
	}

	frames := n / sampleSize / r.cfg.NumChans

	return raw[:frames*r.cfg.NumChans*sampleSize], nil
}

func readChannels[T any](r *Reader, count int, unpack func([]byte) T) ([][]T, error) {
	raw, err := r.readFrames(count)
	if err != nil {
		return nil, err
	}

	return deinterleaveFrames(raw, r.cfg.NumChans, bytesPerSample(r.cfg.BitDepth), unpack), nil
}
