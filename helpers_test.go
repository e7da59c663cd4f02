package wavio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
)

// testChunk is one chunk of a hand built or re-parsed wav file.
type testChunk struct {
	id   string
	size uint32
	data []byte
}

// buildTestWav assembles a riff/wave stream from the given chunks and
// patches the riff size once the layout is known.
func buildTestWav(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("RIFF")

	err := binary.Write(&b, binary.LittleEndian, uint32(0))
	if err != nil {
		t.Fatalf("write riff size placeholder: %v", err)
	}

	b.WriteString("WAVE")

	for _, c := range chunks {
		writeTestChunk(t, &b, c.id, c.data)
	}

	out := b.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return out
}

func writeTestChunk(t *testing.T, b *bytes.Buffer, id string, payload []byte) {
	t.Helper()

	if len(id) != 4 {
		t.Fatalf("chunk id must be 4 bytes, got %q", id)
	}

	b.WriteString(id)

	err := binary.Write(b, binary.LittleEndian, uint32(len(payload)))
	if err != nil {
		t.Fatalf("write chunk size for %q: %v", id, err)
	}

	if _, err := b.Write(payload); err != nil {
		t.Fatalf("write chunk payload for %q: %v", id, err)
	}

	if len(payload)%2 == 1 {
		err := b.WriteByte(0)
		if err != nil {
			t.Fatalf("write chunk pad for %q: %v", id, err)
		}
	}
}

// fmtPayload builds the canonical 16 byte fmt body with the byte rate and
// block align derived from the other fields.
func fmtPayload(audioFormat, numChans uint16, sampleRate uint32, bitDepth uint16) []byte {
	frameBytes := uint32(numChans) * uint32(bitDepth/8)

	p := make([]byte, 16)
	binary.LittleEndian.PutUint16(p[0:2], audioFormat)
	binary.LittleEndian.PutUint16(p[2:4], numChans)
	binary.LittleEndian.PutUint32(p[4:8], sampleRate)
	binary.LittleEndian.PutUint32(p[8:12], sampleRate*frameBytes)
	binary.LittleEndian.PutUint16(p[12:14], uint16(frameBytes))
	binary.LittleEndian.PutUint16(p[14:16], bitDepth)

	return p
}

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errors.New("file too small")
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New("invalid riff/wave header")
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("chunk %q exceeds file size", id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

func float32ApproxEqual(value, expected, epsilon float32) bool {
	diff := value - expected
	if diff < 0 {
		diff = -diff
	}

	return diff <= epsilon
}

func assertFloat32SlicesClose(t *testing.T, got, expected []float32, epsilon float32) {
	t.Helper()

	if len(got) != len(expected) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(expected))
	}

	for i := range expected {
		if !float32ApproxEqual(got[i], expected[i], epsilon) {
			t.Fatalf("sample %d mismatch: got %f, want %f", i, got[i], expected[i])
		}
	}
}

// nopWriteSeeker wraps a bytes.Buffer to satisfy io.WriteSeeker.
type nopWriteSeeker struct {
	buf *bytes.Buffer
}

func (n nopWriteSeeker) Write(p []byte) (int, error) {
	written, err := n.buf.Write(p)
	if err != nil {
		return written, fmt.Errorf("buffer write failed: %w", err)
	}

	return written, nil
}

func (n nopWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}
