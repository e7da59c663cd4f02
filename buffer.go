package wavio

import (
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

var (
	errNilBuffer       = errors.New("can't add a nil buffer")
	errChannelMismatch = errors.New("buffer channel count does not match the file")
)

// ReadFloat32Buffer reads up to count frames into a go-audio buffer,
// keeping the samples interleaved the way they are stored. A buffer
// shorter than count frames marks the end of the data chunk.
func (r *Reader) ReadFloat32Buffer(count int) (*audio.Float32Buffer, error) {
	raw, err := r.readFrames(count)
	if err != nil {
		return nil, err
	}

	unpack := unpackFloat32Func(r.cfg)
	sampleSize := bytesPerSample(r.cfg.BitDepth)

	data := make([]float32, len(raw)/sampleSize)
	for i := range data {
		data[i] = unpack(raw[i*sampleSize:])
	}

	return &audio.Float32Buffer{
		Format:         r.cfg.Format(),
		Data:           data,
		SourceBitDepth: r.cfg.BitDepth,
	}, nil
}

// ReadIntBuffer reads up to count frames into a go-audio int buffer. The
// samples keep their stored range: unsigned values for 8 bit audio, signed
// values for the wider PCM widths. Float storage is converted to 32 bit
// PCM values.
func (r *Reader) ReadIntBuffer(count int) (*audio.IntBuffer, error) {
	raw, err := r.readFrames(count)
	if err != nil {
		return nil, err
	}

	sample := nativeIntFunc(r.cfg)
	sampleSize := bytesPerSample(r.cfg.BitDepth)

	data := make([]int, len(raw)/sampleSize)
	for i := range data {
		data[i] = sample(raw[i*sampleSize:])
	}

	return &audio.IntBuffer{
		Format:         r.cfg.Format(),
		Data:           data,
		SourceBitDepth: r.cfg.BitDepth,
	}, nil
}

// WriteFloat32Buffer writes the interleaved samples of buf, converting
// them to the stored sample format. Samples short of a complete final
// frame are dropped.
func (w *Writer) WriteFloat32Buffer(buf *audio.Float32Buffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if w.closed {
		return ErrWriterClosed
	}

	if buf.Format != nil && buf.Format.NumChannels != w.cfg.NumChans {
		return fmt.Errorf("%w: buffer has %d, file has %d",
			errChannelMismatch, buf.Format.NumChannels, w.cfg.NumChans)
	}

	frames := len(buf.Data) / w.cfg.NumChans
	if frames == 0 {
		return nil
	}

	pack := packFloat32Func(w.cfg)

	raw := make([]byte, 0, frames*w.cfg.BlockAlign)
	for _, v := range buf.Data[:frames*w.cfg.NumChans] {
		raw = pack(raw, v)
	}

	return w.writeRaw(raw)
}

// nativeIntFunc returns a sample reader producing the values an IntBuffer
// carries for each storage format.
func nativeIntFunc(cfg Config) func([]byte) int {
	switch cfg.storage() {
	case storageFloat32:
		return func(b []byte) int { return int(float32ToInt32(sampleFloat32LE(b))) }
	case storagePCM8:
		return func(b []byte) int { return int(sampleUint8(b)) }
	case storagePCM16:
		return func(b []byte) int { return int(sampleInt16LE(b)) }
	case storagePCM24:
		return func(b []byte) int { return int(sampleInt24LE(b)) }
	default:
		return func(b []byte) int { return int(sampleInt32LE(b)) }
	}
}
