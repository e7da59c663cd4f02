package wavio

import (
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

// The interleaved stream orders samples frame-major, channel-minor: sample i
// of channel c sits at element i*numChans+c, scaled by the storage width in
// bytes. All packing and unpacking goes through the helpers below so the
// 3-byte 24-bit layout stays in one place.

func appendUint8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func appendInt16LE(dst []byte, v int16) []byte {
	return binary.LittleEndian.AppendUint16(dst, uint16(v))
}

func appendInt24LE(dst []byte, v int32) []byte {
	return append(dst, audio.Int32toInt24LEBytes(v)...)
}

func appendInt32LE(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func appendFloat32LE(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

func sampleUint8(b []byte) uint8 {
	return b[0]
}

func sampleInt16LE(b []byte) int16 {
	return int16(binary.LittleEndian.Uint16(b))
}

func sampleInt24LE(b []byte) int32 {
	return audio.Int24LETo32(b[:3])
}

func sampleInt32LE(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func sampleFloat32LE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// interleaveFrames packs per-channel slices into frame-major, channel-minor
// storage order, appending to dst.
func interleaveFrames[T any](dst []byte, channels [][]T, pack func([]byte, T) []byte) []byte {
	if len(channels) == 0 {
		return dst
	}

	for i := range channels[0] {
		for _, ch := range channels {
			dst = pack(dst, ch[i])
		}
	}

	return dst
}

// deinterleaveFrames splits an interleaved storage byte stream into one
// slice per channel. Trailing bytes short of a complete frame are dropped.
func deinterleaveFrames[T any](raw []byte, numChans, sampleSize int, unpack func([]byte) T) [][]T {
	samples := len(raw) / sampleSize
	frames := samples / numChans

	out := make([][]T, numChans)
	for c := range out {
		out[c] = make([]T, frames)
	}

	for i := 0; i < frames; i++ {
		for c := range out {
			out[c][i] = unpack(raw[(i*numChans+c)*sampleSize:])
		}
	}

	return out
}

func packAs[T, S any](conv func(T) S, app func([]byte, S) []byte) func([]byte, T) []byte {
	return func(dst []byte, v T) []byte {
		return app(dst, conv(v))
	}
}

func unpackAs[S, T any](samp func([]byte) S, conv func(S) T) func([]byte) T {
	return func(b []byte) T {
		return conv(samp(b))
	}
}

// packFloat32Func returns the packer converting float32 samples into the
// configured storage layout. The remaining pack functions cover the other
// in-memory representations the same way.
func packFloat32Func(cfg Config) func([]byte, float32) []byte {
	switch cfg.storage() {
	case storageFloat32:
		return appendFloat32LE
	case storagePCM8:
		return packAs(float32ToUint8, appendUint8)
	case storagePCM16:
		return packAs(float32ToInt16, appendInt16LE)
	case storagePCM24:
		return packAs(float32ToInt24, appendInt24LE)
	default:
		return packAs(float32ToInt32, appendInt32LE)
	}
}

func packUint8Func(cfg Config) func([]byte, uint8) []byte {
	switch cfg.storage() {
	case storageFloat32:
		return packAs(uint8ToFloat32, appendFloat32LE)
	case storagePCM8:
		return appendUint8
	case storagePCM16:
		return packAs(uint8ToInt16, appendInt16LE)
	case storagePCM24:
		return packAs(uint8ToInt24, appendInt24LE)
	default:
		return packAs(uint8ToInt32, appendInt32LE)
	}
}

func packInt16Func(cfg Config) func([]byte, int16) []byte {
	switch cfg.storage() {
	case storageFloat32:
		return packAs(int16ToFloat32, appendFloat32LE)
	case storagePCM8:
		return packAs(int16ToUint8, appendUint8)
	case storagePCM16:
		return appendInt16LE
	case storagePCM24:
		return packAs(int16ToInt24, appendInt24LE)
	default:
		return packAs(int16ToInt32, appendInt32LE)
	}
}

func packInt24Func(cfg Config) func([]byte, int32) []byte {
	switch cfg.storage() {
	case storageFloat32:
		return packAs(int24ToFloat32, appendFloat32LE)
	case storagePCM8:
		return packAs(int24ToUint8, appendUint8)
	case storagePCM16:
		return packAs(int24ToInt16, appendInt16LE)
	case storagePCM24:
		return appendInt24LE
	default:
		return packAs(int24ToInt32, appendInt32LE)
	}
}

func packInt32Func(cfg Config) func([]byte, int32) []byte {
	switch cfg.storage() {
	case storageFloat32:
		return packAs(int32ToFloat32, appendFloat32LE)
	case storagePCM8:
		return packAs(int32ToUint8, appendUint8)
	case storagePCM16:
		return packAs(int32ToInt16, appendInt16LE)
	case storagePCM24:
		return packAs(int32ToInt24, appendInt24LE)
	default:
		return appendInt32LE
	}
}

// unpackFloat32Func returns the unpacker converting stored samples to
// float32, mirroring packFloat32Func.
func unpackFloat32Func(cfg Config) func([]byte) float32 {
	switch cfg.storage() {
	case storageFloat32:
		return sampleFloat32LE
	case storagePCM8:
		return unpackAs(sampleUint8, uint8ToFloat32)
	case storagePCM16:
		return unpackAs(sampleInt16LE, int16ToFloat32)
	case storagePCM24:
		return unpackAs(sampleInt24LE, int24ToFloat32)
	default:
		return unpackAs(sampleInt32LE, int32ToFloat32)
	}
}

func unpackUint8Func(cfg Config) func([]byte) uint8 {
	switch cfg.storage() {
	case storageFloat32:
		return unpackAs(sampleFloat32LE, float32ToUint8)
	case storagePCM8:
		return sampleUint8
	case storagePCM16:
		return unpackAs(sampleInt16LE, int16ToUint8)
	case storagePCM24:
		return unpackAs(sampleInt24LE, int24ToUint8)
	default:
		return unpackAs(sampleInt32LE, int32ToUint8)
	}
}

func unpackInt16Func(cfg Config) func([]byte) int16 {
	switch cfg.storage() {
	case storageFloat32:
		return unpackAs(sampleFloat32LE, float32ToInt16)
	case storagePCM8:
		return unpackAs(sampleUint8, uint8ToInt16)
	case storagePCM16:
		return sampleInt16LE
	case storagePCM24:
		return unpackAs(sampleInt24LE, int24ToInt16)
	default:
		return unpackAs(sampleInt32LE, int32ToInt16)
	}
}

func unpackInt24Func(cfg Config) func([]byte) int32 {
	switch cfg.storage() {
	case storageFloat32:
		return unpackAs(sampleFloat32LE, float32ToInt24)
	case storagePCM8:
		return unpackAs(sampleUint8, uint8ToInt24)
	case storagePCM16:
		return unpackAs(sampleInt16LE, int16ToInt24)
	case storagePCM24:
		return sampleInt24LE
	default:
		return unpackAs(sampleInt32LE, int32ToInt24)
	}
}

func unpackInt32Func(cfg Config) func([]byte) int32 {
	switch cfg.storage() {
	case storageFloat32:
		return unpackAs(sampleFloat32LE, float32ToInt32)
	case storagePCM8:
		return unpackAs(sampleUint8, uint8ToInt32)
	case storagePCM16:
		return unpackAs(sampleInt16LE, int16ToInt32)
	case storagePCM24:
		return unpackAs(sampleInt24LE, int24ToInt32)
	default:
		return sampleInt32LE
	}
}
