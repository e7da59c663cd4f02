// Package wavio reads and writes audio files in the WAVE container format.
//
// The package supports PCM integer (8/16/24/32-bit) and IEEE float 32-bit
// storage. Samples move through the API as one slice per channel and are
// converted between the caller's sample type and the stored format on the
// fly, so a file can be produced from or consumed into any of the five
// supported sample types:
//
//   - WriteFloat32 / ReadFloat32
//   - WriteUint8 / ReadUint8
//   - WriteInt16 / ReadInt16
//   - WriteInt24 / ReadInt24
//   - WriteInt32 / ReadInt32
//
// Writer emits the canonical 44 byte header up front with zeroed size
// fields and patches the real sizes in on Close. Reader scans the chunk
// stream for the fmt and data chunks, skipping everything else, and then
// serves sample reads straight from the data chunk.
//
// For interoperability with the go-audio ecosystem, ReadFloat32Buffer,
// ReadIntBuffer and WriteFloat32Buffer bridge to audio.Float32Buffer and
// audio.IntBuffer.
package wavio
