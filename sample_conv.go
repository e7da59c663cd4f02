package wavio

// Conversions between the five in-memory sample representations. These are
// deliberately not symmetric: float scaling truncates toward zero without
// clamping, and integer narrowing keeps the top bits instead of rescaling,
// so round trips through a wider representation are bit exact. 24-bit
// samples travel sign-extended in int32 containers.

const (
	uint8Center = 127.5
	uint8Offset = 128
	maxInt16    = 32767.0
	maxInt24    = 8388607.0
	maxInt32    = 2147483647.0
)

func uint8ToFloat32(v uint8) float32 {
	return (float32(v) - uint8Center) / uint8Center
}

func int16ToFloat32(v int16) float32 {
	return float32(v) / maxInt16
}

func int24ToFloat32(v int32) float32 {
	return float32(v) / maxInt24
}

func int32ToFloat32(v int32) float32 {
	return float32(v) / maxInt32
}

func float32ToUint8(v float32) uint8 {
	return uint8(int32(v*uint8Center + uint8Center))
}

func int16ToUint8(v int16) uint8 {
	return uint8(v>>8 + uint8Offset)
}

func int24ToUint8(v int32) uint8 {
	return uint8(v>>16 + uint8Offset)
}

func int32ToUint8(v int32) uint8 {
	return uint8(v>>24 + uint8Offset)
}

func float32ToInt16(v float32) int16 {
	return int16(v * maxInt16)
}

func uint8ToInt16(v uint8) int16 {
	return (int16(v) - uint8Offset) * 256
}

func int24ToInt16(v int32) int16 {
	return int16(v >> 8)
}

func int32ToInt16(v int32) int16 {
	return int16(v >> 16)
}

func float32ToInt24(v float32) int32 {
	return int32(v * maxInt24)
}

func uint8ToInt24(v uint8) int32 {
	return (int32(v) - uint8Offset) << 16
}

func int16ToInt24(v int16) int32 {
	return int32(v) << 8
}

func int32ToInt24(v int32) int32 {
	return v >> 8
}

func float32ToInt32(v float32) int32 {
	return int32(v * maxInt32)
}

func uint8ToInt32(v uint8) int32 {
	return (int32(v) - uint8Offset) << 24
}

func int16ToInt32(v int16) int32 {
	return int32(v) << 16
}

func int24ToInt32(v int32) int32 {
	return v << 8
}
