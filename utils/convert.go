// SPDX-License-Identifier: EPL-2.0

package utils

// Sample lists the PCM sample types audio units exchange.
type Sample interface {
	float32 | float64 | int32 | int16 | int8
}

const (
	maxInt8  = 1<<7 - 1
	maxInt16 = 1<<15 - 1
	maxInt32 = 1<<31 - 1
)

func clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 scales a sample in [-1, 1] to int16, clamping outliers.
func Float32ToInt16(x float32) int16 { return int16(clamp(x) * maxInt16) }

// Float32ToInt32 scales a sample in [-1, 1] to int32, clamping outliers.
func Float32ToInt32(x float32) int32 { return int32(float64(clamp(x)) * maxInt32) }

// Float32ToInt8 scales a sample in [-1, 1] to int8, clamping outliers.
func Float32ToInt8(x float32) int8 { return int8(clamp(x) * maxInt8) }

// FromFloat32 converts src into dst and returns the number of samples
// written, min(len(dst), len(src)).
func FromFloat32[S Sample](dst []S, src []float32) int {
	n := min(len(dst), len(src))
	switch d := any(dst).(type) {
	case []float32:
		copy(d, src[:n])
	case []float64:
		for i := range n {
			d[i] = float64(src[i])
		}
	case []int32:
		for i := range n {
			d[i] = Float32ToInt32(src[i])
		}
	case []int16:
		for i := range n {
			d[i] = Float32ToInt16(src[i])
		}
	case []int8:
		for i := range n {
			d[i] = Float32ToInt8(src[i])
		}
	}
	return n
}

// ToFloat32 converts src into dst as samples in [-1, 1] and returns the
// number of samples written.
func ToFloat32[S Sample](dst []float32, src []S) int {
	n := min(len(dst), len(src))
	switch s := any(src).(type) {
	case []float32:
		copy(dst, s[:n])
	case []float64:
		for i := range n {
			dst[i] = float32(s[i])
		}
	case []int32:
		for i := range n {
			dst[i] = float32(float64(s[i]) / (maxInt32 + 1))
		}
	case []int16:
		for i := range n {
			dst[i] = float32(s[i]) / (maxInt16 + 1)
		}
	case []int8:
		for i := range n {
			dst[i] = float32(s[i]) / (maxInt8 + 1)
		}
	}
	return n
}

// ToPCM scales a sample in [-1, 1] to a signed integer of the given bit
// depth, clamping outliers.
func ToPCM(x float32, bits int) int {
	full := float64(int64(1)<<(bits-1) - 1)
	return int(float64(clamp(x)) * full)
}

// FromPCM maps a signed integer of the given bit depth to [-1, 1).
func FromPCM(v, bits int) float32 {
	return float32(float64(v) / float64(int64(1)<<(bits-1)))
}
