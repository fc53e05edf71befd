// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		i16   int16
		i8    int8
	}{
		{"zero", 0, 0, 0},
		{"max positive", 1, math.MaxInt16, math.MaxInt8},
		{"max negative", -1, -math.MaxInt16, -math.MaxInt8},
		{"half", 0.5, 16383, 63},
		{"clamp over max", 1.5, math.MaxInt16, math.MaxInt8},
		{"clamp under min", -100, -math.MaxInt16, -math.MaxInt8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.i16 {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.i16)
			}
			if got := Float32ToInt8(tt.input); got != tt.i8 {
				t.Errorf("Float32ToInt8(%v) = %d, want %d", tt.input, got, tt.i8)
			}
		})
	}

	if got := Float32ToInt32(1); got != math.MaxInt32 {
		t.Errorf("Float32ToInt32(1) = %d, want %d", got, math.MaxInt32)
	}
	if got := Float32ToInt32(-2); got != -math.MaxInt32 {
		t.Errorf("Float32ToInt32(-2) = %d, want %d", got, -math.MaxInt32)
	}
}

func TestFromFloat32(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.5, -0.5, 1, -1}

	f64 := make([]float64, 8)
	if n := FromFloat32(f64, src); n != len(src) {
		t.Fatalf("FromFloat32([]float64) = %d, want %d", n, len(src))
	}
	if f64[1] != 0.5 || f64[5] != 0 {
		t.Errorf("float64 result = %v", f64)
	}

	i16 := make([]int16, 3)
	if n := FromFloat32(i16, src); n != 3 {
		t.Fatalf("FromFloat32([]int16) = %d, want 3", n)
	}
	if i16[1] != 16383 || i16[2] != -16383 {
		t.Errorf("int16 result = %v", i16)
	}

	f32 := make([]float32, len(src))
	FromFloat32(f32, src)
	for i := range src {
		if f32[i] != src[i] {
			t.Fatalf("float32 copy differs at %d", i)
		}
	}
}

func TestToFloat32_RoundTrip(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.25, -0.25, 0.75, -0.999}
	const tolerance = 1.0 / 50

	check := func(name string, got []float32) {
		t.Helper()
		for i := range src {
			if math.Abs(float64(got[i]-src[i])) > tolerance {
				t.Errorf("%s: sample %d = %v, want %v", name, i, got[i], src[i])
			}
		}
	}

	i8 := make([]int8, len(src))
	FromFloat32(i8, src)
	back := make([]float32, len(src))
	ToFloat32(back, i8)
	check("int8", back)

	i16 := make([]int16, len(src))
	FromFloat32(i16, src)
	ToFloat32(back, i16)
	check("int16", back)

	i32 := make([]int32, len(src))
	FromFloat32(i32, src)
	ToFloat32(back, i32)
	check("int32", back)

	f64 := make([]float64, len(src))
	FromFloat32(f64, src)
	ToFloat32(back, f64)
	check("float64", back)
}

func TestFromFloat32_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	src := make([]float32, 1024)
	dst := make([]int16, 1024)
	allocs := testing.AllocsPerRun(100, func() {
		FromFloat32(dst, src)
	})
	if allocs > 0 {
		t.Errorf("FromFloat32 allocated %v times, want 0", allocs)
	}
}

func BenchmarkFromFloat32(b *testing.B) {
	src := make([]float32, 512*2)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.1))
	}
	dst := make([]int16, len(src))

	b.ReportAllocs()
	for range b.N {
		FromFloat32(dst, src)
	}
}

func TestPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		full int
	}{
		{8, math.MaxInt8},
		{16, math.MaxInt16},
		{24, 1<<23 - 1},
		{32, math.MaxInt32},
	}

	for _, tt := range tests {
		if got := ToPCM(1, tt.bits); got != tt.full {
			t.Errorf("ToPCM(1, %d) = %d, want %d", tt.bits, got, tt.full)
		}
		if got := ToPCM(-2, tt.bits); got != -tt.full {
			t.Errorf("ToPCM(-2, %d) = %d, want %d", tt.bits, got, -tt.full)
		}
		if got := FromPCM(-tt.full-1, tt.bits); got != -1 {
			t.Errorf("FromPCM(min, %d) = %v, want -1", tt.bits, got)
		}
		for _, x := range []float32{-0.75, -0.1, 0, 0.3, 0.999} {
			got := FromPCM(ToPCM(x, tt.bits), tt.bits)
			if math.Abs(float64(got-x)) > 2.0/float64(tt.full) {
				t.Errorf("%d bits: %v round-tripped to %v", tt.bits, x, got)
			}
		}
	}
}
