// SPDX-License-Identifier: EPL-2.0

package format

import "fmt"

// SampleFormat is the encoding of a single sample.
type SampleFormat uint8

const (
	// F32 is 32-bit IEEE float.
	F32 SampleFormat = iota + 1
	// F64 is 64-bit IEEE float.
	F64
	// I32 is 32-bit signed integer.
	I32
	// I24 is packed (3 byte) 24-bit signed integer.
	I24
	// I16 is 16-bit signed integer.
	I16
	// I8 is 8-bit signed integer.
	I8
)

// SampleFormatFromFlags picks the SampleFormat described by LPCM flags and
// a bit depth. ok is false for combinations the model cannot represent.
func SampleFormatFromFlags(flags LinearPCMFlags, bitsPerSample uint32) (SampleFormat, bool) {
	if flags.Contains(FlagIsFloat) {
		switch bitsPerSample {
		case 32:
			return F32, true
		case 64:
			return F64, true
		}
		return 0, false
	}

	switch bitsPerSample {
	case 8:
		return I8, true
	case 16:
		return I16, true
	case 24:
		return I24, true
	case 32:
		return I32, true
	}
	return 0, false
}

// Flags returns the LPCM flags implied by the sample format alone.
func (s SampleFormat) Flags() LinearPCMFlags {
	switch s {
	case F32, F64:
		return FlagIsFloat | FlagIsPacked
	case I32, I24, I16, I8:
		return FlagIsSignedInteger | FlagIsPacked
	}
	return 0
}

// SizeInBits is the number of significant bits per sample.
func (s SampleFormat) SizeInBits() uint32 {
	return s.SizeInBytes() * 8
}

// SizeInBytes is the storage size of one sample.
func (s SampleFormat) SizeInBytes() uint32 {
	switch s {
	case F64:
		return 8
	case F32, I32:
		return 4
	case I24:
		return 3
	case I16:
		return 2
	case I8:
		return 1
	}
	return 0
}

// IsFloat reports whether samples are floating point.
func (s SampleFormat) IsFloat() bool { return s == F32 || s == F64 }

func (s SampleFormat) String() string {
	switch s {
	case F32:
		return "f32"
	case F64:
		return "f64"
	case I32:
		return "i32"
	case I24:
		return "i24"
	case I16:
		return "i16"
	case I8:
		return "i8"
	}
	return fmt.Sprintf("SampleFormat(%d)", uint8(s))
}
