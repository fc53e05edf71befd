// SPDX-License-Identifier: EPL-2.0

package format

import "fmt"

// FormatID is an AudioFormatID four-character code.
type FormatID uint32

// A few of the AudioFormatIDs. Only LinearPCM can be described by a
// StreamFormat; the rest exist so descriptors read from a unit print
// something readable.
const (
	LinearPCM     FormatID = 0x6c70636d // 'lpcm'
	AC3           FormatID = 0x61632d33 // 'ac-3'
	MPEG4AAC      FormatID = 0x61616320 // 'aac '
	MPEGLayer3    FormatID = 0x2e6d7033 // '.mp3'
	AppleLossless FormatID = 0x616c6163 // 'alac'
	AppleIMA4     FormatID = 0x696d6134 // 'ima4'
	ULaw          FormatID = 0x756c6177 // 'ulaw'
	ALaw          FormatID = 0x616c6177 // 'alaw'
	FLAC          FormatID = 0x666c6163 // 'flac'
	Opus          FormatID = 0x6f707573 // 'opus'
)

// FourCC packs a four character code into a uint32, big-endian, the way
// AudioToolbox headers spell them.
func FourCC(code string) uint32 {
	var v uint32
	for i := range 4 {
		v <<= 8
		if i < len(code) {
			v |= uint32(code[i])
		}
	}
	return v
}

// IsFourCC reports whether all four bytes of v are printable ASCII.
func IsFourCC(v uint32) bool {
	for shift := 0; shift < 32; shift += 8 {
		c := byte(v >> shift)
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// FourCCString unpacks a four character code. Codes containing
// non-printable bytes are rendered as hex.
func FourCCString(v uint32) string {
	if !IsFourCC(v) {
		return fmt.Sprintf("0x%08x", v)
	}
	return string([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (id FormatID) String() string { return FourCCString(uint32(id)) }
