// SPDX-License-Identifier: EPL-2.0

package format

import "strings"

// LinearPCMFlags are the kLinearPCMFormatFlag* bits of an LPCM descriptor.
type LinearPCMFlags uint32

const (
	FlagIsFloat          LinearPCMFlags = 1 << 0
	FlagIsBigEndian      LinearPCMFlags = 1 << 1
	FlagIsSignedInteger  LinearPCMFlags = 1 << 2
	FlagIsPacked         LinearPCMFlags = 1 << 3
	FlagIsAlignedHigh    LinearPCMFlags = 1 << 4
	FlagIsNonInterleaved LinearPCMFlags = 1 << 5
	FlagIsNonMixable     LinearPCMFlags = 1 << 6

	// FlagsSampleFractionMask selects the fixed-point fraction bits.
	FlagsSampleFractionMask LinearPCMFlags = 0x3f << 7

	// FlagsAreAllClear is how an empty flag set is spelled on the wire.
	FlagsAreAllClear LinearPCMFlags = 1 << 31
)

const knownFlags = FlagIsFloat | FlagIsBigEndian | FlagIsSignedInteger | FlagIsPacked |
	FlagIsAlignedHigh | FlagIsNonInterleaved | FlagIsNonMixable

// Contains reports whether every bit of o is set in f.
func (f LinearPCMFlags) Contains(o LinearPCMFlags) bool { return f&o == o }

// NonInterleaved reports whether each channel has its own buffer.
func (f LinearPCMFlags) NonInterleaved() bool { return f.Contains(FlagIsNonInterleaved) }

func (f LinearPCMFlags) String() string {
	if f == 0 {
		return "none"
	}

	names := []struct {
		flag LinearPCMFlags
		name string
	}{
		{FlagIsFloat, "float"},
		{FlagIsBigEndian, "big-endian"},
		{FlagIsSignedInteger, "signed"},
		{FlagIsPacked, "packed"},
		{FlagIsAlignedHigh, "aligned-high"},
		{FlagIsNonInterleaved, "non-interleaved"},
		{FlagIsNonMixable, "non-mixable"},
	}

	var parts []string
	for _, n := range names {
		if f.Contains(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if f&^knownFlags != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
