// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files, the native container of Core Audio,
// through github.com/go-audio/aiff.
//
// Integer PCM of 16, 24 and 32 bits is supported at any rate and channel
// count. Samples are delivered as float32 in [-1, 1):
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // 8-bit or compressed AIFC
//	}
//
// go-audio seeks between chunks; readers that cannot seek are loaded into
// memory first.
package aiff
