// SPDX-License-Identifier: EPL-2.0

// Package format describes linear PCM stream layouts and converts them to
// and from AudioStreamBasicDescription.
//
// # Stream Formats
//
// A StreamFormat names the sample rate, the sample encoding, the LPCM
// flags and the channel count:
//
//	f := format.New(48000, format.F32, 2, false) // non-interleaved stereo float
//	asbd := f.ASBD()
//
// ASBD is total: it computes the byte counts from the channel count, the
// sample size and the interleaving flag. FromASBD is the strict direction
// and rejects anything the model cannot represent exactly:
//
//	f, err := format.FromASBD(asbd)
//	if errors.Is(err, format.ErrUnsupportedStreamFormat) {
//	    // compressed, big-endian, unsigned, fixed-point, inconsistent sizes...
//	}
//
// For every format that passes Validate, FromASBD(f.ASBD()) == f.
//
// # Supported Layouts
//
//   - 32 and 64-bit float
//   - 8, 16, packed 24 and 32-bit signed integer
//   - interleaved or non-interleaved, any channel count
//   - native (little) endian only
//
// # go-audio Interop
//
// GoAudioFormat and FromGoAudio translate to and from github.com/go-audio/audio
// formats, which the decoders and the WAV encoder in this module use.
package format
