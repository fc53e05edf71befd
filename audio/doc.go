// SPDX-License-Identifier: EPL-2.0

// Package audio holds the float32 stream plumbing that sits on either side
// of an audio unit: decoded files flowing into a render callback, and
// captured input flowing out of an input callback.
//
// # Sources
//
// A Source yields interleaved float32 samples in [-1, 1]. Decoders,
// filters and captures all implement it, so they stack:
//
//	src, err := registry.Decode("song.mp3", f)
//	if err != nil {
//	    return err
//	}
//	src = audio.NewGain(audio.NewResampler(src, 48000), 0.5)
//
// ReadSamples returns io.EOF, possibly alongside a final batch, once the
// stream ends.
//
// # Filters
//
//   - Resampler converts the rate with Catmull-Rom interpolation.
//   - MonoMixer averages all channels into one.
//   - Gain scales samples by a constant.
//
// Sine generates a test tone.
//
// # Capture
//
// Capture bridges a producer that must not block, such as a callback on
// the real-time audio thread, to a consumer that may. Write never waits:
// when the ring is full, whole frames are dropped and counted. After
// CloseWrite readers drain what is left and then see io.EOF.
//
// # Registry
//
// A Registry maps file extensions to Decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Decoder{}, "wav", "wave")
//	src, err := reg.Decode(name, r)
package audio
