// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through
// github.com/go-audio/wav.
//
// Decoder accepts 16, 24 and 32-bit PCM with any channel count and rate;
// samples come out as float32 in [-1, 1). Readers that cannot seek are
// buffered in memory first.
//
//	src, err := wav.Decoder{}.Decode(f)
//
// Encoder goes the other way. The RIFF sizes are only known at the end, so
// the destination must be an io.WriteSeeker and Close must be called:
//
//	e, err := wav.NewEncoder(f, 48000, 2, 24)
//	...
//	err = e.Write(samples)
//	...
//	err = e.Close()
//
// Encode drains a whole audio.Source into a file in one call.
package wav
