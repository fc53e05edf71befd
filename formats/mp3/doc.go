// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG Layer III through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so every source from this package
// reports two channels, even for mono files.
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if errors.Is(err, mp3.ErrNotMP3) {
//	    ...
//	}
package mp3
