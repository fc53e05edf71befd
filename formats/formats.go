// SPDX-License-Identifier: EPL-2.0

// Package formats wires the container decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/formats/aiff"
	"github.com/ik5/audiounit/formats/mp3"
	"github.com/ik5/audiounit/formats/vorbis"
	"github.com/ik5/audiounit/formats/wav"
)

// Register adds every decoder in this module to reg.
func Register(reg *audio.Registry) {
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(aiff.Decoder{}, "aiff", "aif")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")
}

// Registry returns a registry with every decoder registered.
func Registry() *audio.Registry {
	reg := audio.NewRegistry()
	Register(reg)
	return reg
}
