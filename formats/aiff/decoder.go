// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/formats/internal/pcm"
)

// Decoder reads big-endian integer PCM AIFF files of 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	switch dec.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	f := dec.Format()
	if f == nil || f.NumChannels == 0 || f.SampleRate == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	var c io.Closer
	if cl, ok := r.(io.Closer); ok {
		c = cl
	}
	return pcm.NewSource(dec, f, int(dec.BitDepth), c), nil
}
