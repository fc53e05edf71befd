// SPDX-License-Identifier: EPL-2.0

package format

import (
	"fmt"
	"math"

	goaudio "github.com/go-audio/audio"
)

// ASBD mirrors AudioStreamBasicDescription byte for byte (40 bytes).
type ASBD struct {
	SampleRate       float64
	FormatID         FormatID
	FormatFlags      LinearPCMFlags
	BytesPerPacket   uint32
	FramesPerPacket  uint32
	BytesPerFrame    uint32
	ChannelsPerFrame uint32
	BitsPerChannel   uint32
	Reserved         uint32
}

// StreamFormat is the typed view of a linear PCM stream description.
//
// Flags carries the full LPCM flag set, including the float/signed bits
// that also follow from SampleFormat; Validate checks they agree.
type StreamFormat struct {
	SampleRate   float64
	SampleFormat SampleFormat
	Flags        LinearPCMFlags
	Channels     uint32
}

const framesPerPacket = 1

// New returns a packed stream format with flags derived from sf.
func New(sampleRate float64, sf SampleFormat, channels uint32, interleaved bool) StreamFormat {
	flags := sf.Flags()
	if !interleaved {
		flags |= FlagIsNonInterleaved
	}
	return StreamFormat{
		SampleRate:   sampleRate,
		SampleFormat: sf,
		Flags:        flags,
		Channels:     channels,
	}
}

// Interleaved reports whether all channels share a single buffer.
func (f StreamFormat) Interleaved() bool { return !f.Flags.NonInterleaved() }

// BytesPerFrame is the stride of one frame inside a single buffer.
func (f StreamFormat) BytesPerFrame() uint32 {
	size := f.SampleFormat.SizeInBytes()
	if f.Flags.NonInterleaved() {
		return size
	}
	return size * f.Channels
}

// Buffers is the number of buffers an AudioBufferList for this format holds.
func (f StreamFormat) Buffers() int {
	if f.Flags.NonInterleaved() {
		return int(f.Channels)
	}
	return 1
}

// ChannelsPerBuffer is the number of interleaved channels in each buffer.
func (f StreamFormat) ChannelsPerBuffer() uint32 {
	if f.Flags.NonInterleaved() {
		return 1
	}
	return f.Channels
}

// ASBD converts the format to its native descriptor. It never fails; pass
// the result through FromASBD (or call Validate) to know whether the
// descriptor is one this package can read back.
func (f StreamFormat) ASBD() ASBD {
	flags := f.Flags
	if flags == 0 {
		flags = FlagsAreAllClear
	}

	bytesPerFrame := f.BytesPerFrame()
	return ASBD{
		SampleRate:       f.SampleRate,
		FormatID:         LinearPCM,
		FormatFlags:      flags,
		BytesPerPacket:   bytesPerFrame * framesPerPacket,
		FramesPerPacket:  framesPerPacket,
		BytesPerFrame:    bytesPerFrame,
		ChannelsPerFrame: f.Channels,
		BitsPerChannel:   f.SampleFormat.SizeInBits(),
	}
}

// Validate reports whether f survives a trip through ASBD and FromASBD
// unchanged.
func (f StreamFormat) Validate() error {
	got, err := FromASBD(f.ASBD())
	if err != nil {
		return err
	}
	if got != f {
		return unsupported("sample format %s disagrees with flags %s", f.SampleFormat, f.Flags)
	}
	return nil
}

// FromASBD reads a native descriptor. Anything outside the supported set
// of linear PCM layouts fails with ErrUnsupportedStreamFormat.
func FromASBD(d ASBD) (StreamFormat, error) {
	if d.FormatID != LinearPCM {
		return StreamFormat{}, unsupported("format id %s", d.FormatID)
	}

	if math.IsNaN(d.SampleRate) || math.IsInf(d.SampleRate, 0) || d.SampleRate <= 0 {
		return StreamFormat{}, unsupported("sample rate %v", d.SampleRate)
	}

	flags := d.FormatFlags
	if flags == FlagsAreAllClear {
		flags = 0
	}
	if flags&^knownFlags != 0 {
		return StreamFormat{}, unsupported("flags %#x", uint32(d.FormatFlags))
	}
	if flags.Contains(FlagIsBigEndian) {
		return StreamFormat{}, unsupported("big-endian samples")
	}

	isFloat := flags.Contains(FlagIsFloat)
	if isFloat && flags.Contains(FlagIsSignedInteger) {
		return StreamFormat{}, unsupported("float and signed integer flags together")
	}
	if !isFloat && !flags.Contains(FlagIsSignedInteger) {
		return StreamFormat{}, unsupported("unsigned integer samples")
	}

	sf, ok := SampleFormatFromFlags(flags, d.BitsPerChannel)
	if !ok {
		return StreamFormat{}, unsupported("%d bits per channel with flags %s", d.BitsPerChannel, flags)
	}
	if sf == I24 && !flags.Contains(FlagIsPacked) {
		return StreamFormat{}, unsupported("unpacked 24-bit samples")
	}

	if d.ChannelsPerFrame == 0 {
		return StreamFormat{}, unsupported("zero channels")
	}
	if frame := uint64(sf.SizeInBytes()) * uint64(d.ChannelsPerFrame); frame > math.MaxUint32 {
		return StreamFormat{}, unsupported("%d channels overflow the frame size", d.ChannelsPerFrame)
	}

	f := StreamFormat{
		SampleRate:   d.SampleRate,
		SampleFormat: sf,
		Flags:        flags,
		Channels:     d.ChannelsPerFrame,
	}

	if d.FramesPerPacket != framesPerPacket {
		return StreamFormat{}, unsupported("%d frames per packet", d.FramesPerPacket)
	}
	if want := f.BytesPerFrame(); d.BytesPerFrame != want || d.BytesPerPacket != want {
		return StreamFormat{}, unsupported("%d bytes per frame, %d per packet; layout needs %d",
			d.BytesPerFrame, d.BytesPerPacket, want)
	}
	if d.Reserved != 0 {
		return StreamFormat{}, unsupported("reserved field %d", d.Reserved)
	}

	return f, nil
}

// GoAudioFormat returns the go-audio description of f.
func (f StreamFormat) GoAudioFormat() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: int(f.Channels),
		SampleRate:  int(f.SampleRate),
	}
}

// FromGoAudio builds a packed stream format from a go-audio format.
func FromGoAudio(gf *goaudio.Format, sf SampleFormat, interleaved bool) StreamFormat {
	return New(float64(gf.SampleRate), sf, uint32(gf.NumChannels), interleaved)
}

func (f StreamFormat) String() string {
	layout := "interleaved"
	if f.Flags.NonInterleaved() {
		layout = "non-interleaved"
	}
	return fmt.Sprintf("%gHz %s %dch %s", f.SampleRate, f.SampleFormat, f.Channels, layout)
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedStreamFormat, fmt.Sprintf(format, args...))
}
