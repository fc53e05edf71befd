// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages every frame of its source down to one channel.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return max(m.src.BufSize()/max(m.src.Channels(), 1), 1) }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("mono mixer: %w", err)
	}
	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	if channels == 1 || len(dst) == 0 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	tmp := m.tmp[:need]

	n, err := m.src.ReadSamples(tmp)
	frames := n / channels

	scale := 1 / float32(channels)
	if channels == 2 {
		for f := range frames {
			dst[f] = (tmp[2*f] + tmp[2*f+1]) * scale
		}
		return frames, err
	}
	for f := range frames {
		var sum float32
		for _, s := range tmp[f*channels : (f+1)*channels] {
			sum += s
		}
		dst[f] = sum * scale
	}
	return frames, err
}

// Gain scales every sample of its source by a constant.
type Gain struct {
	Source
	gain float32
}

// NewGain wraps src; a gain of 1 passes samples through unchanged.
func NewGain(src Source, gain float32) *Gain {
	return &Gain{Source: src, gain: gain}
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.Source.ReadSamples(dst)
	if g.gain != 1 {
		for i := range dst[:n] {
			dst[i] *= g.gain
		}
	}
	return n, err
}
