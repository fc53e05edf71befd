// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Capture is a Source fed by a realtime producer, such as an audio unit
// input callback. Write drops whole frames when the ring is full instead of
// waiting for space; ReadSamples blocks until frames arrive or the writer
// is done.
//
// Writer and reader share one mutex. A reader parked in ReadSamples does
// not hold it, and a reader copying out holds it only for a copy of at
// most len(dst) samples, so Write waits at most that long.
type Capture struct {
	mu   sync.Mutex
	cond *sync.Cond

	ring       []float32
	head, size int

	rate     int
	channels int
	dropped  uint64
	done     bool
	closed   bool
}

// NewCapture returns a capture holding up to frames frames.
func NewCapture(rate, channels, frames int) *Capture {
	c := &Capture{
		ring:     make([]float32, max(frames, 1)*channels),
		rate:     rate,
		channels: channels,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *Capture) SampleRate() int { return c.rate }
func (c *Capture) Channels() int   { return c.channels }
func (c *Capture) BufSize() int    { return 1024 * c.channels }

// Write appends interleaved samples and returns how many were kept. It
// never waits for the ring to drain.
func (c *Capture) Write(samples []float32) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return 0
	}

	free := len(c.ring) - c.size
	n := min(len(samples), free)
	n -= n % c.channels
	c.dropped += uint64(len(samples) - n)

	tail := (c.head + c.size) % len(c.ring)
	first := copy(c.ring[tail:], samples[:n])
	copy(c.ring, samples[first:n])
	c.size += n

	if n > 0 {
		c.cond.Signal()
	}
	return n
}

// Dropped counts samples lost to a full ring.
func (c *Capture) Dropped() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// Buffered is the number of samples waiting to be read.
func (c *Capture) Buffered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// CloseWrite ends the stream. Buffered samples stay readable; after them
// ReadSamples returns io.EOF.
func (c *Capture) CloseWrite() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.done = true
	c.cond.Broadcast()
}

// ReadSamples waits for at least one frame and copies out as many whole
// frames as fit in dst.
func (c *Capture) ReadSamples(dst []float32) (int, error) {
	if len(dst)%c.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.size == 0 && !c.done {
		c.cond.Wait()
	}
	if c.closed {
		return 0, ErrCaptureClosed
	}
	if c.size == 0 {
		return 0, io.EOF
	}

	n := min(len(dst), c.size)
	first := copy(dst[:n], c.ring[c.head:min(c.head+n, len(c.ring))])
	copy(dst[first:n], c.ring)
	c.head = (c.head + n) % len(c.ring)
	c.size -= n
	return n, nil
}

// Close discards anything buffered and wakes blocked readers with
// ErrCaptureClosed.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.done, c.closed = true, true
	c.size = 0
	c.cond.Broadcast()
	return nil
}
