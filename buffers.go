// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/ik5/audiounit/format"
	"github.com/ik5/audiounit/internal/native"
)

// Sample is the set of Go types a render callback can see its buffers as.
// Packed 24-bit samples have no Go counterpart and are not callable.
type Sample interface {
	float32 | float64 | int32 | int16 | int8
}

func sampleFormatOf[S Sample]() format.SampleFormat {
	var s S
	switch any(s).(type) {
	case float32:
		return format.F32
	case float64:
		return format.F64
	case int32:
		return format.I32
	case int16:
		return format.I16
	default:
		return format.I8
	}
}

// bufferViews refills dst with typed slices over the buffers of l, each
// at most samples long and never past the buffer's byte size.
func bufferViews[S Sample](dst [][]S, l *native.AudioBufferList, samples int) [][]S {
	dst = dst[:0]

	var s S
	size := int(unsafe.Sizeof(s))
	for _, b := range l.Slice() {
		n := min(samples, int(b.DataByteSize)/size)
		if b.Data == nil || n <= 0 {
			dst = append(dst, nil)
			continue
		}
		dst = append(dst, unsafe.Slice((*S)(b.Data), n))
	}
	return dst
}

// inputBuffers is the buffer list an input callback renders into. The
// list and every buffer are Go memory pinned for as long as the
// registration lives.
type inputBuffers struct {
	list          *native.AudioBufferList
	mem           [][]uint64
	pinner        runtime.Pinner
	bytesPerFrame uint32
	capacity      uint32
}

func newInputBuffers(f format.StreamFormat, frames uint32) (*inputBuffers, error) {
	size := uint64(frames) * uint64(f.BytesPerFrame())
	if size == 0 || size > math.MaxUint32 {
		return nil, fmt.Errorf("input buffers of %d frames of %s: %w", frames, f, &StatusError{Code: StatusInvalidPropertyValue})
	}

	ib := &inputBuffers{
		list:          native.NewBufferList(f.Buffers()),
		mem:           make([][]uint64, f.Buffers()),
		bytesPerFrame: f.BytesPerFrame(),
		capacity:      frames,
	}
	ib.pinner.Pin(ib.list)

	bytes := uint32(size)
	bufs := ib.list.Slice()
	for i := range bufs {
		// Words rather than bytes keep float64 samples aligned.
		ib.mem[i] = make([]uint64, (bytes+7)/8)
		ib.pinner.Pin(&ib.mem[i][0])
		bufs[i] = native.AudioBuffer{
			NumberChannels: f.ChannelsPerBuffer(),
			DataByteSize:   bytes,
			Data:           unsafe.Pointer(&ib.mem[i][0]),
		}
	}
	return ib, nil
}

// prepare sizes every buffer for frames. It fails when frames exceeds the
// capacity the list was allocated with.
func (ib *inputBuffers) prepare(frames uint32) bool {
	if frames > ib.capacity {
		return false
	}
	bufs := ib.list.Slice()
	for i := range bufs {
		bufs[i].DataByteSize = frames * ib.bytesPerFrame
	}
	return true
}

func (ib *inputBuffers) release() {
	ib.pinner.Unpin()
	ib.list = nil
	ib.mem = nil
}
