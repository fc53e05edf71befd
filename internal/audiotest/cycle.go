// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"unsafe"

	"github.com/ik5/audiounit/internal/native"
)

// RenderCycle plays the audio thread asking u's render callback for frames
// frames. The buffers are laid out from the stream format on the input
// scope of the output element, which is what a render callback feeds.
// It returns the bytes the callback wrote, one slice per buffer.
func (b *Backend) RenderCycle(u *Unit, frames uint32) ([][]byte, native.Status) {
	b.mu.Lock()
	proc, refCon, ok := b.callback(u, propSetRenderCallback, scopeInput)
	f, fok := u.format(scopeInput, 0)
	ts := u.timestamp(frames)
	b.mu.Unlock()

	if !ok {
		return nil, StatusNoConnection
	}
	if !fok {
		return nil, StatusParam
	}

	list := native.NewBufferList(f.Buffers())
	out := make([][]byte, f.Buffers())
	bytes := frames * f.BytesPerFrame()
	bufs := list.Slice()
	for i := range bufs {
		words := make([]uint64, (bytes+7)/8+1)
		out[i] = unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), bytes)
		bufs[i] = native.AudioBuffer{
			NumberChannels: f.ChannelsPerBuffer(),
			DataByteSize:   bytes,
			Data:           unsafe.Pointer(&words[0]),
		}
	}

	var flags uint32
	st := proc(refCon, &flags, &ts, 0, frames, list)
	return out, st
}

// InputCycle plays the audio thread telling u's input callback that frames
// frames are available on the input bus.
func (b *Backend) InputCycle(u *Unit, frames uint32) native.Status {
	b.mu.Lock()
	proc, refCon, ok := b.callback(u, propSetInputCallback, scopeGlobal)
	ts := u.timestamp(frames)
	b.mu.Unlock()

	if !ok {
		return StatusNoConnection
	}

	var flags uint32
	return proc(refCon, &flags, &ts, 1, frames, nil)
}

// Installed reports whether a callback is set in u's render (input false)
// or input (input true) callback slot.
func (b *Backend) Installed(u *Unit, input bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, scope := uint32(propSetRenderCallback), uint32(scopeInput)
	if input {
		id, scope = propSetInputCallback, scopeGlobal
	}
	_, _, ok := b.callback(u, id, scope)
	return ok
}

// CallbackRefCon returns the refCon installed in u's render or input slot.
func (b *Backend) CallbackRefCon(u *Unit, input bool) uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, scope := uint32(propSetRenderCallback), uint32(scopeInput)
	if input {
		id, scope = propSetInputCallback, scopeGlobal
	}
	v, ok := u.props[propKey{id, scope, 0}]
	if !ok || len(v) != int(unsafe.Sizeof(native.RenderCallbackStruct{})) {
		return 0
	}
	return (*native.RenderCallbackStruct)(unsafe.Pointer(&v[0])).RefCon
}

// Invoke calls the procedure behind a callback pointer directly, as the
// audio thread would after the slot has been cleared.
func (b *Backend) Invoke(proc, refCon uintptr, frames uint32) native.Status {
	b.mu.Lock()
	p, ok := b.procs[proc]
	b.mu.Unlock()

	if !ok {
		return StatusNoConnection
	}
	var flags uint32
	var ts native.AudioTimeStamp
	return p(refCon, &flags, &ts, 0, frames, native.NewBufferList(1))
}

// LastProc is the most recent pointer handed out by Callback.
func (b *Backend) LastProc() uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nextProc
}

func (b *Backend) callback(u *Unit, id, scope uint32) (native.RenderProc, uintptr, bool) {
	if u.disposed {
		return nil, 0, false
	}
	v, ok := u.props[propKey{id, scope, 0}]
	if !ok || len(v) != int(unsafe.Sizeof(native.RenderCallbackStruct{})) {
		return nil, 0, false
	}
	var cbs native.RenderCallbackStruct
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&cbs)), len(v)), v)
	if cbs.Proc == 0 {
		return nil, 0, false
	}
	proc, ok := b.procs[cbs.Proc]
	return proc, cbs.RefCon, ok
}

func (u *Unit) timestamp(frames uint32) native.AudioTimeStamp {
	ts := native.AudioTimeStamp{
		SampleTime: float64(u.sampleTime),
		Flags:      1, // kAudioTimeStampSampleTimeValid
	}
	u.sampleTime += uint64(frames)
	return ts
}
