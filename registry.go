// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"sync"
	"sync/atomic"
	"weak"

	"github.com/ik5/audiounit/internal/native"
)

// callback is what the trampoline dispatches to. It sees the native
// arguments unchanged.
type callback func(flags *uint32, ts *native.AudioTimeStamp, bus, frames uint32, data *native.AudioBufferList) native.Status

// dispatch boxes a callback so the registry can point at it weakly. The
// AudioUnit holds the only strong reference.
type dispatch struct {
	fn callback
}

// The native side only ever holds an integer handle as the callback's
// refCon. Go pointers never cross the boundary, and a handle removed from
// the registry can no longer reach its closure.
//
// Entries are weak: a closure that captures its own unit must not keep the
// unit reachable, or its cleanup would never run.
var (
	callbacks  sync.Map // uintptr -> weak.Pointer[dispatch]
	lastHandle atomic.Uintptr
)

func registerCallback(d *dispatch) uintptr {
	h := lastHandle.Add(1)
	callbacks.Store(h, weak.Make(d))
	return h
}

func unregisterCallback(h uintptr) bool {
	_, ok := callbacks.LoadAndDelete(h)
	return ok
}

func lookupCallback(h uintptr) (*dispatch, bool) {
	v, ok := callbacks.Load(h)
	if !ok {
		return nil, false
	}
	d := v.(weak.Pointer[dispatch]).Value()
	return d, d != nil
}

// trampoline is the single native render procedure shared by every unit.
func trampoline(refCon uintptr, flags *uint32, ts *native.AudioTimeStamp, bus, frames uint32, data *native.AudioBufferList) (st native.Status) {
	d, ok := lookupCallback(refCon)
	if !ok {
		return native.Status(StatusNoConnection)
	}

	// A panic must not unwind into the audio thread.
	defer func() {
		if recover() != nil {
			st = native.Status(StatusUnspecified)
		}
	}()

	return d.fn(flags, ts, bus, frames, data)
}
