// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	"github.com/ik5/audiounit/format"
	"github.com/ik5/audiounit/internal/native"
)

// ActionFlags is AudioUnitRenderActionFlags.
type ActionFlags uint32

const (
	ActionPreRender            ActionFlags = 1 << 2
	ActionPostRender           ActionFlags = 1 << 3
	ActionOutputIsSilence      ActionFlags = 1 << 4
	ActionPreflight            ActionFlags = 1 << 5
	ActionRender               ActionFlags = 1 << 6
	ActionComplete             ActionFlags = 1 << 7
	ActionPostRenderError      ActionFlags = 1 << 8
	ActionDoNotCheckRenderArgs ActionFlags = 1 << 9
)

// TimeStamp is the AudioTimeStamp handed to render callbacks.
type TimeStamp = native.AudioTimeStamp

// RenderArgs describes one render cycle.
//
// Data holds one slice per buffer: a single slice of Frames*Channels
// interleaved samples, or one slice of Frames samples per channel when the
// format is non-interleaved. The slices alias native memory and the whole
// value is reused between cycles; nothing in it may be retained once the
// callback returns.
type RenderArgs[S Sample] struct {
	Flags     *ActionFlags
	TimeStamp *TimeStamp
	BusNumber uint32
	Frames    uint32
	Format    format.StreamFormat
	Data      [][]S
}

// RenderFunc fills (output) or consumes (input) one cycle of samples.
// Returning a *StatusError hands its code to the unit; any other error is
// reported as StatusUnspecified.
type RenderFunc[S Sample] func(args *RenderArgs[S]) error

type registration struct {
	handle  uintptr
	buffers *inputBuffers
}

// SetRenderCallback installs fn as the unit's render callback, replacing
// any previous one. The stream format on the input scope of the output
// element must carry samples of type S.
//
// Callbacks run on the audio thread and must only be swapped while the
// unit is stopped.
func SetRenderCallback[S Sample](u *AudioUnit, fn RenderFunc[S]) error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)

	f, err := u.StreamFormatOf(ScopeInput, ElementOutput)
	if err != nil {
		return err
	}
	if err := matchSample[S](f); err != nil {
		return err
	}

	_, err = h.freeRender()
	u.render = nil
	if err != nil {
		return err
	}

	args := &RenderArgs[S]{Format: f, Data: make([][]S, 0, f.Buffers())}
	perBuffer := f.ChannelsPerBuffer()
	d := &dispatch{fn: func(flags *uint32, ts *native.AudioTimeStamp, bus, frames uint32, data *native.AudioBufferList) native.Status {
		args.Flags = (*ActionFlags)(unsafe.Pointer(flags))
		args.TimeStamp = ts
		args.BusNumber = bus
		args.Frames = frames
		args.Data = bufferViews(args.Data, data, int(frames*perBuffer))
		return native.Status(osStatus(fn(args)))
	}}
	handle := registerCallback(d)

	if err := h.install(PropertySetRenderCallback, ScopeInput, handle); err != nil {
		unregisterCallback(handle)
		return err
	}
	h.render = &registration{handle: handle}
	u.render = d
	h.log.Debug("render callback installed", zap.Stringer("format", f))
	return nil
}

// SetInputCallback installs fn as the unit's input callback, replacing any
// previous one. Each cycle first renders the input element into buffers
// owned by the registration and then hands them to fn. The buffers are
// sized from BufferFrameSize and the stream format on the output scope of
// the input element, which must carry samples of type S.
func SetInputCallback[S Sample](u *AudioUnit, fn RenderFunc[S]) error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)

	f, err := u.StreamFormatOf(ScopeOutput, ElementInput)
	if err != nil {
		return err
	}
	if err := matchSample[S](f); err != nil {
		return err
	}
	capacity, err := u.BufferFrameSize()
	if err != nil {
		return err
	}
	if capacity == 0 {
		return fmt.Errorf("input callback with zero buffer frame size: %w", &StatusError{Code: StatusInvalidPropertyValue})
	}

	_, err = h.freeInput()
	u.input = nil
	if err != nil {
		return err
	}

	bufs, err := newInputBuffers(f, capacity)
	if err != nil {
		return err
	}
	args := &RenderArgs[S]{Format: f, Data: make([][]S, 0, f.Buffers())}
	perBuffer := f.ChannelsPerBuffer()
	backend, instance := h.backend, h.instance
	d := &dispatch{fn: func(flags *uint32, ts *native.AudioTimeStamp, bus, frames uint32, _ *native.AudioBufferList) native.Status {
		if !bufs.prepare(frames) {
			return native.Status(StatusTooManyFramesToProcess)
		}
		if st := backend.Render(instance, flags, ts, bus, frames, bufs.list); st != 0 {
			return st
		}

		args.Flags = (*ActionFlags)(unsafe.Pointer(flags))
		args.TimeStamp = ts
		args.BusNumber = bus
		args.Frames = frames
		args.Data = bufferViews(args.Data, bufs.list, int(frames*perBuffer))
		return native.Status(osStatus(fn(args)))
	}}
	handle := registerCallback(d)

	if err := h.install(PropertySetInputCallback, ScopeGlobal, handle); err != nil {
		unregisterCallback(handle)
		bufs.release()
		return err
	}
	h.input = &registration{handle: handle, buffers: bufs}
	u.input = d
	h.log.Debug("input callback installed",
		zap.Stringer("format", f), zap.Uint32("capacity", capacity))
	return nil
}

// FreeRenderCallback removes the render callback. It reports whether one
// was installed. The callback is released even when clearing the native
// slot fails; the error is still returned.
func (u *AudioUnit) FreeRenderCallback() (bool, error) {
	h, err := u.live()
	if err != nil {
		return false, err
	}
	freed, err := h.freeRender()
	u.render = nil
	if err != nil {
		return freed, fmt.Errorf("clearing render callback: %w", err)
	}
	return freed, nil
}

// FreeInputCallback removes the input callback and releases its buffers.
// It reports whether one was installed.
func (u *AudioUnit) FreeInputCallback() (bool, error) {
	h, err := u.live()
	if err != nil {
		return false, err
	}
	freed, err := h.freeInput()
	u.input = nil
	if err != nil {
		return freed, fmt.Errorf("clearing input callback: %w", err)
	}
	return freed, nil
}

func matchSample[S Sample](f format.StreamFormat) error {
	if want := sampleFormatOf[S](); f.SampleFormat != want {
		return fmt.Errorf("%s callback on %s stream: %w", want, f, &StatusError{Code: StatusFormatNotSupported})
	}
	return nil
}

func (h *handle) install(id PropertyID, scope Scope, refCon uintptr) error {
	cbs := native.RenderCallbackStruct{
		Proc:   h.backend.Callback(trampoline),
		RefCon: refCon,
	}
	return setProperty(h.backend, h.instance, id, scope, ElementOutput, &cbs)
}

func (h *handle) freeRender() (bool, error) {
	return h.free(&h.render, PropertySetRenderCallback, ScopeInput)
}

func (h *handle) freeInput() (bool, error) {
	return h.free(&h.input, PropertySetInputCallback, ScopeGlobal)
}

// free clears the native callback slot before the handle and buffers go
// away. The handle is dropped even if clearing fails, so a late call from
// the audio thread finds nothing to run.
func (h *handle) free(slot **registration, id PropertyID, scope Scope) (bool, error) {
	reg := *slot
	if reg == nil {
		return false, nil
	}
	*slot = nil

	var cleared native.RenderCallbackStruct
	err := setProperty(h.backend, h.instance, id, scope, ElementOutput, &cleared)

	unregisterCallback(reg.handle)
	if reg.buffers != nil {
		reg.buffers.release()
	}
	return true, err
}
