// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/ik5/audiounit/format"
	"github.com/ik5/audiounit/internal/native"
)

// AudioUnit owns one native audio unit instance together with its render
// and input callback registrations.
//
// An AudioUnit may move between goroutines but must not be used from more
// than one at a time. Close or Dispose it when done; an unreachable unit
// that was never closed is torn down by the garbage collector, including
// one whose callbacks refer back to it.
type AudioUnit struct {
	h       *handle
	cleanup runtime.Cleanup

	// The installed callbacks. The registry only points at them weakly,
	// so these fields decide how long they live.
	render *dispatch
	input  *dispatch
}

// handle is everything teardown needs. It is kept apart from AudioUnit so
// the cleanup can hold it without keeping the unit reachable.
type handle struct {
	backend  native.Backend
	instance native.Instance
	typ      Type
	id       xid.ID
	log      *zap.Logger
	render   *registration
	input    *registration
	closed   bool
}

// New finds the first Apple unit of type t, instantiates it and
// initializes it.
func New(t Typer, opts ...Option) (*AudioUnit, error) {
	return NewWithFlags(t, 0, 0, opts...)
}

// NewWithFlags is New with componentFlags and componentFlagsMask.
func NewWithFlags(t Typer, flags, mask uint32, opts ...Option) (*AudioUnit, error) {
	o := newOptions(opts)

	typ := t.AudioUnitType()
	subType, ok := typ.SubType()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKnownSubtype, typ)
	}

	desc := native.ComponentDescription{
		Type:         uint32(typ.Category),
		SubType:      subType,
		Manufacturer: ManufacturerApple,
		Flags:        flags,
		FlagsMask:    mask,
	}
	component := o.backend.FindNext(0, &desc)
	if component == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingDefaultAudioUnitFound, typ)
	}

	var instance native.Instance
	if err := nativeCall("instantiate", o.backend.InstanceNew(component, &instance)); err != nil {
		return nil, fmt.Errorf("%s: %w", typ, err)
	}
	if err := nativeCall("initialize", o.backend.Initialize(instance)); err != nil {
		o.backend.InstanceDispose(instance)
		return nil, fmt.Errorf("%s: %w", typ, err)
	}

	id := xid.New()
	h := &handle{
		backend:  o.backend,
		instance: instance,
		typ:      typ,
		id:       id,
		log:      o.logger.With(zap.Stringer("unit", id)),
	}
	u := &AudioUnit{h: h}
	u.cleanup = runtime.AddCleanup(u, (*handle).dispose, h)

	h.log.Debug("audio unit created", zap.Stringer("type", typ))
	return u, nil
}

// ID identifies the unit in logs.
func (u *AudioUnit) ID() xid.ID { return u.h.id }

// Type is the type the unit was created with.
func (u *AudioUnit) Type() Type { return u.h.typ }

// Initialize allocates the unit's render resources for the current
// formats. New already initializes; call it again after Uninitialize.
func (u *AudioUnit) Initialize() error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)
	return nativeCall("initialize", h.backend.Initialize(h.instance))
}

// Uninitialize releases the render resources so stream formats and the
// sample rate can be changed.
func (u *AudioUnit) Uninitialize() error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)
	return nativeCall("uninitialize", h.backend.Uninitialize(h.instance))
}

// Start starts an I/O unit and the graph connected to it.
func (u *AudioUnit) Start() error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)
	return nativeCall("start", h.backend.OutputStart(h.instance))
}

// Stop stops an I/O unit.
func (u *AudioUnit) Stop() error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)
	return nativeCall("stop", h.backend.OutputStop(h.instance))
}

// SetSampleRate sets the sample rate on the input scope of the output
// element.
func (u *AudioUnit) SetSampleRate(rate float64) error {
	return SetProperty(u, PropertySampleRate, ScopeInput, ElementOutput, &rate)
}

// SampleRate reads the sample rate on the input scope of the output element.
func (u *AudioUnit) SampleRate() (float64, error) {
	return GetProperty[float64](u, PropertySampleRate, ScopeInput, ElementOutput)
}

// SetStreamFormat sets the stream format of the output element in scope.
func (u *AudioUnit) SetStreamFormat(f format.StreamFormat, scope Scope) error {
	return u.SetStreamFormatOf(f, scope, ElementOutput)
}

// StreamFormat reads the stream format of the output element in scope.
func (u *AudioUnit) StreamFormat(scope Scope) (format.StreamFormat, error) {
	return u.StreamFormatOf(scope, ElementOutput)
}

// OutputStreamFormat is StreamFormat(ScopeOutput).
func (u *AudioUnit) OutputStreamFormat() (format.StreamFormat, error) {
	return u.StreamFormat(ScopeOutput)
}

// InputStreamFormat is StreamFormat(ScopeInput).
func (u *AudioUnit) InputStreamFormat() (format.StreamFormat, error) {
	return u.StreamFormat(ScopeInput)
}

// SetStreamFormatOf sets the stream format at (scope, elem). Formats that
// would not read back unchanged are rejected before reaching the unit.
func (u *AudioUnit) SetStreamFormatOf(f format.StreamFormat, scope Scope, elem Element) error {
	if err := f.Validate(); err != nil {
		return err
	}
	asbd := f.ASBD()
	return SetProperty(u, PropertyStreamFormat, scope, elem, &asbd)
}

// StreamFormatOf reads the stream format at (scope, elem).
func (u *AudioUnit) StreamFormatOf(scope Scope, elem Element) (format.StreamFormat, error) {
	asbd, err := GetProperty[format.ASBD](u, PropertyStreamFormat, scope, elem)
	if err != nil {
		return format.StreamFormat{}, err
	}
	return format.FromASBD(asbd)
}

// BufferFrameSize is the I/O buffer size of the unit's device in frames.
func (u *AudioUnit) BufferFrameSize() (uint32, error) {
	return GetProperty[uint32](u, PropertyBufferFrameSize, ScopeGlobal, ElementOutput)
}

// SetBufferFrameSize asks the device for an I/O buffer of frames frames.
func (u *AudioUnit) SetBufferFrameSize(frames uint32) error {
	return SetProperty(u, PropertyBufferFrameSize, ScopeGlobal, ElementOutput, &frames)
}

// MaximumFramesPerSlice is the largest frame count a single render call
// may request.
func (u *AudioUnit) MaximumFramesPerSlice() (uint32, error) {
	return GetProperty[uint32](u, PropertyMaximumFramesPerSlice, ScopeGlobal, ElementOutput)
}

// SetMaximumFramesPerSlice sets the largest frame count per render call.
func (u *AudioUnit) SetMaximumFramesPerSlice(frames uint32) error {
	return SetProperty(u, PropertyMaximumFramesPerSlice, ScopeGlobal, ElementOutput, &frames)
}

// EnableIO turns I/O on an I/O unit's element on or off. Input is enabled
// on (ScopeInput, ElementInput), output on (ScopeOutput, ElementOutput).
func (u *AudioUnit) EnableIO(scope Scope, elem Element, on bool) error {
	var v uint32
	if on {
		v = 1
	}
	return SetProperty(u, PropertyEnableIO, scope, elem, &v)
}

// SetCurrentDevice points a HAL output unit at an AudioDeviceID.
func (u *AudioUnit) SetCurrentDevice(device uint32) error {
	return SetProperty(u, PropertyCurrentDevice, ScopeGlobal, ElementOutput, &device)
}

// CurrentDevice returns the AudioDeviceID of a HAL output unit.
func (u *AudioUnit) CurrentDevice() (uint32, error) {
	return GetProperty[uint32](u, PropertyCurrentDevice, ScopeGlobal, ElementOutput)
}

// Close stops, uninitializes, frees callbacks and disposes the unit, in
// that order. Every step runs even if an earlier one fails; the failures
// are joined. Calling Close again returns nil.
func (u *AudioUnit) Close() error {
	if u == nil || u.h.closed {
		return nil
	}
	u.cleanup.Stop()
	err := u.h.teardown()
	u.render, u.input = nil, nil
	return err
}

// Dispose is Close without the error.
func (u *AudioUnit) Dispose() {
	if u == nil || u.h.closed {
		return
	}
	u.cleanup.Stop()
	u.h.dispose()
	u.render, u.input = nil, nil
}

func (u *AudioUnit) live() (*handle, error) {
	if u == nil || u.h.closed {
		return nil, ErrClosed
	}
	return u.h, nil
}

func (h *handle) dispose() {
	if err := h.teardown(); err != nil {
		h.log.Debug("audio unit teardown", zap.Error(err))
	}
}

func (h *handle) teardown() error {
	h.closed = true

	errs := []error{
		nativeCall("stop", h.backend.OutputStop(h.instance)),
		nativeCall("uninitialize", h.backend.Uninitialize(h.instance)),
	}
	if _, err := h.freeRender(); err != nil {
		errs = append(errs, fmt.Errorf("free render callback: %w", err))
	}
	if _, err := h.freeInput(); err != nil {
		errs = append(errs, fmt.Errorf("free input callback: %w", err))
	}
	errs = append(errs, nativeCall("dispose", h.backend.InstanceDispose(h.instance)))

	h.instance = 0
	h.log.Debug("audio unit disposed")
	return errors.Join(errs...)
}

func nativeCall(op string, st native.Status) error {
	if err := FromOSStatus(int32(st)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
