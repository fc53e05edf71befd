// SPDX-License-Identifier: EPL-2.0

// Package native is the foreign boundary of the module: the AudioToolbox
// calls an audio unit host needs, the binary layouts they exchange, and a
// Backend interface so the rest of the module never touches the framework
// directly.
//
// On darwin the default backend binds AudioToolbox at runtime through
// purego. Everywhere else Default returns a backend on which discovery
// finds nothing.
package native

import "unsafe"

// Status is an OSStatus. Zero means success.
type Status int32

// Component is an opaque AudioComponent reference. Zero means none.
type Component uintptr

// Instance is an opaque AudioComponentInstance (AudioUnit). Zero means none.
type Instance uintptr

// ComponentDescription mirrors AudioComponentDescription.
type ComponentDescription struct {
	Type         uint32
	SubType      uint32
	Manufacturer uint32
	Flags        uint32
	FlagsMask    uint32
}

// SMPTETime mirrors the SMPTETime struct embedded in AudioTimeStamp.
type SMPTETime struct {
	Subframes       int16
	SubframeDivisor int16
	Counter         uint32
	Type            uint32
	Flags           uint32
	Hours           int16
	Minutes         int16
	Seconds         int16
	Frames          int16
}

// AudioTimeStamp mirrors AudioTimeStamp (64 bytes).
type AudioTimeStamp struct {
	SampleTime    float64
	HostTime      uint64
	RateScalar    float64
	WordClockTime uint64
	SMPTETime     SMPTETime
	Flags         uint32
	Reserved      uint32
}

// AudioBuffer mirrors AudioBuffer.
type AudioBuffer struct {
	NumberChannels uint32
	DataByteSize   uint32
	Data           unsafe.Pointer
}

// AudioBufferList mirrors AudioBufferList. Buffers is variable length on
// the native side; use Slice to reach all of them.
type AudioBufferList struct {
	NumberBuffers uint32
	Buffers       [1]AudioBuffer
}

// Slice returns the list's buffers.
func (l *AudioBufferList) Slice() []AudioBuffer {
	if l == nil || l.NumberBuffers == 0 {
		return nil
	}
	return unsafe.Slice(&l.Buffers[0], l.NumberBuffers)
}

// NewBufferList allocates an AudioBufferList able to hold n buffers.
//
// The list lives in memory the garbage collector does not scan, so any
// Data pointer stored in it must be kept reachable (and pinned, when the
// list is handed to native code) by the caller.
func NewBufferList(n int) *AudioBufferList {
	if n < 1 {
		n = 1
	}
	// 8 bytes of header (count + padding) followed by n 16-byte buffers.
	words := make([]uint64, 1+2*n)
	l := (*AudioBufferList)(unsafe.Pointer(&words[0]))
	l.NumberBuffers = uint32(n)
	return l
}

// RenderCallbackStruct mirrors AURenderCallbackStruct. RefCon carries an
// integer handle, never a Go pointer.
type RenderCallbackStruct struct {
	Proc   uintptr
	RefCon uintptr
}

// RenderProc is the Go shape of AURenderCallback.
type RenderProc func(refCon uintptr, flags *uint32, ts *AudioTimeStamp, bus, frames uint32, data *AudioBufferList) Status

// Backend is the set of AudioToolbox entry points the module uses.
// Implementations must be safe to call from the audio thread for Render.
type Backend interface {
	// FindNext returns the component after prev matching desc, or zero.
	FindNext(prev Component, desc *ComponentDescription) Component
	InstanceNew(c Component, out *Instance) Status
	InstanceDispose(inst Instance) Status

	Initialize(inst Instance) Status
	Uninitialize(inst Instance) Status
	OutputStart(inst Instance) Status
	OutputStop(inst Instance) Status

	GetPropertyInfo(inst Instance, id, scope, elem uint32, size *uint32, writable *bool) Status
	GetProperty(inst Instance, id, scope, elem uint32, data unsafe.Pointer, size *uint32) Status
	SetProperty(inst Instance, id, scope, elem uint32, data unsafe.Pointer, size uint32) Status

	Render(inst Instance, flags *uint32, ts *AudioTimeStamp, bus, frames uint32, data *AudioBufferList) Status

	// Callback returns a native function pointer that calls proc. Callers
	// pass the same proc for the lifetime of the process.
	Callback(proc RenderProc) uintptr
}
