// SPDX-License-Identifier: EPL-2.0

package native

import "unsafe"

// StatusUnimplemented is kAudio_UnimplementedError.
const StatusUnimplemented Status = -4

// unavailable stands in for AudioToolbox where it does not exist.
// Discovery never matches, so nothing past FindNext is reachable through
// the public API.
type unavailable struct{}

func (unavailable) FindNext(Component, *ComponentDescription) Component { return 0 }
func (unavailable) InstanceNew(Component, *Instance) Status              { return StatusUnimplemented }
func (unavailable) InstanceDispose(Instance) Status                      { return StatusUnimplemented }
func (unavailable) Initialize(Instance) Status                           { return StatusUnimplemented }
func (unavailable) Uninitialize(Instance) Status                         { return StatusUnimplemented }
func (unavailable) OutputStart(Instance) Status                          { return StatusUnimplemented }
func (unavailable) OutputStop(Instance) Status                           { return StatusUnimplemented }

func (unavailable) GetPropertyInfo(Instance, uint32, uint32, uint32, *uint32, *bool) Status {
	return StatusUnimplemented
}

func (unavailable) GetProperty(Instance, uint32, uint32, uint32, unsafe.Pointer, *uint32) Status {
	return StatusUnimplemented
}

func (unavailable) SetProperty(Instance, uint32, uint32, uint32, unsafe.Pointer, uint32) Status {
	return StatusUnimplemented
}

func (unavailable) Render(Instance, *uint32, *AudioTimeStamp, uint32, uint32, *AudioBufferList) Status {
	return StatusUnimplemented
}

func (unavailable) Callback(RenderProc) uintptr { return 0 }
