// SPDX-License-Identifier: EPL-2.0

//go:build darwin

package native

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

const audioToolboxPath = "/System/Library/Frameworks/AudioToolbox.framework/AudioToolbox"

var (
	loadOnce sync.Once
	loaded   Backend

	callbackOnce sync.Once
	callbackPtr  uintptr
)

var (
	audioComponentFindNext        func(inComponent Component, inDesc *ComponentDescription) Component
	audioComponentInstanceNew     func(inComponent Component, outInstance *Instance) Status
	audioComponentInstanceDispose func(inInstance Instance) Status
	audioUnitInitialize           func(inUnit Instance) Status
	audioUnitUninitialize         func(inUnit Instance) Status
	audioOutputUnitStart          func(ci Instance) Status
	audioOutputUnitStop           func(ci Instance) Status
	audioUnitGetPropertyInfo      func(inUnit Instance, inID, inScope, inElement uint32, outDataSize *uint32, outWritable *uint8) Status
	audioUnitGetProperty          func(inUnit Instance, inID, inScope, inElement uint32, outData unsafe.Pointer, ioDataSize *uint32) Status
	audioUnitSetProperty          func(inUnit Instance, inID, inScope, inElement uint32, inData unsafe.Pointer, inDataSize uint32) Status
	audioUnitRender               func(inUnit Instance, ioActionFlags *uint32, inTimeStamp *AudioTimeStamp, inOutputBusNumber, inNumberFrames uint32, ioData *AudioBufferList) Status
)

// Default returns the AudioToolbox backend. When the framework cannot be
// loaded the returned backend finds no components.
func Default() Backend {
	loadOnce.Do(func() {
		lib, err := purego.Dlopen(audioToolboxPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loaded = unavailable{}
			return
		}

		purego.RegisterLibFunc(&audioComponentFindNext, lib, "AudioComponentFindNext")
		purego.RegisterLibFunc(&audioComponentInstanceNew, lib, "AudioComponentInstanceNew")
		purego.RegisterLibFunc(&audioComponentInstanceDispose, lib, "AudioComponentInstanceDispose")
		purego.RegisterLibFunc(&audioUnitInitialize, lib, "AudioUnitInitialize")
		purego.RegisterLibFunc(&audioUnitUninitialize, lib, "AudioUnitUninitialize")
		purego.RegisterLibFunc(&audioOutputUnitStart, lib, "AudioOutputUnitStart")
		purego.RegisterLibFunc(&audioOutputUnitStop, lib, "AudioOutputUnitStop")
		purego.RegisterLibFunc(&audioUnitGetPropertyInfo, lib, "AudioUnitGetPropertyInfo")
		purego.RegisterLibFunc(&audioUnitGetProperty, lib, "AudioUnitGetProperty")
		purego.RegisterLibFunc(&audioUnitSetProperty, lib, "AudioUnitSetProperty")
		purego.RegisterLibFunc(&audioUnitRender, lib, "AudioUnitRender")

		loaded = toolbox{}
	})
	return loaded
}

type toolbox struct{}

func (toolbox) FindNext(prev Component, desc *ComponentDescription) Component {
	return audioComponentFindNext(prev, desc)
}

func (toolbox) InstanceNew(c Component, out *Instance) Status {
	return audioComponentInstanceNew(c, out)
}

func (toolbox) InstanceDispose(inst Instance) Status {
	return audioComponentInstanceDispose(inst)
}

func (toolbox) Initialize(inst Instance) Status   { return audioUnitInitialize(inst) }
func (toolbox) Uninitialize(inst Instance) Status { return audioUnitUninitialize(inst) }
func (toolbox) OutputStart(inst Instance) Status  { return audioOutputUnitStart(inst) }
func (toolbox) OutputStop(inst Instance) Status   { return audioOutputUnitStop(inst) }

func (toolbox) GetPropertyInfo(inst Instance, id, scope, elem uint32, size *uint32, writable *bool) Status {
	var w uint8
	st := audioUnitGetPropertyInfo(inst, id, scope, elem, size, &w)
	if writable != nil {
		*writable = w != 0
	}
	return st
}

func (toolbox) GetProperty(inst Instance, id, scope, elem uint32, data unsafe.Pointer, size *uint32) Status {
	return audioUnitGetProperty(inst, id, scope, elem, data, size)
}

func (toolbox) SetProperty(inst Instance, id, scope, elem uint32, data unsafe.Pointer, size uint32) Status {
	return audioUnitSetProperty(inst, id, scope, elem, data, size)
}

func (toolbox) Render(inst Instance, flags *uint32, ts *AudioTimeStamp, bus, frames uint32, data *AudioBufferList) Status {
	return audioUnitRender(inst, flags, ts, bus, frames, data)
}

// Callback wraps proc with purego.NewCallback. purego callbacks are never
// released, so only the first proc is ever bound.
func (toolbox) Callback(proc RenderProc) uintptr {
	callbackOnce.Do(func() {
		callbackPtr = purego.NewCallback(func(refCon uintptr, flags *uint32, ts *AudioTimeStamp, bus, frames uint32, data *AudioBufferList) int32 {
			return int32(proc(refCon, flags, ts, bus, frames, data))
		})
	})
	return callbackPtr
}
