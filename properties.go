// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"strconv"

	"github.com/ik5/audiounit/format"
)

// PropertyID identifies an audio unit property. The set is open: any
// value the native unit understands can be used with GetProperty and
// SetProperty.
type PropertyID uint32

// Properties the façade uses, with the value type each expects.
const (
	PropertySampleRate            PropertyID = 2          // float64
	PropertyStreamFormat          PropertyID = 8          // format.ASBD
	PropertyElementCount          PropertyID = 11         // uint32
	PropertyLatency               PropertyID = 12         // float64, seconds
	PropertyMaximumFramesPerSlice PropertyID = 14         // uint32
	PropertySetRenderCallback     PropertyID = 23         // native.RenderCallbackStruct
	PropertyShouldAllocateBuffer  PropertyID = 51         // uint32
	PropertyCurrentDevice         PropertyID = 2000       // uint32 (AudioDeviceID)
	PropertyEnableIO              PropertyID = 2003       // uint32
	PropertySetInputCallback      PropertyID = 2005       // native.RenderCallbackStruct
	PropertyBufferFrameSize       PropertyID = 0x6673697a // 'fsiz', uint32
)

var propertyNames = map[PropertyID]string{
	PropertySampleRate:            "SampleRate",
	PropertyStreamFormat:          "StreamFormat",
	PropertyElementCount:          "ElementCount",
	PropertyLatency:               "Latency",
	PropertyMaximumFramesPerSlice: "MaximumFramesPerSlice",
	PropertySetRenderCallback:     "SetRenderCallback",
	PropertyShouldAllocateBuffer:  "ShouldAllocateBuffer",
	PropertyCurrentDevice:         "CurrentDevice",
	PropertyEnableIO:              "EnableIO",
	PropertySetInputCallback:      "SetInputCallback",
	PropertyBufferFrameSize:       "BufferFrameSize",
}

func (id PropertyID) String() string {
	if name, ok := propertyNames[id]; ok {
		return name
	}
	if format.IsFourCC(uint32(id)) {
		return "'" + format.FourCCString(uint32(id)) + "'"
	}
	return "property(" + strconv.FormatUint(uint64(id), 10) + ")"
}
