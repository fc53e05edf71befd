// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"errors"
	"fmt"

	"github.com/ik5/audiounit/format"
)

var (
	// ErrNoKnownSubtype indicates the requested Type has no native subtype.
	ErrNoKnownSubtype = errors.New("no known subtype for audio unit type")

	// ErrNoMatchingDefaultAudioUnitFound indicates component discovery failed.
	ErrNoMatchingDefaultAudioUnitFound = errors.New("no matching default audio unit found")

	// ErrUnsupportedStreamFormat indicates a stream descriptor the format
	// model cannot represent.
	ErrUnsupportedStreamFormat = format.ErrUnsupportedStreamFormat

	// ErrClosed is returned by every operation on a disposed unit.
	ErrClosed = errors.New("audio unit is closed")
)

// Well-known OSStatus values returned by AudioToolbox.
const (
	StatusUnimplemented              int32 = -4
	StatusFileNotFound               int32 = -43
	StatusParam                      int32 = -50
	StatusMemFull                    int32 = -108
	StatusUnspecified                int32 = -1500
	StatusInvalidProperty            int32 = -10879
	StatusInvalidParameter           int32 = -10878
	StatusInvalidElement             int32 = -10877
	StatusNoConnection               int32 = -10876
	StatusFailedInitialization       int32 = -10875
	StatusTooManyFramesToProcess     int32 = -10874
	StatusInvalidFile                int32 = -10871
	StatusUnknownFileType            int32 = -10870
	StatusFileNotSpecified           int32 = -10869
	StatusFormatNotSupported         int32 = -10868
	StatusUninitialized              int32 = -10867
	StatusInvalidScope               int32 = -10866
	StatusPropertyNotWritable        int32 = -10865
	StatusCannotDoInCurrentContext   int32 = -10863
	StatusInvalidPropertyValue       int32 = -10851
	StatusPropertyNotInUse           int32 = -10850
	StatusInitialized                int32 = -10849
	StatusInvalidOfflineRender       int32 = -10848
	StatusUnauthorized               int32 = -10847
	StatusComponentInstanceInvalid   int32 = -66749
	StatusComponentDuplicateRegister int32 = -66752
)

var statusNames = map[int32]string{
	StatusUnimplemented:              "kAudio_UnimplementedError",
	StatusFileNotFound:               "kAudio_FileNotFoundError",
	StatusParam:                      "kAudio_ParamError",
	StatusMemFull:                    "kAudio_MemFullError",
	StatusUnspecified:                "unspecified",
	StatusInvalidProperty:            "kAudioUnitErr_InvalidProperty",
	StatusInvalidParameter:           "kAudioUnitErr_InvalidParameter",
	StatusInvalidElement:             "kAudioUnitErr_InvalidElement",
	StatusNoConnection:               "kAudioUnitErr_NoConnection",
	StatusFailedInitialization:       "kAudioUnitErr_FailedInitialization",
	StatusTooManyFramesToProcess:     "kAudioUnitErr_TooManyFramesToProcess",
	StatusInvalidFile:                "kAudioUnitErr_InvalidFile",
	StatusUnknownFileType:            "kAudioUnitErr_UnknownFileType",
	StatusFileNotSpecified:           "kAudioUnitErr_FileNotSpecified",
	StatusFormatNotSupported:         "kAudioUnitErr_FormatNotSupported",
	StatusUninitialized:              "kAudioUnitErr_Uninitialized",
	StatusInvalidScope:               "kAudioUnitErr_InvalidScope",
	StatusPropertyNotWritable:        "kAudioUnitErr_PropertyNotWritable",
	StatusCannotDoInCurrentContext:   "kAudioUnitErr_CannotDoInCurrentContext",
	StatusInvalidPropertyValue:       "kAudioUnitErr_InvalidPropertyValue",
	StatusPropertyNotInUse:           "kAudioUnitErr_PropertyNotInUse",
	StatusInitialized:                "kAudioUnitErr_Initialized",
	StatusInvalidOfflineRender:       "kAudioUnitErr_InvalidOfflineRender",
	StatusUnauthorized:               "kAudioUnitErr_Unauthorized",
	StatusComponentInstanceInvalid:   "kAudioComponentErr_InstanceInvalidated",
	StatusComponentDuplicateRegister: "kAudioComponentErr_DuplicateDescription",
}

// StatusError carries a non-zero OSStatus returned by the native layer.
type StatusError struct {
	Code int32
}

func (e *StatusError) Error() string {
	if name, ok := statusNames[e.Code]; ok {
		return fmt.Sprintf("audio unit: %s (%d)", name, e.Code)
	}
	if format.IsFourCC(uint32(e.Code)) {
		return fmt.Sprintf("audio unit: status '%s' (%d)", format.FourCCString(uint32(e.Code)), e.Code)
	}
	return fmt.Sprintf("audio unit: status %d", e.Code)
}

// Is matches any *StatusError with the same code.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Code == e.Code
}

// FromOSStatus maps a native status to nil or a *StatusError.
func FromOSStatus(status int32) error {
	if status == 0 {
		return nil
	}
	return &StatusError{Code: status}
}

// osStatus converts an error returned from a render closure back into a
// status for the native caller.
func osStatus(err error) int32 {
	if err == nil {
		return 0
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return StatusUnspecified
}
