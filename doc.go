// SPDX-License-Identifier: EPL-2.0

// Package audiounit is a safe wrapper over the AudioToolbox Audio Unit API
// on macOS.
//
// An AudioUnit is opened from a Typer, which is any of the typed subtype
// enums (IOType, EffectType, MixerType and so on) or a bare Category:
//
//	u, err := audiounit.New(audiounit.IODefaultOutput)
//	if err != nil {
//		return err
//	}
//	defer u.Close()
//
// New discovers the first matching Apple component, instantiates it and
// initializes it. Close stops the unit, uninitializes it, releases any
// installed callbacks and disposes the instance, in that order. A unit
// that is never closed is torn down when it becomes unreachable.
//
// # Stream formats
//
// Stream formats are described by format.StreamFormat, which only models
// packed, native-endian linear PCM. The sample type carried by a format
// must match the type parameter of the callback installed on the same
// scope.
//
// # Properties
//
// Any property may be read or written with GetProperty and SetProperty.
// The value type fixes the number of bytes exchanged with the unit:
//
//	frames, err := audiounit.GetProperty[uint32](u,
//		audiounit.PropertyMaximumFramesPerSlice, audiounit.ScopeGlobal, 0)
//
// The common properties have methods on AudioUnit.
//
// # Callbacks
//
// SetRenderCallback installs a function that fills output buffers each
// render cycle. SetInputCallback installs one that receives the captured
// input of an I/O unit. Both are generic over the sample type:
//
//	err := audiounit.SetRenderCallback(u, func(args *audiounit.RenderArgs[float32]) error {
//		for _, buf := range args.Data {
//			clear(buf)
//		}
//		*args.Flags |= audiounit.ActionOutputIsSilence
//		return nil
//	})
//
// Callbacks run on the realtime audio thread. They must not block,
// allocate heavily or take locks shared with slow code. A non-nil error
// is reported to the host as an OSStatus; a *StatusError keeps its code.
//
// # Errors
//
// Native failures are returned as *StatusError, which matches
// errors.Is against another *StatusError with the same code. Operations
// on a closed unit return ErrClosed.
//
// # Higher level packages
//
// The audio package holds sources and filters; formats decodes WAV, AIFF,
// MP3 and Ogg Vorbis into sources. player and recorder drive an output or
// input unit from those sources, and cmd/auplay exposes them on the
// command line.
package audiounit
