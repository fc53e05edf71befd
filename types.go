// SPDX-License-Identifier: EPL-2.0

package audiounit

import "github.com/ik5/audiounit/format"

// ManufacturerApple is kAudioUnitManufacturer_Apple, the only manufacturer
// New ever asks for.
const ManufacturerApple uint32 = 0x6170706c // 'appl'

// Typer is anything that names an audio unit type. Category, Type and every
// subtype enumeration implement it.
type Typer interface {
	AudioUnitType() Type
}

// Category is the componentType of an audio unit.
type Category uint32

const (
	CategoryIO              Category = 0x61756f75 // 'auou'
	CategoryMusicDevice     Category = 0x61756d75 // 'aumu'
	CategoryMusicEffect     Category = 0x61756d66 // 'aumf'
	CategoryFormatConverter Category = 0x61756663 // 'aufc'
	CategoryEffect          Category = 0x61756678 // 'aufx'
	CategoryMixer           Category = 0x61756d78 // 'aumx'
	CategoryPanner          Category = 0x6175706e // 'aupn'
	CategoryGenerator       Category = 0x6175676e // 'augn'
	CategoryOfflineEffect   Category = 0x61756f6c // 'auol'
	CategoryMIDIProcessor   Category = 0x61756d69 // 'aumi'
)

// AudioUnitType returns the category with no subtype. New rejects it
// with ErrNoKnownSubtype.
func (c Category) AudioUnitType() Type { return Type{Category: c} }

func (c Category) String() string { return format.FourCCString(uint32(c)) }

// Type is a category plus, when one is known, a subtype.
type Type struct {
	Category Category
	subType  uint32
	ok       bool
}

func (t Type) AudioUnitType() Type { return t }

// SubType returns the componentSubType and whether the type has one.
func (t Type) SubType() (uint32, bool) { return t.subType, t.ok }

func (t Type) String() string {
	if !t.ok {
		return t.Category.String()
	}
	return t.Category.String() + "/" + format.FourCCString(t.subType)
}

func subtyped(c Category, sub uint32) Type {
	return Type{Category: c, subType: sub, ok: true}
}

// IOType enumerates the I/O units.
type IOType uint32

const (
	IOGenericOutput   IOType = 0x67656e72 // 'genr'
	IOHALOutput       IOType = 0x6168616c // 'ahal'
	IODefaultOutput   IOType = 0x64656620 // 'def '
	IOSystemOutput    IOType = 0x73797320 // 'sys '
	IOVoiceProcessing IOType = 0x7670696f // 'vpio'
	IORemoteIO        IOType = 0x72696f63 // 'rioc'
)

func (t IOType) AudioUnitType() Type { return subtyped(CategoryIO, uint32(t)) }

// MusicDeviceType enumerates the software instruments.
type MusicDeviceType uint32

const (
	MusicDeviceSampler   MusicDeviceType = 0x73616d70 // 'samp'
	MusicDeviceDLSSynth  MusicDeviceType = 0x646c7320 // 'dls '
	MusicDeviceMIDISynth MusicDeviceType = 0x6d73796e // 'msyn'
)

func (t MusicDeviceType) AudioUnitType() Type { return subtyped(CategoryMusicDevice, uint32(t)) }

// FormatConverterType enumerates the format converters.
type FormatConverterType uint32

const (
	ConverterAU            FormatConverterType = 0x636f6e76 // 'conv'
	ConverterNewTimePitch  FormatConverterType = 0x6e757470 // 'nutp'
	ConverterTimePitch     FormatConverterType = 0x746d7074 // 'tmpt'
	ConverterDeferred      FormatConverterType = 0x64656672 // 'defr'
	ConverterSplitter      FormatConverterType = 0x73706c74 // 'splt'
	ConverterMerger        FormatConverterType = 0x6d657267 // 'merg'
	ConverterVarispeed     FormatConverterType = 0x76617269 // 'vari'
	ConverterIPodTimeOther FormatConverterType = 0x6970746f // 'ipto'
	ConverterRoundTripAAC  FormatConverterType = 0x72616163 // 'raac'
)

func (t FormatConverterType) AudioUnitType() Type {
	return subtyped(CategoryFormatConverter, uint32(t))
}

// EffectType enumerates the effects.
type EffectType uint32

const (
	EffectPeakLimiter         EffectType = 0x6c6d7472 // 'lmtr'
	EffectDynamicsProcessor   EffectType = 0x64636d70 // 'dcmp'
	EffectLowPassFilter       EffectType = 0x6c706173 // 'lpas'
	EffectHighPassFilter      EffectType = 0x68706173 // 'hpas'
	EffectBandPassFilter      EffectType = 0x62706173 // 'bpas'
	EffectHighShelfFilter     EffectType = 0x68736866 // 'hshf'
	EffectLowShelfFilter      EffectType = 0x6c736866 // 'lshf'
	EffectParametricEQ        EffectType = 0x706d6571 // 'pmeq'
	EffectDistortion          EffectType = 0x64697374 // 'dist'
	EffectDelay               EffectType = 0x64656c79 // 'dely'
	EffectSampleDelay         EffectType = 0x73646c79 // 'sdly'
	EffectGraphicEQ           EffectType = 0x67726571 // 'greq'
	EffectMultiBandCompressor EffectType = 0x6d636d70 // 'mcmp'
	EffectMatrixReverb        EffectType = 0x6d726576 // 'mrev'
	EffectFilter              EffectType = 0x66696c74 // 'filt'
	EffectNetSend             EffectType = 0x6e736e64 // 'nsnd'
	EffectRogerBeep           EffectType = 0x726f6772 // 'rogr'
	EffectNBandEQ             EffectType = 0x6e626571 // 'nbeq'
)

func (t EffectType) AudioUnitType() Type { return subtyped(CategoryEffect, uint32(t)) }

// MixerType enumerates the mixers.
type MixerType uint32

const (
	MixerMultiChannel MixerType = 0x6d636d78 // 'mcmx'
	MixerStereo       MixerType = 0x736d7872 // 'smxr'
	Mixer3D           MixerType = 0x33646d78 // '3dmx'
	MixerMatrix       MixerType = 0x6d786d78 // 'mxmx'
	MixerSpatial      MixerType = 0x3364656d // '3dem'
)

func (t MixerType) AudioUnitType() Type { return subtyped(CategoryMixer, uint32(t)) }

// GeneratorType enumerates the generators.
type GeneratorType uint32

const (
	GeneratorScheduledSoundPlayer GeneratorType = 0x7373706c // 'sspl'
	GeneratorAudioFilePlayer      GeneratorType = 0x6166706c // 'afpl'
	GeneratorNetReceive           GeneratorType = 0x6e726376 // 'nrcv'
)

func (t GeneratorType) AudioUnitType() Type { return subtyped(CategoryGenerator, uint32(t)) }
