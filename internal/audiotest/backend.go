// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"slices"
	"sync"
	"unsafe"

	"github.com/ik5/audiounit/format"
	"github.com/ik5/audiounit/internal/native"
)

// Status codes the simulator returns. They match AudioToolbox.
const (
	StatusParam                    native.Status = -50
	StatusInvalidProperty          native.Status = -10879
	StatusNoConnection             native.Status = -10876
	StatusFailedInitialization     native.Status = -10875
	StatusUninitialized            native.Status = -10867
	StatusPropertyNotWritable      native.Status = -10865
	StatusInvalidPropertyValue     native.Status = -10851
	StatusComponentInstanceInvalid native.Status = -66749
)

// Property ids the simulator gives defaults to.
const (
	propSampleRate            = 2
	propStreamFormat          = 8
	propElementCount          = 11
	propLatency               = 12
	propMaximumFramesPerSlice = 14
	propSetRenderCallback     = 23
	propCurrentDevice         = 2000
	propEnableIO              = 2003
	propSetInputCallback      = 2005
	propBufferFrameSize       = 0x6673697a
)

const (
	scopeGlobal = 0
	scopeInput  = 1
	scopeOutput = 2
)

// DefaultFormat is the stream format every element starts with.
var DefaultFormat = format.New(44100, format.F32, 2, false)

// Defaults for the other simulated properties.
const (
	DefaultBufferFrameSize       uint32 = 512
	DefaultMaximumFramesPerSlice uint32 = 1156
	DefaultDevice                uint32 = 41
)

// Component is a unit type the simulator can find and instantiate.
type Component struct {
	Desc native.ComponentDescription
	// InitStatus is what Initialize returns for instances of the component.
	InitStatus native.Status
}

type propKey struct {
	id, scope, elem uint32
}

// Unit is one simulated instance.
type Unit struct {
	instance native.Instance
	desc     native.ComponentDescription

	initialized bool
	running     bool
	disposed    bool
	renders     int
	sampleTime  uint64

	props    map[propKey][]byte
	defaults map[propKey][]byte

	input func(buffer int, data []byte)
}

// Backend simulates the AudioToolbox calls an audio unit host makes. It
// keeps a property table per instance, records every call and lets tests
// drive render cycles the way the audio thread would.
type Backend struct {
	mu sync.Mutex

	components   []Component
	units        map[native.Instance]*Unit
	order        []*Unit
	nextInstance native.Instance

	procs    map[uintptr]native.RenderProc
	nextProc uintptr

	calls    []string
	failures map[string]native.Status
}

// New returns a simulator holding the Apple I/O units and one unit of each
// other category that has subtypes.
func New() *Backend {
	b := &Backend{
		units:        make(map[native.Instance]*Unit),
		nextInstance: 0x1000,
		procs:        make(map[uintptr]native.RenderProc),
		nextProc:     0xc0de0000,
		failures:     make(map[string]native.Status),
	}

	for _, c := range [][2]string{
		{"auou", "genr"}, {"auou", "ahal"}, {"auou", "def "}, {"auou", "sys "}, {"auou", "vpio"},
		{"aumu", "dls "}, {"aufc", "conv"}, {"aufx", "lpas"}, {"aumx", "mcmx"}, {"augn", "afpl"},
	} {
		b.AddComponent(Component{Desc: Apple(c[0], c[1])})
	}
	return b
}

// Apple describes an Apple component by its type and subtype codes.
func Apple(typ, subType string) native.ComponentDescription {
	return native.ComponentDescription{
		Type:         format.FourCC(typ),
		SubType:      format.FourCC(subType),
		Manufacturer: format.FourCC("appl"),
	}
}

// AddComponent makes c discoverable.
func (b *Backend) AddComponent(c Component) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.components = append(b.components, c)
}

// Fail makes every later call named call return st, until Fail is called
// again with a zero status.
func (b *Backend) Fail(call string, st native.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st == 0 {
		delete(b.failures, call)
		return
	}
	b.failures[call] = st
}

// Calls returns the names of the calls made so far, in order.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.calls)
}

// Count returns how many times call was made.
func (b *Backend) Count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

// Units returns every instance created so far, disposed ones included.
func (b *Backend) Units() []*Unit {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.order)
}

// Last returns the most recently created instance, or nil.
func (b *Backend) Last() *Unit {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.order) == 0 {
		return nil
	}
	return b.order[len(b.order)-1]
}

// Instance is the native handle of u.
func (u *Unit) Instance() native.Instance { return u.instance }

// Description is the component u was created from.
func (u *Unit) Description() native.ComponentDescription { return u.desc }

// Initialized reports whether u is initialized.
func (b *Backend) Initialized(u *Unit) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return u.initialized
}

// Running reports whether u was started and not stopped.
func (b *Backend) Running(u *Unit) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return u.running
}

// Disposed reports whether u was disposed.
func (b *Backend) Disposed(u *Unit) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return u.disposed
}

// Renders counts AudioUnitRender calls on u that succeeded.
func (b *Backend) Renders(u *Unit) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return u.renders
}

// SetInput installs the generator Render uses to fill input buffers. It is
// called once per buffer; buffers it leaves alone stay zeroed.
func (b *Backend) SetInput(u *Unit, fill func(buffer int, data []byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u.input = fill
}

// Property returns a copy of the raw value stored at (id, scope, elem).
func (b *Backend) Property(u *Unit, id, scope, elem uint32) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := u.props[propKey{id, scope, elem}]
	return slices.Clone(v), ok
}

func (b *Backend) record(call string) native.Status {
	b.calls = append(b.calls, call)
	return b.failures[call]
}

func (b *Backend) unit(inst native.Instance) (*Unit, bool) {
	u, ok := b.units[inst]
	if !ok || u.disposed {
		return nil, false
	}
	return u, true
}

func (b *Backend) FindNext(prev native.Component, desc *native.ComponentDescription) native.Component {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("FindNext")
	for i := int(prev); i < len(b.components); i++ {
		if matches(b.components[i].Desc, desc) {
			return native.Component(i + 1)
		}
	}
	return 0
}

// matches applies AudioComponentFindNext's rules: zero fields in the query
// are wildcards, and flags are compared under the query's mask.
func matches(c native.ComponentDescription, q *native.ComponentDescription) bool {
	if q.Type != 0 && q.Type != c.Type {
		return false
	}
	if q.SubType != 0 && q.SubType != c.SubType {
		return false
	}
	if q.Manufacturer != 0 && q.Manufacturer != c.Manufacturer {
		return false
	}
	return c.Flags&q.FlagsMask == q.Flags&q.FlagsMask
}

func (b *Backend) InstanceNew(c native.Component, out *native.Instance) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record("InstanceNew"); st != 0 {
		return st
	}
	if c == 0 || int(c) > len(b.components) {
		return StatusParam
	}

	b.nextInstance += 0x10
	u := &Unit{
		instance: b.nextInstance,
		desc:     b.components[c-1].Desc,
		defaults: defaultProperties(),
	}
	u.props = make(map[propKey][]byte, len(u.defaults))
	for k, v := range u.defaults {
		u.props[k] = slices.Clone(v)
	}

	b.units[u.instance] = u
	b.order = append(b.order, u)
	*out = u.instance
	return 0
}

func (b *Backend) InstanceDispose(inst native.Instance) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record("InstanceDispose"); st != 0 {
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		return StatusComponentInstanceInvalid
	}
	u.disposed = true
	u.running = false
	u.initialized = false
	return 0
}

func (b *Backend) Initialize(inst native.Instance) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record("Initialize"); st != 0 {
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		return StatusComponentInstanceInvalid
	}
	for _, c := range b.components {
		if c.Desc == u.desc && c.InitStatus != 0 {
			return c.InitStatus
		}
	}
	u.initialized = true
	return 0
}

func (b *Backend) Uninitialize(inst native.Instance) native.Status {
	return b.transition(inst, "Uninitialize", func(u *Unit) { u.initialized = false })
}

func (b *Backend) OutputStart(inst native.Instance) native.Status {
	return b.transition(inst, "OutputStart", func(u *Unit) { u.running = true })
}

func (b *Backend) OutputStop(inst native.Instance) native.Status {
	return b.transition(inst, "OutputStop", func(u *Unit) { u.running = false })
}

func (b *Backend) transition(inst native.Instance, call string, apply func(*Unit)) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record(call); st != 0 {
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		return StatusComponentInstanceInvalid
	}
	apply(u)
	return 0
}

func (b *Backend) GetPropertyInfo(inst native.Instance, id, scope, elem uint32, size *uint32, writable *bool) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record("GetPropertyInfo"); st != 0 {
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		return StatusComponentInstanceInvalid
	}
	v, ok := u.props[propKey{id, scope, elem}]
	if !ok {
		return StatusInvalidProperty
	}
	if size != nil {
		*size = uint32(len(v))
	}
	if writable != nil {
		*writable = !readOnly(id)
	}
	return 0
}

func (b *Backend) GetProperty(inst native.Instance, id, scope, elem uint32, data unsafe.Pointer, size *uint32) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record("GetProperty"); st != 0 {
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		return StatusComponentInstanceInvalid
	}
	v, ok := u.props[propKey{id, scope, elem}]
	if !ok {
		return StatusInvalidProperty
	}
	if size == nil || *size < uint32(len(v)) || (len(v) > 0 && data == nil) {
		return StatusParam
	}
	copy(unsafe.Slice((*byte)(data), len(v)), v)
	*size = uint32(len(v))
	return 0
}

func (b *Backend) SetProperty(inst native.Instance, id, scope, elem uint32, data unsafe.Pointer, size uint32) native.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st := b.record("SetProperty"); st != 0 {
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		return StatusComponentInstanceInvalid
	}
	if readOnly(id) {
		return StatusPropertyNotWritable
	}

	k := propKey{id, scope, elem}
	if data == nil {
		def, ok := u.defaults[k]
		if !ok {
			return StatusInvalidPropertyValue
		}
		u.set(k, slices.Clone(def))
		return 0
	}

	if old, ok := u.props[k]; ok && len(old) != int(size) {
		return StatusInvalidPropertyValue
	}
	u.set(k, slices.Clone(unsafe.Slice((*byte)(data), size)))
	return 0
}

// set stores v and keeps the sample rate and stream format of an element
// in agreement.
func (u *Unit) set(k propKey, v []byte) {
	u.props[k] = v

	switch k.id {
	case propSampleRate:
		sf := propKey{propStreamFormat, k.scope, k.elem}
		if asbd, ok := u.props[sf]; ok {
			copy(asbd[:8], v)
		}
	case propStreamFormat:
		sr := propKey{propSampleRate, k.scope, k.elem}
		if _, ok := u.props[sr]; ok {
			u.props[sr] = slices.Clone(v[:8])
		}
	}
}

func readOnly(id uint32) bool {
	return id == propElementCount || id == propLatency
}

func (b *Backend) Render(inst native.Instance, flags *uint32, ts *native.AudioTimeStamp, bus, frames uint32, data *native.AudioBufferList) native.Status {
	b.mu.Lock()

	if st := b.record("Render"); st != 0 {
		b.mu.Unlock()
		return st
	}
	u, ok := b.unit(inst)
	if !ok {
		b.mu.Unlock()
		return StatusComponentInstanceInvalid
	}
	if !u.initialized {
		b.mu.Unlock()
		return StatusUninitialized
	}
	f, ok := u.format(scopeOutput, bus)
	if !ok || data == nil || int(data.NumberBuffers) != f.Buffers() {
		b.mu.Unlock()
		return StatusParam
	}
	bufs := data.Slice()
	for _, buf := range bufs {
		if buf.Data == nil || buf.DataByteSize != frames*f.BytesPerFrame() {
			b.mu.Unlock()
			return StatusParam
		}
	}
	u.renders++
	fill := u.input
	b.mu.Unlock()

	if fill != nil {
		for i, buf := range bufs {
			fill(i, unsafe.Slice((*byte)(buf.Data), buf.DataByteSize))
		}
	}
	return 0
}

func (u *Unit) format(scope, elem uint32) (format.StreamFormat, bool) {
	v, ok := u.props[propKey{propStreamFormat, scope, elem}]
	if !ok || len(v) != int(unsafe.Sizeof(format.ASBD{})) {
		return format.StreamFormat{}, false
	}
	var asbd format.ASBD
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&asbd)), len(v)), v)
	f, err := format.FromASBD(asbd)
	return f, err == nil
}

func (b *Backend) Callback(proc native.RenderProc) uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextProc += 0x10
	b.procs[b.nextProc] = proc
	return b.nextProc
}

func defaultProperties() map[propKey][]byte {
	props := make(map[propKey][]byte)

	asbd := DefaultFormat.ASBD()
	for _, scope := range []uint32{scopeInput, scopeOutput} {
		for _, elem := range []uint32{0, 1} {
			props[propKey{propStreamFormat, scope, elem}] = bytesOf(asbd)
			props[propKey{propSampleRate, scope, elem}] = bytesOf(asbd.SampleRate)
		}
		props[propKey{propElementCount, scope, 0}] = bytesOf(uint32(1))
	}

	props[propKey{propBufferFrameSize, scopeGlobal, 0}] = bytesOf(DefaultBufferFrameSize)
	props[propKey{propMaximumFramesPerSlice, scopeGlobal, 0}] = bytesOf(DefaultMaximumFramesPerSlice)
	props[propKey{propCurrentDevice, scopeGlobal, 0}] = bytesOf(DefaultDevice)
	props[propKey{propLatency, scopeGlobal, 0}] = bytesOf(float64(0))
	props[propKey{propEnableIO, scopeInput, 1}] = bytesOf(uint32(0))
	props[propKey{propEnableIO, scopeOutput, 0}] = bytesOf(uint32(1))
	return props
}

func bytesOf[T any](v T) []byte {
	return slices.Clone(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)))
}
