// SPDX-License-Identifier: EPL-2.0

package audiounit

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ik5/audiounit/internal/native"
)

// GetProperty reads the property (id, scope, elem) into a value of type T.
//
// T must be a value type without Go pointers whose memory layout is exactly
// the one the unit documents for the property: float64 for SampleRate,
// format.ASBD for StreamFormat, uint32 for most counts and switches. Nothing
// checks this. A mismatched T reads garbage or makes the unit write past
// the value.
func GetProperty[T any](u *AudioUnit, id PropertyID, scope Scope, elem Element) (T, error) {
	var zero T
	h, err := u.live()
	if err != nil {
		return zero, err
	}
	defer runtime.KeepAlive(u)
	return getProperty[T](h.backend, h.instance, id, scope, elem)
}

// SetProperty writes *value to the property (id, scope, elem). A nil value
// clears the property to its default, which only works for properties that
// have one. The same layout contract as GetProperty applies to T.
func SetProperty[T any](u *AudioUnit, id PropertyID, scope Scope, elem Element, value *T) error {
	h, err := u.live()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(u)
	return setProperty(h.backend, h.instance, id, scope, elem, value)
}

// ClearProperty resets the property to its default.
func ClearProperty(u *AudioUnit, id PropertyID, scope Scope, elem Element) error {
	return SetProperty[struct{}](u, id, scope, elem, nil)
}

// PropertyInfo reports the size in bytes of the property's value and
// whether it can be written.
func PropertyInfo(u *AudioUnit, id PropertyID, scope Scope, elem Element) (size uint32, writable bool, err error) {
	h, err := u.live()
	if err != nil {
		return 0, false, err
	}
	defer runtime.KeepAlive(u)

	st := h.backend.GetPropertyInfo(h.instance, uint32(id), uint32(scope), uint32(elem), &size, &writable)
	if err := FromOSStatus(int32(st)); err != nil {
		return 0, false, propertyError("info", id, scope, elem, err)
	}
	return size, writable, nil
}

func getProperty[T any](b native.Backend, inst native.Instance, id PropertyID, scope Scope, elem Element) (T, error) {
	var v T
	size := uint32(unsafe.Sizeof(v))

	st := b.GetProperty(inst, uint32(id), uint32(scope), uint32(elem), unsafe.Pointer(&v), &size)
	if err := FromOSStatus(int32(st)); err != nil {
		var zero T
		return zero, propertyError("get", id, scope, elem, err)
	}
	return v, nil
}

func setProperty[T any](b native.Backend, inst native.Instance, id PropertyID, scope Scope, elem Element, value *T) error {
	var (
		data unsafe.Pointer
		size uint32
	)
	if value != nil {
		data = unsafe.Pointer(value)
		size = uint32(unsafe.Sizeof(*value))
	}

	st := b.SetProperty(inst, uint32(id), uint32(scope), uint32(elem), data, size)
	if err := FromOSStatus(int32(st)); err != nil {
		return propertyError("set", id, scope, elem, err)
	}
	return nil
}

func propertyError(op string, id PropertyID, scope Scope, elem Element, err error) error {
	return fmt.Errorf("%s %s (%s scope, %s element): %w", op, id, scope, elem, err)
}
