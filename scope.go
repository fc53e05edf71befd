// SPDX-License-Identifier: EPL-2.0

package audiounit

import "strconv"

// Scope selects the logical part of a unit a property applies to.
type Scope uint32

const (
	ScopeGlobal Scope = iota
	ScopeInput
	ScopeOutput
	ScopeGroup
	ScopePart
	ScopeNote
	ScopeLayer
	ScopeLayerItem
)

var scopeNames = [...]string{"global", "input", "output", "group", "part", "note", "layer", "layer item"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "scope(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// Element selects a bus within a scope. On I/O units bus 0 faces the
// output hardware and bus 1 the input hardware.
type Element uint32

const (
	ElementOutput Element = 0
	ElementInput  Element = 1
)

func (e Element) String() string {
	switch e {
	case ElementOutput:
		return "output"
	case ElementInput:
		return "input"
	}
	return "element(" + strconv.FormatUint(uint64(e), 10) + ")"
}
