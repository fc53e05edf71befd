// SPDX-License-Identifier: EPL-2.0

package format

import "errors"

var (
	// ErrUnsupportedStreamFormat indicates a descriptor outside the set of
	// linear PCM layouts StreamFormat can represent.
	ErrUnsupportedStreamFormat = errors.New("unsupported stream format")
)
