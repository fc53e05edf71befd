// SPDX-License-Identifier: EPL-2.0

package recorder

import "errors"

var ErrAlreadyRecorded = errors.New("recorder already used")
