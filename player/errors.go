// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var ErrInvalidSource = errors.New("source has no channels or sample rate")
