// SPDX-License-Identifier: EPL-2.0

//go:build !darwin

package native

// Default returns a backend with no components; Audio Units exist only on
// Apple platforms.
func Default() Backend {
	return unavailable{}
}
