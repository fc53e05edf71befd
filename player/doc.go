// SPDX-License-Identifier: EPL-2.0

// Package player plays an audio.Source through an output audio unit.
//
//	p, err := player.New(src, player.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	return p.Wait(ctx)
//
// The render callback reads straight from the source into the unit's
// buffer, so the source must be fast and must not block for long: decode
// ahead or put an audio.Capture in between when it might.
package player
