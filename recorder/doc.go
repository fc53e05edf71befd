// SPDX-License-Identifier: EPL-2.0

// Package recorder captures audio input to WAV through a HAL output unit.
//
//	r, err := recorder.New(recorder.WithMono(), recorder.WithRate(16000))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
//	defer cancel()
//	frames, err := r.Record(ctx, f)
//
// The input callback only copies samples into a ring buffer. Mixing,
// resampling and encoding happen on the goroutine that calls Record, so a
// slow disk shows up as Dropped samples rather than audio thread stalls.
package recorder
