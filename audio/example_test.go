// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiounit/audio"
)

func ExampleCapture() {
	c := audio.NewCapture(48000, 2, 2)

	// An input callback hands over three frames; the ring holds two.
	kept := c.Write([]float32{0.1, 0.1, 0.2, 0.2, 0.3, 0.3})
	c.CloseWrite()
	fmt.Println("kept", kept, "dropped", c.Dropped())

	buf := make([]float32, 8)
	for {
		n, err := c.ReadSamples(buf)
		if n > 0 {
			fmt.Println(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	// Output:
	// kept 4 dropped 2
	// [0.1 0.1 0.2 0.2]
}

func ExampleNewMonoMixer() {
	c := audio.NewCapture(8000, 2, 4)
	c.Write([]float32{0.2, 0.4, -1, 1})
	c.CloseWrite()

	m := audio.NewMonoMixer(c)
	buf := make([]float32, 4)
	n, _ := m.ReadSamples(buf)
	fmt.Printf("%.1f\n", buf[:n])
	// Output:
	// [0.3 0.0]
}
