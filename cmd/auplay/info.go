// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audiounit"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the default output unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := audiounit.New(audiounit.IODefaultOutput, a.unitOptions()...)
			if err != nil {
				return err
			}
			defer u.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatLine("unit", u.Type()))

			for _, s := range []audiounit.Scope{audiounit.ScopeInput, audiounit.ScopeOutput} {
				f, err := u.StreamFormat(s)
				if err != nil {
					return fmt.Errorf("%s stream format: %w", s, err)
				}
				fmt.Fprintln(w, formatLine(s.String()+" format", f))
			}

			size, err := u.BufferFrameSize()
			if err != nil {
				return err
			}
			slice, err := u.MaximumFramesPerSlice()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%-22s %d frames\n", "buffer frame size:", size)
			fmt.Fprintf(w, "%-22s %d frames\n", "max frames per slice:", slice)

			if dev, err := u.CurrentDevice(); err == nil {
				fmt.Fprintf(w, "%-22s %d\n", "device:", dev)
			}
			return nil
		},
	}
}

func formatLine(label string, v fmt.Stringer) string {
	return fmt.Sprintf("%-22s %s", label+":", v)
}
