// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audiounit/recorder"
)

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record FILE",
		Short: "Record the default input to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []recorder.Option{
				recorder.WithLogger(a.log),
				recorder.WithBitDepth(a.cfg.Bits),
				recorder.WithRate(a.cfg.Rate),
				recorder.WithDevice(a.cfg.Device),
				recorder.WithUnitOptions(a.unitOpts...),
			}
			if a.cfg.Mono {
				opts = append(opts, recorder.WithMono())
			}
			if a.cfg.Buffer > 0 {
				opts = append(opts, recorder.WithBuffer(a.cfg.Buffer))
			}

			r, err := recorder.New(opts...)
			if err != nil {
				return err
			}
			defer r.Close()

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			if a.cfg.Duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Duration)
				defer cancel()
			}

			frames, err := r.Record(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %d frames to %s (%d samples dropped)\n",
				frames, args[0], r.Dropped())
			return nil
		},
	}

	cmd.Flags().Duration("duration", 5*time.Second, "recording length (0 records until interrupted)")
	cmd.Flags().Bool("mono", false, "mix all input channels down to one")
	cmd.Flags().Int("rate", 0, "resample to this rate (0 keeps the device rate)")
	cmd.Flags().Int("bits", 16, "WAV bit depth: 16, 24 or 32")
	cmd.Flags().Uint32("device", 0, "AudioDeviceID to record from (0 is the default input)")
	cmd.Flags().Float64("buffer", 4, "seconds of audio buffered between the device and the file")
	return cmd
}
