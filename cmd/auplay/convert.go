// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/formats"
	"github.com/ik5/audiounit/formats/wav"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert IN OUT.wav",
		Short: "Decode a file, optionally mix to mono and resample, and write WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			src, err := formats.Registry().Decode(args[0], in)
			if err != nil {
				return err
			}
			if a.cfg.Mono {
				src = audio.NewMonoMixer(src)
			}
			if a.cfg.Rate > 0 && a.cfg.Rate != src.SampleRate() {
				src = audio.NewResampler(src, a.cfg.Rate)
			}

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()

			frames, err := wav.Encode(out, src, a.cfg.Bits)
			if err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames at %dHz, %d channels\n",
				frames, src.SampleRate(), src.Channels())
			return nil
		},
	}

	cmd.Flags().Bool("mono", false, "mix all channels down to one")
	cmd.Flags().Int("rate", 0, "resample to this rate (0 keeps the source rate)")
	cmd.Flags().Int("bits", 16, "WAV bit depth: 16, 24 or 32")
	return cmd
}
