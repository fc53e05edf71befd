// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/audiounit/audio"
	"github.com/ik5/audiounit/formats"
	"github.com/ik5/audiounit/player"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Play a wav, aiff, mp3 or ogg file on the default output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			src, err := formats.Registry().Decode(args[0], f)
			if err != nil {
				return err
			}
			if a.cfg.Rate > 0 && a.cfg.Rate != src.SampleRate() {
				src = audio.NewResampler(src, a.cfg.Rate)
			}
			return a.play(cmd.Context(), src)
		},
	}

	addPlaybackFlags(cmd)
	cmd.Flags().Int("rate", 0, "resample to this rate before playback (0 keeps the file rate)")
	return cmd
}

func newSineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sine",
		Short: "Play a sine tone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			frames := int(a.cfg.Duration.Seconds() * float64(a.cfg.Rate))
			return a.play(cmd.Context(), audio.NewSine(a.cfg.Rate, 2, a.cfg.Freq, 1, frames))
		},
	}

	addPlaybackFlags(cmd)
	cmd.Flags().Int("rate", 48000, "sample rate of the generated tone")
	cmd.Flags().Float64("freq", 440, "tone frequency in Hz")
	cmd.Flags().Duration("duration", 2*time.Second, "tone length (0 plays until interrupted)")
	return cmd
}

func addPlaybackFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("volume", 1, "linear gain applied to every sample")
}

func (a *app) play(ctx context.Context, src audio.Source) error {
	p, err := player.New(src,
		player.WithLogger(a.log),
		player.WithVolume(float32(a.cfg.Volume)),
		player.WithUnitOptions(a.unitOpts...),
	)
	if err != nil {
		src.Close()
		return err
	}
	defer p.Close()

	a.log.Info("playing", zap.Stringer("format", p.Format()))
	if err := p.Start(); err != nil {
		return err
	}

	werr := p.Wait(ctx)
	if err := p.Stop(); err != nil {
		return err
	}
	if werr != nil && ctx.Err() == nil {
		return werr
	}
	return nil
}
