// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ik5/audiounit"
)

// app is the state shared by every command.
type app struct {
	v   *viper.Viper
	cfg *config
	log *zap.Logger

	// unitOpts are appended to every audiounit.New call.
	unitOpts []audiounit.Option
}

func newRootCmd(unitOpts []audiounit.Option) *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop(), unitOpts: unitOpts}

	root := &cobra.Command{
		Use:           "auplay",
		Short:         "Play and record audio through macOS audio units",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().Bool("log-json", false, "log as JSON")

	root.AddCommand(
		newPlayCmd(a),
		newSineCmd(a),
		newRecordCmd(a),
		newConvertCmd(a),
		newInfoCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) unitOptions() []audiounit.Option {
	return append([]audiounit.Option{audiounit.WithLogger(a.log)}, a.unitOpts...)
}
