// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config is the merged view of flags, AUPLAY_* environment variables and
// the config file, in that order of precedence.
type config struct {
	LogLevel string        `mapstructure:"log-level"`
	LogJSON  bool          `mapstructure:"log-json"`
	Rate     int           `mapstructure:"rate"`
	Volume   float64       `mapstructure:"volume"`
	Freq     float64       `mapstructure:"freq"`
	Duration time.Duration `mapstructure:"duration"`
	Mono     bool          `mapstructure:"mono"`
	Bits     int           `mapstructure:"bits"`
	Device   uint32        `mapstructure:"device"`
	Buffer   float64       `mapstructure:"buffer"`
}

func loadConfig(v *viper.Viper, cmd *cobra.Command) (*config, error) {
	v.SetEnvPrefix("AUPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Only the running command's flags are bound; commands share keys.
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("auplay")
		v.AddConfigPath("$HOME/.config/auplay")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.LogJSON {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
