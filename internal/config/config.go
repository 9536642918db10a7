// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package config resolves cmd/gfkit's configuration from CLI flags,
// GFKIT_-prefixed environment variables and an optional gfkit.yaml file,
// in that precedence order, into a single Config struct (spec.md §6, A3).
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix viper uses when resolving configuration from
// environment variables.
const EnvPrefix = "GFKIT"

// Config is the resolved configuration shared by every cmd/gfkit
// subcommand, per SPEC_FULL.md 4.13.
type Config struct {
	InputFile     string `mapstructure:"input-file"`
	DAGOutputFile string `mapstructure:"file"`
	BPOutputFile  string `mapstructure:"bp"`
	ReportFile    string `mapstructure:"report"`
	SampleSetSize uint32 `mapstructure:"num-samples"`
	WindowSize    uint32 `mapstructure:"window"`
	Verbose       bool   `mapstructure:"verbose"`
}

// RegisterFlags declares Config's fields as persistent flags on flags,
// using spec.md §6's flag letters (-i input, -f dag file, -b bp file,
// -r report, -n num-samples, -w window; -v is the conventional verbose
// letter the CLI layer adds on top. Subcommand-local flags such as
// stats' -m/--metrics are registered by the subcommand itself, not here).
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("input-file", "i", "", "tree-sequence input file")
	flags.StringP("file", "f", "", "DAG-encoded forest output/input file")
	flags.StringP("bp", "b", "", "BP-encoded forest output/input file")
	flags.StringP("report", "r", "", "statistics report output file")
	flags.Uint32P("num-samples", "n", 0, "sample set size for statistics")
	flags.Uint32P("window", "w", 0, "window size in sites")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
}

// Load binds flags through viper, layers GFKIT_-prefixed environment
// variables and an optional ./gfkit.yaml over them, and unmarshals the
// result into a Config.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.Wrap(err, "config: binding flags")
	}

	v.SetConfigName("gfkit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.Wrap(err, "config: reading gfkit.yaml")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshaling configuration")
	}
	return cfg, nil
}
