// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command gfkit compresses tree sequences into DAG or BP encoded forests
// and reports population-genetics statistics over them (SPEC_FULL.md §6,
// D3).
package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sfkit/gfkit/internal/config"
	"github.com/sfkit/gfkit/internal/xlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		xlog.Logger.Fatal().Err(err).Msg("gfkit")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gfkit",
		Short:        "compress ancestral recombination graphs and query population-genetics statistics",
		SilenceUsage: true,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(newCompressCmd(), newBenchmarkCmd(), newStatsCmd())
	return root
}

// loadConfig resolves cmd's flags through internal/config and applies the
// verbose flag to the shared logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		xlog.SetLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}
