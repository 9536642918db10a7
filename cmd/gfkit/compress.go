// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sfkit/gfkit/internal/xlog"
	"github.com/sfkit/gfkit/succinct"
)

func newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress",
		Short: "compress a tree sequence into a DAG and/or BP encoded forest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.InputFile == "" {
				return errors.New("cmd/gfkit compress: --input-file is required")
			}
			if cfg.DAGOutputFile == "" && cfg.BPOutputFile == "" {
				return errors.New("cmd/gfkit compress: specify --file and/or --bp output path")
			}

			ts, err := loadTreeSequence(cfg.InputFile)
			if err != nil {
				return err
			}

			if cfg.DAGOutputFile != "" {
				forest, err := succinct.NewDAG(ts)
				if err != nil {
					return errors.Wrap(err, "cmd/gfkit compress: building DAG forest")
				}
				if err := forest.Save(cfg.DAGOutputFile); err != nil {
					return errors.Wrap(err, "cmd/gfkit compress: saving DAG forest")
				}
				logForestSummary(cfg.DAGOutputFile, "dag", forest)
			}

			if cfg.BPOutputFile != "" {
				forest, err := succinct.NewBP(ts)
				if err != nil {
					return errors.Wrap(err, "cmd/gfkit compress: building BP forest")
				}
				if err := forest.Save(cfg.BPOutputFile); err != nil {
					return errors.Wrap(err, "cmd/gfkit compress: saving BP forest")
				}
				logForestSummary(cfg.BPOutputFile, "bp", forest)
			}

			return nil
		},
	}
}

func logForestSummary(path, encoding string, f compressedForest) {
	xlog.Logger.Info().
		Str("path", path).
		Str("encoding", encoding).
		Uint32("nodes", uint32(f.NumNodes())).
		Uint32("samples", uint32(f.NumSamples())).
		Uint32("trees", uint32(f.NumTrees())).
		Uint32("unique_subtrees", uint32(f.NumUniqueSubtrees())).
		Msg("wrote compressed forest")
}
