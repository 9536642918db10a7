// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sfkit/gfkit/internal/xlog"
)

// defaultBenchmarkDraws is how many random sample-set draws newBenchmarkCmd
// times when the caller doesn't request a specific count via --num-samples
// (which here doubles as the draw count, not the sample-set size).
const defaultBenchmarkDraws = 100

func newBenchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "time compression and repeated Diversity queries over random sample sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			compressStart := time.Now()
			forest, err := loadOrCompress(cfg)
			if err != nil {
				return err
			}
			compressElapsed := time.Since(compressStart)

			draws := int(cfg.SampleSetSize)
			if draws == 0 {
				draws = defaultBenchmarkDraws
			}

			windowSize := cfg.WindowSize
			if windowSize == 0 {
				windowSize = uint32(forest.NumSamples())
			}

			queryStart := time.Now()
			for i := 0; i < draws; i++ {
				set := pickSampleSet(forest, windowSize)
				forest.Diversity(set)
			}
			queryElapsed := time.Since(queryStart)

			xlog.Logger.Info().
				Dur("compress", compressElapsed).
				Dur("query_total", queryElapsed).
				Int("draws", draws).
				Msg("benchmark complete")

			out := os.Stdout
			if cfg.ReportFile != "" {
				f, err := os.Create(cfg.ReportFile)
				if err != nil {
					return errors.Wrap(err, "cmd/gfkit benchmark: creating report file")
				}
				defer f.Close()
				out = f
			}
			fmt.Fprintf(out, "nodes\t%d\n", forest.NumNodes())
			fmt.Fprintf(out, "samples\t%d\n", forest.NumSamples())
			fmt.Fprintf(out, "trees\t%d\n", forest.NumTrees())
			fmt.Fprintf(out, "compress_ns\t%d\n", compressElapsed.Nanoseconds())
			fmt.Fprintf(out, "draws\t%d\n", draws)
			fmt.Fprintf(out, "query_total_ns\t%d\n", queryElapsed.Nanoseconds())
			fmt.Fprintf(out, "query_mean_ns\t%d\n", queryElapsed.Nanoseconds()/int64(draws))

			return nil
		},
	}
}
