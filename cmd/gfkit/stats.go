// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sfkit/gfkit/internal/xlog"
)

var validMetrics = map[string]bool{
	"diversity":         true,
	"segregating-sites": true,
	"tajimas-d":         true,
	"afs":               true,
}

func newStatsCmd() *cobra.Command {
	var metrics []string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "compute population-genetics statistics over a compressed forest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			for _, m := range metrics {
				if !validMetrics[m] {
					return errors.Errorf("cmd/gfkit stats: unknown metric %q", m)
				}
			}

			forest, err := loadOrCompress(cfg)
			if err != nil {
				return err
			}

			set := pickSampleSet(forest, cfg.SampleSetSize)
			xlog.Logger.Debug().Int("sample_set_size", set.Popcount()).Msg("running stats")

			out := io.Writer(os.Stdout)
			if cfg.ReportFile != "" {
				f, err := os.Create(cfg.ReportFile)
				if err != nil {
					return errors.Wrap(err, "cmd/gfkit stats: creating report file")
				}
				defer f.Close()
				out = f
			}

			for _, m := range metrics {
				switch m {
				case "diversity":
					fmt.Fprintf(out, "diversity\t%g\n", forest.Diversity(set))
				case "segregating-sites":
					fmt.Fprintf(out, "segregating_sites\t%d\n", forest.NumSegregatingSites(set))
				case "tajimas-d":
					fmt.Fprintf(out, "tajimas_d\t%g\n", forest.TajimasD(set))
				case "afs":
					fmt.Fprintf(out, "afs\t%v\n", forest.AlleleFrequencySpectrum(set))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&metrics, "metrics", "m",
		[]string{"diversity", "segregating-sites", "tajimas-d", "afs"},
		"comma-separated statistics to compute (diversity, segregating-sites, tajimas-d, afs)")

	return cmd
}
