package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sentiserve/internal/traffic"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		out       string
		count     int
		seed      int64
		format    string
		anomalies bool
	)

	cmd := &cobra.Command{
		Use:   "trafficgen",
		Short: "Generate synthetic network-traffic samples",
		Long: `Generate deterministic network-traffic fixtures: a baseline of HTTPS and
DNS flows followed by injected anomalies, as log lines or CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer file.Close()
				w = file
			}

			cfg := traffic.Config{Seed: seed, Count: count}
			baseline := traffic.Generate(cfg)

			var injected []traffic.Event
			if anomalies {
				injected = traffic.Anomalies()
			}

			switch format {
			case "log":
				return traffic.WriteLog(w, baseline, injected)
			case "csv":
				return traffic.WriteCSV(w, append(baseline, injected...))
			default:
				return fmt.Errorf("unknown format %q, expected log or csv", format)
			}
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	cmd.Flags().IntVar(&count, "count", 350, "number of baseline events")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&format, "format", "log", "output format: log or csv")
	cmd.Flags().BoolVar(&anomalies, "anomalies", true, "append the injected anomalies")

	return cmd
}
