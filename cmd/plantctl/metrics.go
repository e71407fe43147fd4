package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// newMetricsCmd prints the client's counters in the Prometheus text format.
// Only requests made by this process are counted, so it is mostly useful in
// scripts that run several commands through one root command.
func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Dump client metrics in Prometheus text format",
		RunE: func(cmd *cobra.Command, args []string) error {
			mfs, err := prometheus.DefaultGatherer.Gather()
			if err != nil {
				return err
			}
			for _, mf := range mfs {
				if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
