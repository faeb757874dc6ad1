package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, build, and analyze in one pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runFetch(cmd, args); err != nil {
			return err
		}
		if err := runBuild(cmd, args); err != nil {
			return err
		}
		return runAnalyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&fetchArchive, "archive", "", "path to a Binance Vision kline ZIP (skips the kline API)")
}
