package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantrail/polyledger/config"
	"github.com/quantrail/polyledger/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "polyledger",
	Short: "Reconstruct and analyze a Polymarket address's position second by second",
	Long: `Polyledger rebuilds the financial position of one trading address inside a
fixed-duration binary-outcome Polymarket event, joined against Binance
reference prices, and derives a position-level profit/loss timeline.

The pipeline has three stages:
  fetch    - download event metadata, trade history, and 1s klines
  build    - join trades and prices into a per-second position ledger
  analyze  - evaluate the completed ledger into a performance report

Use "run" to execute all three in order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; it may carry API endpoint overrides.
		_ = godotenv.Load()

		var err error
		logger, err = logging.NewLogger(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
}

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func polymarketPath(cfg *config.Config) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("polymarket_%s.json", cfg.Slug))
}

func klinesPath(cfg *config.Config) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("klines_%s.csv", cfg.Slug))
}

func mergedPath(cfg *config.Config) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("merged_%s.csv", cfg.Slug))
}
