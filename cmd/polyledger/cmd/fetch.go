package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantrail/polyledger/binance"
	"github.com/quantrail/polyledger/internal/snapshot"
	"github.com/quantrail/polyledger/market"
	"github.com/quantrail/polyledger/polymarket"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download event metadata, trade history, and reference klines",
	Long: `Fetch resolves the configured event slug, downloads the address's full
trade history for that market, and fetches the 1-second Binance klines
covering the event window. Results are saved as snapshots in the output
directory so build and analyze can run offline.

With --archive, klines are read from a Binance Vision ZIP export instead
of the API.`,
	RunE: runFetch,
}

var fetchArchive string

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchArchive, "archive", "", "path to a Binance Vision kline ZIP (skips the kline API)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	pm := polymarket.NewClient(cfg.API.GammaURL, cfg.API.DataURL, logger)

	ev, err := pm.FetchEvent(ctx, cfg.Slug)
	if err != nil {
		return fmt.Errorf("fetch event: %w", err)
	}
	ev.OutcomeA = cfg.OutcomeA
	ev.OutcomeB = cfg.OutcomeB

	logger.Info("resolved event",
		zap.String("title", ev.Title),
		zap.Int64("start_ts", ev.StartTS),
		zap.Int64("end_ts", ev.EndTS),
		zap.Int64("seconds", ev.Seconds()),
	)

	trades, err := pm.FetchTrades(ctx, cfg.Address, ev.ConditionID)
	if err != nil {
		return fmt.Errorf("fetch trades: %w", err)
	}
	logger.Info("trade history complete", zap.Int("trades", len(trades)))

	var candles []market.Candle
	if fetchArchive != "" {
		candles, err = binance.LoadArchive(fetchArchive)
	} else {
		bn := binance.NewClient(cfg.API.BinanceURL, logger)
		candles, err = bn.FetchKlines1s(ctx, cfg.PriceSymbol, ev.StartTS, ev.EndTS)
	}
	if err != nil {
		return fmt.Errorf("fetch klines: %w", err)
	}
	logger.Info("kline series complete", zap.Int("candles", len(candles)))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pmPath := polymarketPath(cfg)
	if err := snapshot.SavePolymarket(pmPath, snapshot.Polymarket{
		Event:   ev,
		Address: cfg.Address,
		Trades:  trades,
	}); err != nil {
		return err
	}

	klPath := klinesPath(cfg)
	if err := snapshot.SaveCandlesCSV(klPath, candles); err != nil {
		return err
	}

	fmt.Printf("Saved %s (%d trades)\n", pmPath, len(trades))
	fmt.Printf("Saved %s (%d candles)\n", klPath, len(candles))
	return nil
}
