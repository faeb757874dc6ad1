package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantrail/polyledger/config"
	"github.com/quantrail/polyledger/internal/snapshot"
	"github.com/quantrail/polyledger/journal"
	"github.com/quantrail/polyledger/ledger"
	"github.com/quantrail/polyledger/market"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Join trades and reference prices into a per-second ledger",
	Long: `Build walks the closed event window second by second, joining grouped
trades against indexed reference prices, and writes the merged per-second
position ledger as CSV into the output directory.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rows, snap, err := buildLedger(cfg)
	if err != nil {
		return err
	}

	out := mergedPath(cfg)
	err = journal.WriteLedgerCSV(out, journal.Meta{
		Event:      snap.Event,
		Address:    snap.Address,
		Symbol:     cfg.PriceSymbol,
		TradeCount: len(snap.Trades),
	}, rows)
	if err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	fmt.Printf("Saved %s (%d rows)\n", out, len(rows))
	return nil
}

// buildLedger loads the fetch snapshots and runs the core pipeline:
// index candles, group trades, walk the window.
func buildLedger(cfg *config.Config) ([]ledger.Row, snapshot.Polymarket, error) {
	snap, err := snapshot.LoadPolymarket(polymarketPath(cfg))
	if err != nil {
		return nil, snapshot.Polymarket{}, fmt.Errorf("load polymarket snapshot (run fetch first?): %w", err)
	}
	candles, err := snapshot.LoadCandlesCSV(klinesPath(cfg))
	if err != nil {
		return nil, snapshot.Polymarket{}, fmt.Errorf("load kline snapshot (run fetch first?): %w", err)
	}

	prices := market.IndexCandles(candles)
	groups := market.GroupTrades(snap.Trades)

	w := ledger.Window{Start: snap.Event.StartTS, End: snap.Event.EndTS}
	rows, err := ledger.Build(w, snap.Event, prices, groups)
	if err != nil {
		return nil, snapshot.Polymarket{}, err
	}
	return rows, snap, nil
}
