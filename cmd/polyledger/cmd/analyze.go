package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantrail/polyledger/analysis"
	"github.com/quantrail/polyledger/internal/id"
	"github.com/quantrail/polyledger/journal"
	"github.com/quantrail/polyledger/market"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate the ledger into a performance report",
	Long: `Analyze rebuilds the per-second ledger from the fetch snapshots,
derives the aggregate performance report (P&L, ROI, timing, density, bias),
prints it, and — when the journal is sqlite — records the run and its full
ledger for later queries.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rows, snap, err := buildLedger(cfg)
	if err != nil {
		return err
	}

	groups := market.GroupTrades(snap.Trades)
	report := analysis.Evaluate(rows, snap.Event, snap.Trades, groups.Dropped)

	analysis.PrintReport(os.Stdout, report)

	if cfg.Journal.Type != "sqlite" {
		return nil
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal db: %w", err)
	}
	defer j.Close()

	runID := id.New()
	err = j.RecordRun(journal.Run{
		RunID:         runID,
		Created:       time.Now().UTC(),
		Slug:          snap.Event.Slug,
		Address:       snap.Address,
		Title:         snap.Event.Title,
		Symbol:        cfg.PriceSymbol,
		StartTS:       snap.Event.StartTS,
		EndTS:         snap.Event.EndTS,
		TradeCount:    report.TradeCount,
		DroppedTrades: report.DroppedTrades,
		ActualOutcome: report.ActualOutcome,
		TotalCost:     report.TotalCost,
		Payout:        report.Payout,
		Profit:        report.Profit,
		ROI:           report.ROI,
		DensityPct:    report.DensityPct,
		Bias:          report.Bias,
		CorrectSide:   report.DirectionallyCorrect,
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if err := j.RecordRows(runID, rows); err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}

	fmt.Printf("Recorded run %s in %s\n", runID, cfg.Journal.DBPath)
	return nil
}
