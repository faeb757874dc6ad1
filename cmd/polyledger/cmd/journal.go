package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantrail/polyledger/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded analysis runs",
	Long: `Query runs recorded in the SQLite journal.

Examples:
  polyledger journal list
  polyledger journal show <run-id>`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and its ledger summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./polyledger.sqlite", "path to SQLite journal DB")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %-24s  outcome=%-5s  pl=%+.2f  roi=%+.2f%%\n",
			r.RunID,
			r.Created.Format(time.RFC3339),
			r.Slug,
			r.ActualOutcome,
			r.Profit,
			r.ROI,
		)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	r, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	rows, err := j.ListRows(r.RunID)
	if err != nil {
		return fmt.Errorf("list rows: %w", err)
	}

	fmt.Printf("Run:       %s\n", r.RunID)
	fmt.Printf("Created:   %s\n", r.Created.Format(time.RFC3339))
	fmt.Printf("Event:     %s (%s)\n", r.Title, r.Slug)
	fmt.Printf("Address:   %s\n", r.Address)
	fmt.Printf("Window:    %d ~ %d (%d rows stored)\n", r.StartTS, r.EndTS, len(rows))
	fmt.Printf("Trades:    %d (%d dropped)\n", r.TradeCount, r.DroppedTrades)
	fmt.Printf("Outcome:   %s\n", r.ActualOutcome)
	fmt.Printf("Cost:      $%.2f\n", r.TotalCost)
	fmt.Printf("Payout:    $%.2f\n", r.Payout)
	fmt.Printf("Net P/L:   $%+.2f\n", r.Profit)
	fmt.Printf("ROI:       %+.2f%%\n", r.ROI)
	fmt.Printf("Density:   %.2f%%\n", r.DensityPct)
	fmt.Printf("Bias:      %s\n", r.Bias)
	return nil
}
