package analysis

import (
	"fmt"
	"io"
)

// PrintReport renders the performance report as a sectioned text block.
func PrintReport(w io.Writer, r Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Strategy Analysis")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Event:         %s\n", r.EventTitle)
	if r.Slug != "" {
		fmt.Fprintf(w, "Slug:          %s\n", r.Slug)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Price Movement")
	fmt.Fprintln(w, "--------------------------------------------------")
	if r.FirstClose.Set {
		fmt.Fprintf(w, "Open:          %.2f\n", r.FirstClose.Value)
	}
	if r.LastClose.Set {
		fmt.Fprintf(w, "Close:         %.2f\n", r.LastClose.Value)
	}
	if r.PriceChange.Set {
		fmt.Fprintf(w, "Change:        %+.2f\n", r.PriceChange.Value)
	}
	fmt.Fprintf(w, "Outcome:       %s\n", r.ActualOutcome)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Position Totals")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Bought A:      %.2f shares, cost $%.2f\n", r.SizeA, r.CostA)
	fmt.Fprintf(w, "Bought B:      %.2f shares, cost $%.2f\n", r.SizeB, r.CostB)
	fmt.Fprintf(w, "Total Cost:    $%.2f\n", r.TotalCost)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit & Loss")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Payout:        $%.2f\n", r.Payout)
	fmt.Fprintf(w, "Net P/L:       $%+.2f\n", r.Profit)
	fmt.Fprintf(w, "ROI:           %+.2f%%\n", r.ROI)

	if r.FirstTradeTS != 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Timing")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "First Trade:   %.0fs after window open\n", r.EntryDelaySecs.Value)
		fmt.Fprintf(w, "Last Trade:    %.0fs before window close\n", r.ExitLeadSecs.Value)
		if r.EntryPriceDelta.Set {
			fmt.Fprintf(w, "Move at Entry: %+.2f vs anchor\n", r.EntryPriceDelta.Value)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Density")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Active Seconds: %d / %d\n", r.TradeSeconds, r.WindowSeconds)
	fmt.Fprintf(w, "Density:        %.2f%%\n", r.DensityPct)

	if r.ShareAPct.Set {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Position Bias")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "A Share:       %.1f%%\n", r.ShareAPct.Value)
		fmt.Fprintf(w, "B Share:       %.1f%%\n", r.ShareBPct.Value)
		fmt.Fprintf(w, "Bias:          %s\n", r.Bias)
		correct := "no"
		if r.DirectionallyCorrect {
			correct = "yes"
		}
		fmt.Fprintf(w, "Correct Side:  %s\n", correct)
	}

	if r.DroppedTrades > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Warning: %d trade(s) without timestamps were dropped\n", r.DroppedTrades)
	}

	fmt.Fprintln(w)
}
