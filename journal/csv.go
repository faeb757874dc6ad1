package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quantrail/polyledger/ledger"
	"github.com/quantrail/polyledger/market"
)

// Meta describes the run for the merged-CSV preamble.
type Meta struct {
	Event      market.Event
	Address    string
	Symbol     string
	TradeCount int
}

// WriteLedgerCSV writes the merged per-second ledger: a `#`-prefixed
// preamble describing the run, then one CSV row per second with blank cells
// for fields that are not yet computable.
func WriteLedgerCSV(path string, m Meta, rows []ledger.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger csv: %w", err)
	}
	defer f.Close()

	ev := m.Event
	fmt.Fprintf(f, "# Event: %s\n", ev.Title)
	fmt.Fprintf(f, "# Slug: %s\n", ev.Slug)
	fmt.Fprintf(f, "# Address: %s\n", m.Address)
	fmt.Fprintf(f, "# Time Range: %s ~ %s\n", utcTime(ev.StartTS), utcTime(ev.EndTS))
	fmt.Fprintf(f, "# Price Symbol: %s\n", m.Symbol)
	fmt.Fprintf(f, "# Total Trades: %d\n", m.TradeCount)
	fmt.Fprintln(f, "#")

	a := strings.ToLower(ev.OutcomeA)
	b := strings.ToLower(ev.OutcomeB)

	w := csv.NewWriter(f)
	header := []string{
		"timestamp",
		"time_utc",
		strings.ToLower(m.Symbol) + "_close",
		"delta",
		"buy_" + a + "_size",
		"buy_" + a + "_price",
		"buy_" + b + "_size",
		"buy_" + b + "_price",
		"cum_" + a + "_size",
		"cum_" + a + "_avg_cost",
		"cum_" + b + "_size",
		"cum_" + b + "_avg_cost",
		"net_exposure",
		"target_price",
		"hedged_size",
		"hedged_price",
		"hidden_loss",
		"hidden_profit",
		"trade_count",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		count := ""
		if row.TradeCount > 0 {
			count = strconv.Itoa(row.TradeCount)
		}
		rec := []string{
			strconv.FormatInt(row.Timestamp, 10),
			utcTime(row.Timestamp),
			row.Close.String(),
			row.Delta.String(),
			row.BuyASize.String(),
			row.BuyAPrice.String(),
			row.BuyBSize.String(),
			row.BuyBPrice.String(),
			row.CumASize.String(),
			row.CumAAvgCost.String(),
			row.CumBSize.String(),
			row.CumBAvgCost.String(),
			row.NetExposure.String(),
			row.TargetPrice.String(),
			row.HedgedSize.String(),
			row.HedgedPrice.String(),
			row.HiddenLoss.String(),
			row.HiddenProfit.String(),
			count,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func utcTime(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}
