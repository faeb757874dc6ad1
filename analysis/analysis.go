package analysis

import (
	"sort"

	"github.com/quantrail/polyledger/ledger"
	"github.com/quantrail/polyledger/market"
)

// OutcomeTie marks a window whose first and last reference closes are equal
// (or where fewer than two closes exist), so neither outcome can be settled.
const OutcomeTie = "Tie"

// BiasNeutral is reported when neither outcome holds more than 60% of the
// bought size.
const BiasNeutral = "Neutral"

// Report aggregates the performance of one address over one event window.
type Report struct {
	EventTitle string
	Slug       string

	// Price movement over the window.
	ActualOutcome string // OutcomeA label, OutcomeB label, or OutcomeTie
	FirstClose    ledger.Float
	LastClose     ledger.Float
	PriceChange   ledger.Float

	// Position totals from the raw trade list (volume-weighted cost, unlike
	// the ledger's per-second mean).
	SizeA     float64
	SizeB     float64
	CostA     float64
	CostB     float64
	TotalCost float64

	// Settlement P&L. A tie pays out nothing, so profit falls back to the
	// full cost.
	Payout float64
	Profit float64
	ROI    float64 // percent; zero when no cost was deployed

	// Timing.
	FirstTradeTS    int64
	LastTradeTS     int64
	EntryDelaySecs  ledger.Float
	ExitLeadSecs    ledger.Float
	EntryPriceDelta ledger.Float // reference move at first trade vs anchor

	// Density.
	TradeSeconds  int
	WindowSeconds int64
	DensityPct    float64

	// Bias.
	ShareAPct            ledger.Float
	ShareBPct            ledger.Float
	Bias                 string
	DirectionallyCorrect bool

	TradeCount    int
	DroppedTrades int
}

// Evaluate derives the aggregate performance report from a completed ledger,
// the event descriptor, and the raw trade list. The ledger contributes only
// the reference price series (outcome and entry-time deltas); position
// totals are re-aggregated from the trades so the two accountings stay
// independently checkable.
func Evaluate(rows []ledger.Row, ev market.Event, trades []market.Trade, dropped int) Report {
	r := Report{
		EventTitle:    ev.Title,
		Slug:          ev.Slug,
		WindowSeconds: ev.Seconds(),
		TradeCount:    len(trades),
		DroppedTrades: dropped,
	}

	first, last := closeBounds(rows)
	r.FirstClose = first
	r.LastClose = last

	r.ActualOutcome = OutcomeTie
	if first.Set && last.Set {
		r.PriceChange = ledger.F(last.Value - first.Value).Round(2)
		switch {
		case last.Value > first.Value:
			r.ActualOutcome = ev.OutcomeB
		case last.Value < first.Value:
			r.ActualOutcome = ev.OutcomeA
		}
	}

	for _, t := range trades {
		if t.Side != market.SideBuy {
			continue
		}
		switch t.Outcome {
		case ev.OutcomeA:
			r.SizeA += t.Size
			r.CostA += t.Size * t.Price
		case ev.OutcomeB:
			r.SizeB += t.Size
			r.CostB += t.Size * t.Price
		}
	}
	r.TotalCost = r.CostA + r.CostB

	switch r.ActualOutcome {
	case ev.OutcomeA:
		r.Payout = r.SizeA * 1.0
	case ev.OutcomeB:
		r.Payout = r.SizeB * 1.0
	}
	r.Profit = r.Payout - r.TotalCost
	if r.TotalCost > 0 {
		r.ROI = r.Profit / r.TotalCost * 100
	}

	evaluateTiming(&r, rows, ev, trades)
	evaluateDensity(&r, trades)
	evaluateBias(&r, ev)

	return r
}

func closeBounds(rows []ledger.Row) (first, last ledger.Float) {
	for _, row := range rows {
		if !row.Close.Set {
			continue
		}
		if !first.Set {
			first = row.Close
		}
		last = row.Close
	}
	return first, last
}

func evaluateTiming(r *Report, rows []ledger.Row, ev market.Event, trades []market.Trade) {
	timestamps := make([]int64, 0, len(trades))
	for _, t := range trades {
		if t.Timestamp != 0 {
			timestamps = append(timestamps, t.Timestamp)
		}
	}
	if len(timestamps) == 0 {
		return
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	r.FirstTradeTS = timestamps[0]
	r.LastTradeTS = timestamps[len(timestamps)-1]
	r.EntryDelaySecs = ledger.F(float64(r.FirstTradeTS - ev.StartTS))
	r.ExitLeadSecs = ledger.F(float64(ev.EndTS - r.LastTradeTS))

	if !r.FirstClose.Set {
		return
	}
	for _, row := range rows {
		if row.Timestamp == r.FirstTradeTS {
			if row.Close.Set {
				r.EntryPriceDelta = ledger.F(row.Close.Value - r.FirstClose.Value).Round(2)
			}
			return
		}
	}
}

func evaluateDensity(r *Report, trades []market.Trade) {
	seconds := make(map[int64]struct{})
	for _, t := range trades {
		if t.Timestamp != 0 {
			seconds[t.Timestamp] = struct{}{}
		}
	}
	r.TradeSeconds = len(seconds)
	if r.WindowSeconds > 0 {
		r.DensityPct = float64(r.TradeSeconds) / float64(r.WindowSeconds) * 100
	}
}

func evaluateBias(r *Report, ev market.Event) {
	total := r.SizeA + r.SizeB
	if total <= 0 {
		return
	}

	shareA := r.SizeA / total * 100
	shareB := r.SizeB / total * 100
	r.ShareAPct = ledger.F(shareA)
	r.ShareBPct = ledger.F(shareB)

	switch {
	case shareB > 60:
		r.Bias = ev.OutcomeB
	case shareA > 60:
		r.Bias = ev.OutcomeA
	default:
		r.Bias = BiasNeutral
	}

	r.DirectionallyCorrect = (shareB > 50 && r.ActualOutcome == ev.OutcomeB) ||
		(shareA > 50 && r.ActualOutcome == ev.OutcomeA)
}
