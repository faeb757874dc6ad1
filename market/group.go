package market

// TradeGroups holds trades bucketed by integer second. Trades without a
// timestamp cannot be placed on the timeline; they are dropped rather than
// failing the run, but the count is kept for observability.
type TradeGroups struct {
	BySecond map[int64][]Trade
	Dropped  int
}

// GroupTrades buckets trades by second. Sub-grouping by (side, outcome)
// within a second is the ledger's concern, not this one's.
func GroupTrades(trades []Trade) TradeGroups {
	g := TradeGroups{BySecond: make(map[int64][]Trade)}
	for _, t := range trades {
		if t.Timestamp == 0 {
			g.Dropped++
			continue
		}
		g.BySecond[t.Timestamp] = append(g.BySecond[t.Timestamp], t)
	}
	return g
}

// At returns the trades observed at ts, possibly nil.
func (g TradeGroups) At(ts int64) []Trade {
	return g.BySecond[ts]
}
