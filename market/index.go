package market

// CandleIndex maps an integer second-timestamp to the candle observed at
// that second. A second absent from the index means "no price observed",
// never zero or a carried-forward price.
type CandleIndex map[int64]Candle

// IndexCandles builds a per-second lookup from a raw candle list. Source
// feeds occasionally repeat or reorder entries; the last entry for a second
// wins. An empty input yields an empty index.
func IndexCandles(candles []Candle) CandleIndex {
	idx := make(CandleIndex, len(candles))
	for _, c := range candles {
		idx[c.Timestamp] = c
	}
	return idx
}

// Clip returns a copy of the index restricted to [start, end] inclusive.
func (ci CandleIndex) Clip(start, end int64) CandleIndex {
	out := make(CandleIndex)
	for ts, c := range ci {
		if ts >= start && ts <= end {
			out[ts] = c
		}
	}
	return out
}
