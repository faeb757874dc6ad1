package market

// Candle represents OHLC (Open, High, Low, Close) candlestick data for a
// single second of the reference price series.
type Candle struct {
	Timestamp int64 // unix seconds for candle open
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}
