package market

// Trade sides as reported by the Polymarket data API.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Trade is a single fill for one address in one market. Probability prices
// live in [0,1]; size is in shares. Trades are immutable once fetched and
// carry no intra-second ordering guarantee.
type Trade struct {
	Timestamp int64   `json:"timestamp"`
	Side      string  `json:"side"`
	Outcome   string  `json:"outcome"`
	Size      float64 `json:"size"`
	Price     float64 `json:"price"`
}
