package journal

import (
	"time"

	"github.com/quantrail/polyledger/ledger"
)

// Run records one completed analysis of an address over an event window,
// together with the evaluator's headline metrics.
type Run struct {
	RunID   string
	Created time.Time

	Slug    string
	Address string
	Title   string
	Symbol  string
	StartTS int64
	EndTS   int64

	TradeCount    int
	DroppedTrades int

	ActualOutcome string
	TotalCost     float64
	Payout        float64
	Profit        float64
	ROI           float64
	DensityPct    float64
	Bias          string
	CorrectSide   bool
}

// Journal persists analysis runs and their per-second ledgers.
type Journal interface {
	RecordRun(Run) error
	RecordRows(runID string, rows []ledger.Row) error
	Close() error
}
