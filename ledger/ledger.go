package ledger

import (
	"fmt"
	"math"

	"github.com/quantrail/polyledger/market"
)

// Window is the closed event window [Start, End] in unix seconds.
type Window struct {
	Start int64
	End   int64
}

// Seconds returns the number of rows a build over this window produces.
func (w Window) Seconds() int64 {
	return w.End - w.Start + 1
}

// Row is one second of the position ledger. Optional fields stay unset
// until the corresponding quantity is computable: average costs require a
// position, the price delta requires an anchor, hidden P&L requires both.
type Row struct {
	Timestamp int64

	// Reference price series.
	Close Float
	Delta Float // close minus window anchor, 2dp

	// Fills observed this second, BUY side only.
	BuyASize  Float
	BuyAPrice Float // unweighted mean of trade prices this second
	BuyBSize  Float
	BuyBPrice Float

	// Running position.
	CumASize    Float
	CumAAvgCost Float
	CumBSize    Float
	CumBAvgCost Float

	// Exposure and projected P&L.
	NetExposure  Float // cumulative(B) - cumulative(A)
	TargetPrice  Float
	HedgedSize   Float
	HedgedPrice  Float
	HiddenLoss   Float
	HiddenProfit Float

	TradeCount int
}

// accumulator carries the walk state across seconds. Accumulators hold full
// precision; rounding happens only when a Row is emitted.
type accumulator struct {
	anchorSet bool
	anchor    float64

	cumSizeA float64
	cumCostA float64
	cumSizeB float64
	cumCostB float64
}

// Build walks the closed window once, in increasing second order, consuming
// the indexed reference prices and grouped trades, and emits one Row per
// second. Missing prices and trade-free seconds are normal; the only failure
// is an inverted window.
//
// Accounting is BUY-only over the event's two outcome labels. SELL fills and
// unrecognized labels never touch the running position; this reproduces the
// reference accounting (the studied address never sells) rather than being a
// modeling choice.
func Build(w Window, ev market.Event, prices market.CandleIndex, trades market.TradeGroups) ([]Row, error) {
	if w.Start > w.End {
		return nil, fmt.Errorf("ledger: inverted window [%d, %d]", w.Start, w.End)
	}

	rows := make([]Row, 0, w.Seconds())
	var acc accumulator
	for ts := w.Start; ts <= w.End; ts++ {
		rows = append(rows, acc.step(ts, ev, prices, trades))
	}
	return rows, nil
}

func (acc *accumulator) step(ts int64, ev market.Event, prices market.CandleIndex, trades market.TradeGroups) Row {
	row := Row{Timestamp: ts}

	candle, haveCandle := prices[ts]
	group := trades.At(ts)
	row.TradeCount = len(group)

	if haveCandle {
		row.Close = F(candle.Close)
		if !acc.anchorSet {
			acc.anchor = candle.Close
			acc.anchorSet = true
		}
		row.Delta = F(candle.Close - acc.anchor).Round(2)
	}

	fillA := sumFills(group, ev.OutcomeA)
	fillB := sumFills(group, ev.OutcomeB)

	if fillA.count > 0 {
		row.BuyAPrice = F(fillA.meanPrice()).Round(4)
	}
	if fillA.size > 0 {
		row.BuyASize = F(fillA.size)
		acc.cumCostA += fillA.size * fillA.meanPrice()
		acc.cumSizeA += fillA.size
	}
	if fillB.count > 0 {
		row.BuyBPrice = F(fillB.meanPrice()).Round(4)
	}
	if fillB.size > 0 {
		row.BuyBSize = F(fillB.size)
		acc.cumCostB += fillB.size * fillB.meanPrice()
		acc.cumSizeB += fillB.size
	}

	var avgA, avgB Float
	if acc.cumSizeA > 0 {
		row.CumASize = F(acc.cumSizeA)
		avgA = F(acc.cumCostA / acc.cumSizeA)
		row.CumAAvgCost = avgA.Round(4)
	}
	if acc.cumSizeB > 0 {
		row.CumBSize = F(acc.cumSizeB)
		avgB = F(acc.cumCostB / acc.cumSizeB)
		row.CumBAvgCost = avgB.Round(4)
	}

	if acc.cumSizeA > 0 || acc.cumSizeB > 0 {
		net := acc.cumSizeB - acc.cumSizeA
		row.NetExposure = F(net)

		// The side that loses if the position settles against the net
		// direction: more A than B means A's average cost sets the target.
		var target Float
		if net < 0 {
			if avgA.Set {
				target = F(1 - avgA.Value)
			}
		} else {
			if avgB.Set {
				target = F(1 - avgB.Value)
			}
		}
		row.TargetPrice = target.Round(4)

		hedged := min(acc.cumSizeA, acc.cumSizeB)
		row.HedgedSize = F(hedged)
		if avgA.Set && avgB.Set {
			hedgedPrice := avgA.Value + avgB.Value
			row.HedgedPrice = F(hedgedPrice).Round(4)
			row.HiddenProfit = F(hedged * (1 - hedgedPrice)).Round(4)
		}
		if target.Set {
			row.HiddenLoss = F(-math.Abs(net) * (1 - target.Value)).Round(4)
		}
	}

	return row
}

// fill aggregates the BUY trades for one outcome within a second.
type fill struct {
	size     float64
	priceSum float64
	count    int
}

func (f fill) meanPrice() float64 {
	if f.count == 0 {
		return 0
	}
	return f.priceSum / float64(f.count)
}

func sumFills(group []market.Trade, outcome string) fill {
	var f fill
	for _, t := range group {
		if t.Side != market.SideBuy || t.Outcome != outcome {
			continue
		}
		f.size += t.Size
		f.priceSum += t.Price
		f.count++
	}
	return f
}
