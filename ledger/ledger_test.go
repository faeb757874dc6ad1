package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/polyledger/market"
)

var testEvent = market.Event{
	Title:    "BTC up or down",
	Slug:     "btc-up-or-down",
	StartTS:  100,
	EndTS:    104,
	OutcomeA: "Down",
	OutcomeB: "Up",
}

func testWindow() Window {
	return Window{Start: testEvent.StartTS, End: testEvent.EndTS}
}

func TestBuildInvertedWindow(t *testing.T) {
	t.Parallel()

	_, err := Build(Window{Start: 10, End: 9}, testEvent, nil, market.GroupTrades(nil))
	assert.Error(t, err)
}

func TestBuildRowCoverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		window Window
		want   int
	}{
		{"single_second", Window{Start: 5, End: 5}, 1},
		{"small_window", Window{Start: 100, End: 104}, 5},
		{"hour_window", Window{Start: 0, End: 3599}, 3600},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows, err := Build(tt.window, testEvent, nil, market.GroupTrades(nil))
			require.NoError(t, err)
			require.Len(t, rows, tt.want)

			for i, row := range rows {
				assert.Equal(t, tt.window.Start+int64(i), row.Timestamp)
			}
		})
	}
}

func TestBuildNoTrades(t *testing.T) {
	t.Parallel()

	rows, err := Build(testWindow(), testEvent, nil, market.GroupTrades(nil))
	require.NoError(t, err)

	for _, row := range rows {
		assert.False(t, row.CumASize.Set)
		assert.False(t, row.CumBSize.Set)
		assert.False(t, row.NetExposure.Set)
		assert.False(t, row.HiddenLoss.Set)
		assert.False(t, row.HiddenProfit.Set)
		assert.Equal(t, 0, row.TradeCount)
	}
}

func TestBuildPositionExample(t *testing.T) {
	t.Parallel()

	trades := market.GroupTrades([]market.Trade{
		{Timestamp: 101, Side: market.SideBuy, Outcome: "Down", Size: 10, Price: 0.40},
		{Timestamp: 103, Side: market.SideBuy, Outcome: "Up", Size: 4, Price: 0.55},
	})

	rows, err := Build(testWindow(), testEvent, nil, trades)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	// t=100: nothing yet
	assert.False(t, rows[0].CumASize.Set)
	assert.False(t, rows[0].NetExposure.Set)

	// t=101: the Down fill lands
	r101 := rows[1]
	assert.Equal(t, F(10.0), r101.CumASize)
	assert.Equal(t, F(0.40), r101.CumAAvgCost)
	assert.Equal(t, F(10.0), r101.BuyASize)
	assert.Equal(t, F(0.40), r101.BuyAPrice)
	assert.False(t, r101.CumBSize.Set)
	assert.Equal(t, F(-10.0), r101.NetExposure)
	assert.Equal(t, F(0.60), r101.TargetPrice)
	assert.Equal(t, F(-4.0), r101.HiddenLoss)
	assert.Equal(t, F(0.0), r101.HedgedSize)
	assert.False(t, r101.HedgedPrice.Set)
	assert.False(t, r101.HiddenProfit.Set)
	assert.Equal(t, 1, r101.TradeCount)

	// t=102: position carries forward unchanged
	r102 := rows[2]
	assert.Equal(t, F(10.0), r102.CumASize)
	assert.Equal(t, 0, r102.TradeCount)

	// t=103: the Up fill hedges part of the position
	r103 := rows[3]
	assert.Equal(t, F(4.0), r103.CumBSize)
	assert.Equal(t, F(0.55), r103.CumBAvgCost)
	assert.Equal(t, F(-6.0), r103.NetExposure)
	assert.Equal(t, F(0.60), r103.TargetPrice)
	assert.Equal(t, F(-2.40), r103.HiddenLoss)
	assert.Equal(t, F(4.0), r103.HedgedSize)
	assert.Equal(t, F(0.95), r103.HedgedPrice)
	assert.Equal(t, F(0.20), r103.HiddenProfit)
}

func TestBuildAnchorAndDelta(t *testing.T) {
	t.Parallel()

	prices := market.IndexCandles([]market.Candle{
		{Timestamp: 100, Close: 60000.00},
		{Timestamp: 104, Close: 60123.45},
	})

	rows, err := Build(testWindow(), testEvent, prices, market.GroupTrades(nil))
	require.NoError(t, err)

	assert.Equal(t, F(60000.00), rows[0].Close)
	assert.Equal(t, F(0.0), rows[0].Delta)

	// No tick, no close, no delta: absence is not zero.
	for _, row := range rows[1:4] {
		assert.False(t, row.Close.Set)
		assert.False(t, row.Delta.Set)
	}

	assert.Equal(t, F(60123.45), rows[4].Close)
	assert.Equal(t, F(123.45), rows[4].Delta)
}

func TestBuildAnchorSetOnce(t *testing.T) {
	t.Parallel()

	// Anchor is the first observed close even when the window's first
	// seconds have no ticks.
	prices := market.IndexCandles([]market.Candle{
		{Timestamp: 102, Close: 500.0},
		{Timestamp: 103, Close: 502.5},
	})

	rows, err := Build(testWindow(), testEvent, prices, market.GroupTrades(nil))
	require.NoError(t, err)

	assert.False(t, rows[0].Delta.Set)
	assert.Equal(t, F(0.0), rows[2].Delta)
	assert.Equal(t, F(2.5), rows[3].Delta)
}

func TestBuildIgnoresSellsAndUnknownOutcomes(t *testing.T) {
	t.Parallel()

	trades := market.GroupTrades([]market.Trade{
		{Timestamp: 101, Side: market.SideSell, Outcome: "Down", Size: 5, Price: 0.50},
		{Timestamp: 101, Side: market.SideBuy, Outcome: "Maybe", Size: 5, Price: 0.50},
	})

	rows, err := Build(testWindow(), testEvent, nil, trades)
	require.NoError(t, err)

	r := rows[1]
	assert.False(t, r.CumASize.Set)
	assert.False(t, r.CumBSize.Set)
	assert.False(t, r.NetExposure.Set)
	// The trades still happened this second, they just don't move position.
	assert.Equal(t, 2, r.TradeCount)
}

func TestBuildUnweightedMeanWithinSecond(t *testing.T) {
	t.Parallel()

	// Two fills in the same second: the per-second entry price is the plain
	// mean of trade prices, not size-weighted.
	trades := market.GroupTrades([]market.Trade{
		{Timestamp: 101, Side: market.SideBuy, Outcome: "Up", Size: 1, Price: 0.40},
		{Timestamp: 101, Side: market.SideBuy, Outcome: "Up", Size: 9, Price: 0.60},
	})

	rows, err := Build(testWindow(), testEvent, nil, trades)
	require.NoError(t, err)

	r := rows[1]
	assert.Equal(t, F(10.0), r.BuyBSize)
	assert.Equal(t, F(0.50), r.BuyBPrice)
	// Cumulative cost uses the same mean: 10 * 0.50.
	assert.Equal(t, F(0.50), r.CumBAvgCost)
}

func TestBuildCumulativeMonotonic(t *testing.T) {
	t.Parallel()

	trades := market.GroupTrades([]market.Trade{
		{Timestamp: 100, Side: market.SideBuy, Outcome: "Up", Size: 2, Price: 0.50},
		{Timestamp: 102, Side: market.SideBuy, Outcome: "Up", Size: 3, Price: 0.70},
		{Timestamp: 103, Side: market.SideBuy, Outcome: "Down", Size: 1, Price: 0.30},
		{Timestamp: 104, Side: market.SideBuy, Outcome: "Up", Size: 1, Price: 0.90},
	})

	rows, err := Build(testWindow(), testEvent, nil, trades)
	require.NoError(t, err)

	prevA, prevB := 0.0, 0.0
	for _, row := range rows {
		a, b := prevA, prevB
		if row.CumASize.Set {
			a = row.CumASize.Value
		}
		if row.CumBSize.Set {
			b = row.CumBSize.Value
		}
		assert.GreaterOrEqual(t, a, prevA)
		assert.GreaterOrEqual(t, b, prevB)
		prevA, prevB = a, b
	}

	// Volume-weighted average across seconds: (2*0.5 + 3*0.7 + 1*0.9) / 6.
	assert.Equal(t, F(0.6667), rows[4].CumBAvgCost)
}

func TestBuildIdempotent(t *testing.T) {
	t.Parallel()

	prices := market.IndexCandles([]market.Candle{
		{Timestamp: 100, Close: 60000},
		{Timestamp: 103, Close: 60001},
	})
	trades := market.GroupTrades([]market.Trade{
		{Timestamp: 101, Side: market.SideBuy, Outcome: "Down", Size: 10, Price: 0.40},
		{Timestamp: 103, Side: market.SideBuy, Outcome: "Up", Size: 4, Price: 0.55},
	})

	first, err := Build(testWindow(), testEvent, prices, trades)
	require.NoError(t, err)
	second, err := Build(testWindow(), testEvent, prices, trades)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildZeroSizeFill(t *testing.T) {
	t.Parallel()

	// A zero-size fill carries a price but opens no position.
	trades := market.GroupTrades([]market.Trade{
		{Timestamp: 101, Side: market.SideBuy, Outcome: "Up", Size: 0, Price: 0.45},
	})

	rows, err := Build(testWindow(), testEvent, nil, trades)
	require.NoError(t, err)

	r := rows[1]
	assert.Equal(t, F(0.45), r.BuyBPrice)
	assert.False(t, r.BuyBSize.Set)
	assert.False(t, r.CumBSize.Set)
	assert.False(t, r.NetExposure.Set)
}
