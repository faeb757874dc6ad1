package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/polyledger/market"
)

func TestPolymarketRoundtrip(t *testing.T) {
	t.Parallel()

	want := Polymarket{
		Event: market.Event{
			Title:       "BTC up or down",
			Slug:        "btc-up-or-down",
			ConditionID: "0xcond",
			StartTS:     100,
			EndTS:       104,
			OutcomeA:    "Down",
			OutcomeB:    "Up",
		},
		Address: "0xabc",
		Trades: []market.Trade{
			{Timestamp: 101, Side: market.SideBuy, Outcome: "Down", Size: 10, Price: 0.40},
			{Timestamp: 103, Side: market.SideBuy, Outcome: "Up", Size: 4, Price: 0.55},
		},
	}

	path := filepath.Join(t.TempDir(), "polymarket.json")
	require.NoError(t, SavePolymarket(path, want))

	got, err := LoadPolymarket(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPolymarketMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadPolymarket(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "read snapshot")
}

func TestCandlesCSVRoundtrip(t *testing.T) {
	t.Parallel()

	want := []market.Candle{
		{Timestamp: 100, Open: 60000, High: 60010.5, Low: 59990.25, Close: 60005, Volume: 12.5},
		{Timestamp: 104, Open: 60005, High: 60123.45, Low: 60000, Close: 60123.45, Volume: 3.2},
	}

	path := filepath.Join(t.TempDir(), "klines.csv")
	require.NoError(t, SaveCandlesCSV(path, want))

	got, err := LoadCandlesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCandlesCSVEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "klines.csv")
	require.NoError(t, SaveCandlesCSV(path, nil))

	got, err := LoadCandlesCSV(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
