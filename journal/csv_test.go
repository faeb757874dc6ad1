package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/polyledger/ledger"
	"github.com/quantrail/polyledger/market"
)

func TestWriteLedgerCSV(t *testing.T) {
	t.Parallel()

	meta := Meta{
		Event: market.Event{
			Title:    "BTC up or down",
			Slug:     "btc-up-or-down",
			StartTS:  100,
			EndTS:    102,
			OutcomeA: "Down",
			OutcomeB: "Up",
		},
		Address:    "0xabc",
		Symbol:     "BTCUSDT",
		TradeCount: 2,
	}
	rows := []ledger.Row{
		{Timestamp: 100, Close: ledger.F(60000), Delta: ledger.F(0)},
		{
			Timestamp:   101,
			BuyASize:    ledger.F(10),
			BuyAPrice:   ledger.F(0.4),
			CumASize:    ledger.F(10),
			CumAAvgCost: ledger.F(0.4),
			NetExposure: ledger.F(-10),
			TargetPrice: ledger.F(0.6),
			HiddenLoss:  ledger.F(-4),
			TradeCount:  1,
		},
		{Timestamp: 102},
	}

	path := filepath.Join(t.TempDir(), "merged.csv")
	require.NoError(t, WriteLedgerCSV(path, meta, rows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	// Preamble: 7 comment lines, then header, then one line per second.
	require.Len(t, lines, 7+1+3)
	assert.Equal(t, "# Event: BTC up or down", lines[0])
	assert.Equal(t, "# Slug: btc-up-or-down", lines[1])
	assert.Equal(t, "# Address: 0xabc", lines[2])
	assert.Equal(t, "# Time Range: 1970-01-01 00:01:40 ~ 1970-01-01 00:01:42", lines[3])
	assert.Equal(t, "# Price Symbol: BTCUSDT", lines[4])
	assert.Equal(t, "# Total Trades: 2", lines[5])
	assert.Equal(t, "#", lines[6])

	r := csv.NewReader(strings.NewReader(strings.Join(lines[7:], "\n")))
	recs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 4)

	header := recs[0]
	assert.Equal(t, "btcusdt_close", header[2])
	assert.Equal(t, "buy_down_size", header[4])
	assert.Equal(t, "buy_up_size", header[6])
	assert.Equal(t, "cum_down_avg_cost", header[9])
	assert.Equal(t, "hidden_profit", header[17])
	assert.Equal(t, "trade_count", header[18])

	first := recs[1]
	assert.Equal(t, "100", first[0])
	assert.Equal(t, "1970-01-01 00:01:40", first[1])
	assert.Equal(t, "60000", first[2])
	assert.Equal(t, "0", first[3])
	assert.Equal(t, "", first[4]) // no fill this second
	assert.Equal(t, "", first[18])

	second := recs[2]
	assert.Equal(t, "10", second[4])
	assert.Equal(t, "0.4", second[5])
	assert.Equal(t, "-10", second[12])
	assert.Equal(t, "0.6", second[13])
	assert.Equal(t, "-4", second[16])
	assert.Equal(t, "1", second[18])

	// A second with no tick and no position: every optional cell is blank.
	third := recs[3]
	assert.Equal(t, "102", third[0])
	for _, cell := range third[2:] {
		assert.Equal(t, "", cell)
	}
}
