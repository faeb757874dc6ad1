// Package snapshot persists fetched API data so the build and analyze
// stages can run offline and reproducibly.
package snapshot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/quantrail/polyledger/market"
)

// Polymarket bundles everything fetched from Polymarket for one run.
type Polymarket struct {
	Event   market.Event   `json:"event"`
	Address string         `json:"address"`
	Trades  []market.Trade `json:"trades"`
}

// SavePolymarket writes the event/trades bundle as indented JSON.
func SavePolymarket(path string, snap Polymarket) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadPolymarket reads a bundle written by SavePolymarket.
func LoadPolymarket(path string) (Polymarket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Polymarket{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Polymarket
	if err := json.Unmarshal(data, &snap); err != nil {
		return Polymarket{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}

var candleHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

// SaveCandlesCSV writes the raw candle series as fetched, one row per tick.
func SaveCandlesCSV(path string, candles []market.Candle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(candleHeader); err != nil {
		return err
	}
	for _, c := range candles {
		rec := []string{
			strconv.FormatInt(c.Timestamp, 10),
			ff(c.Open),
			ff(c.High),
			ff(c.Low),
			ff(c.Close),
			ff(c.Volume),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// LoadCandlesCSV reads a series written by SaveCandlesCSV.
func LoadCandlesCSV(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	if _, err := r.Read(); err != nil { // header
		return nil, err
	}

	var candles []market.Candle
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return candles, nil
		}
		if err != nil {
			return nil, err
		}

		ts, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", rec[0], err)
		}
		vals := make([]float64, 5)
		for i := 1; i <= 5; i++ {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf("parse field %d %q: %w", i, rec[i], err)
			}
			vals[i-1] = v
		}

		candles = append(candles, market.Candle{
			Timestamp: ts,
			Open:      vals[0],
			High:      vals[1],
			Low:       vals[2],
			Close:     vals[3],
			Volume:    vals[4],
		})
	}
}

func ff(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
