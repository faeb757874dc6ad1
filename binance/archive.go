package binance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xyproto/unzip"

	"github.com/quantrail/polyledger/market"
)

// LoadArchive reads 1-second klines from a Binance Vision ZIP export
// (data.binance.vision kline archives), so a run can be reproduced without
// hitting the API. The archive holds one or more CSV files with positional
// kline columns matching the API layout.
func LoadArchive(zipPath string) ([]market.Candle, error) {
	dir, err := os.MkdirTemp("", "polyledger-klines-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(zipPath, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", zipPath, err)
	}

	var all []market.Candle
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".csv") {
			return nil
		}
		candles, err := loadKlineCSV(path)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		all = append(all, candles...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no kline rows found in %s", zipPath)
	}
	return all, nil
}

func loadKlineCSV(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var candles []market.Candle
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return candles, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 6 {
			continue
		}
		// Newer archives carry a header row; older ones do not.
		if rec[0] == "open_time" {
			continue
		}

		openRaw, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open time %q: %w", rec[0], err)
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
			Timestamp: normalizeSeconds(openRaw),
			Open:      vals[0],
			High:      vals[1],
			Low:       vals[2],
			Close:     vals[3],
			Volume:    vals[4],
		})
	}
}

// normalizeSeconds collapses archive timestamps to unix seconds. Vision
// exports switched from milliseconds to microseconds in 2025; magnitude
// tells them apart.
func normalizeSeconds(ts int64) int64 {
	switch {
	case ts >= 1e15: // microseconds
		return ts / 1_000_000
	case ts >= 1e12: // milliseconds
		return ts / 1_000
	default: // already seconds
		return ts
	}
}
