package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/quantrail/polyledger/market"
)

// DefaultBaseURL is Binance's public spot API.
const DefaultBaseURL = "https://api.binance.com"

// klinePageSize is the API's maximum candles per request.
const klinePageSize = 1000

// Client fetches reference price candles from the Binance spot API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Binance API client. An empty base URL falls back to
// the public endpoint; a nil logger disables progress logging.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// FetchKlines1s fetches 1-second klines covering [startTS, endTS] in unix
// seconds. The API caps responses at 1000 candles, so the walk advances one
// second past the last returned open time until the window is covered or a
// short page signals the end of available data.
func (c *Client) FetchKlines1s(ctx context.Context, symbol string, startTS, endTS int64) ([]market.Candle, error) {
	var all []market.Candle

	endMS := endTS * 1000
	for curMS := startTS * 1000; curMS < endMS; {
		page, err := c.fetchPage(ctx, symbol, curMS, endMS)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		c.log.Info("fetched klines", zap.Int("total", len(all)))

		curMS = page[len(page)-1].Timestamp*1000 + 1000
		if len(page) < klinePageSize {
			break
		}
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, symbol string, startMS, endMS int64) ([]market.Candle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", "1s")
	params.Set("startTime", strconv.FormatInt(startMS, 10))
	params.Set("endTime", strconv.FormatInt(endMS, 10))
	params.Set("limit", strconv.Itoa(klinePageSize))

	apiURL := fmt.Sprintf("%s/api/v3/klines?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Klines arrive as positional arrays:
	// [openTimeMS, open, high, low, close, volume, closeTimeMS, ...]
	var raw [][]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candles := make([]market.Candle, 0, len(raw))
	for _, k := range raw {
		candle, err := parseKline(k)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func parseKline(k []any) (market.Candle, error) {
	if len(k) < 6 {
		return market.Candle{}, fmt.Errorf("kline has %d fields, want at least 6", len(k))
	}

	openMS, ok := k[0].(float64)
	if !ok {
		return market.Candle{}, fmt.Errorf("kline open time %v is not a number", k[0])
	}

	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := k[i].(string)
		if !ok {
			return market.Candle{}, fmt.Errorf("kline field %d (%v) is not a string", i, k[i])
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("parse kline field %d: %w", i, err)
		}
		vals[i-1] = v
	}

	return market.Candle{
		Timestamp: int64(openMS) / 1000,
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
	}, nil
}
