package polymarket

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

const (
	// DefaultGammaURL serves event metadata.
	DefaultGammaURL = "https://gamma-api.polymarket.com"
	// DefaultDataURL serves per-address trade history.
	DefaultDataURL = "https://data-api.polymarket.com"

	// tradePageSize is the data API's maximum page size.
	tradePageSize = 100
)

// Client talks to the Polymarket gamma and data APIs.
type Client struct {
	gammaURL   string
	dataURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Polymarket API client. Empty URLs fall back to the
// public endpoints; a nil logger disables progress logging.
func NewClient(gammaURL, dataURL string, log *zap.Logger) *Client {
	if gammaURL == "" {
		gammaURL = DefaultGammaURL
	}
	if dataURL == "" {
		dataURL = DefaultDataURL
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		gammaURL: gammaURL,
		dataURL:  dataURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// apiEvent is the subset of the gamma event payload we consume.
type apiEvent struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	StartTime string `json:"startTime"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Markets   []struct {
		ConditionID string `json:"conditionId"`
	} `json:"markets"`
}

// FetchEvent resolves an event slug to its descriptor. Outcome labels are
// not part of the gamma payload we rely on; the caller assigns them from
// configuration.
func (c *Client) FetchEvent(ctx context.Context, slug string) (market.Event, error) {
	apiURL := fmt.Sprintf("%s/events/slug/%s", c.gammaURL, url.PathEscape(slug))

	var ev apiEvent
	if err := c.getJSON(ctx, apiURL, &ev); err != nil {
		return market.Event{}, fmt.Errorf("fetch event %q: %w", slug, err)
	}
	if len(ev.Markets) == 0 {
		return market.Event{}, fmt.Errorf("event %q has no markets", slug)
	}

	startStr := ev.StartTime
	if startStr == "" {
		startStr = ev.StartDate
	}
	startTS, err := parseEventTime(startStr)
	if err != nil {
		return market.Event{}, fmt.Errorf("event %q start time: %w", slug, err)
	}
	endTS, err := parseEventTime(ev.EndDate)
	if err != nil {
		return market.Event{}, fmt.Errorf("event %q end time: %w", slug, err)
	}

	return market.Event{
		Title:       ev.Title,
		Slug:        slug,
		ConditionID: ev.Markets[0].ConditionID,
		StartTS:     startTS,
		EndTS:       endTS,
	}, nil
}

// apiTrade is one fill as returned by the data API.
type apiTrade struct {
	Timestamp int64   `json:"timestamp"`
	Side      string  `json:"side"`
	Outcome   string  `json:"outcome"`
	Size      float64 `json:"size"`
	Price     float64 `json:"price"`
}

// FetchTrades pages through the full trade history of one address in one
// market. The data API caps pages at 100 records; a short page ends the
// walk.
func (c *Client) FetchTrades(ctx context.Context, address, conditionID string) ([]market.Trade, error) {
	var all []market.Trade

	for offset := 0; ; offset += tradePageSize {
		params := url.Values{}
		params.Set("user", address)
		params.Set("market", conditionID)
		params.Set("limit", strconv.Itoa(tradePageSize))
		params.Set("offset", strconv.Itoa(offset))

		apiURL := fmt.Sprintf("%s/trades?%s", c.dataURL, params.Encode())

		var page []apiTrade
		if err := c.getJSON(ctx, apiURL, &page); err != nil {
			return nil, fmt.Errorf("fetch trades offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for _, t := range page {
			all = append(all, market.Trade{
				Timestamp: t.Timestamp,
				Side:      t.Side,
				Outcome:   t.Outcome,
				Size:      t.Size,
				Price:     t.Price,
			})
		}
		c.log.Info("fetched trades", zap.Int("total", len(all)))

		if len(page) < tradePageSize {
			break
		}
	}

	return all, nil
}

func (c *Client) getJSON(ctx context.Context, apiURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseEventTime converts the gamma API's RFC3339 timestamps (e.g.
// 2025-12-28T11:15:00Z) to unix seconds.
func parseEventTime(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
