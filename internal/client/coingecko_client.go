package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/crypto-tracker/internal/config"
	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
)

// CoinGeckoClient handles communication with the CoinGecko price API
type CoinGeckoClient struct {
	baseURL    string
	vsCurrency string
	perPage    int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCoinGeckoClient creates a new CoinGecko API client. Every request is a
// single best-effort attempt with the configured timeout; there is no retry
// policy, the next refresh cycle simply tries again from scratch.
func NewCoinGeckoClient(cfg config.CoinGeckoConfig, logger *zap.Logger) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		vsCurrency: cfg.VsCurrency,
		perPage:    cfg.PerPage,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// GetCoinList retrieves the market listing: the top coins sorted by market
// cap descending, one page of perPage entries
func (c *CoinGeckoClient) GetCoinList(ctx context.Context) ([]model.Coin, error) {
	params := url.Values{}
	params.Add("vs_currency", c.vsCurrency)
	params.Add("order", "market_cap_desc")
	params.Add("per_page", strconv.Itoa(c.perPage))
	params.Add("page", "1")
	params.Add("sparkline", "false")

	reqURL := fmt.Sprintf("%s/coins/markets?%s", c.baseURL, params.Encode())

	var coins []model.Coin
	if err := c.getJSON(ctx, reqURL, &coins); err != nil {
		c.logger.Error("Failed to fetch coin list", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch coin list: %w", err)
	}

	return coins, nil
}

// GetSimplePrices retrieves current prices for the given coin IDs. An empty
// id set returns an empty snapshot without issuing a request, to avoid a
// malformed ids parameter.
func (c *CoinGeckoClient) GetSimplePrices(ctx context.Context, ids []string) (model.PriceSnapshot, error) {
	if len(ids) == 0 {
		return model.PriceSnapshot{}, nil
	}

	params := url.Values{}
	params.Add("ids", strings.Join(ids, ","))
	params.Add("vs_currencies", c.vsCurrency)
	params.Add("include_24hr_change", "true")
	params.Add("include_market_cap", "true")
	params.Add("include_24hr_vol", "true")

	reqURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	var snapshot model.PriceSnapshot
	if err := c.getJSON(ctx, reqURL, &snapshot); err != nil {
		c.logger.Error("Failed to fetch prices",
			zap.Error(err),
			zap.Int("id_count", len(ids)))
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	return snapshot, nil
}

// GetMarketChart retrieves the daily historical price series for a coin.
// Provider timestamps are millisecond epochs and are converted to local
// time.Time values.
func (c *CoinGeckoClient) GetMarketChart(ctx context.Context, id string, days int) ([]model.PricePoint, error) {
	params := url.Values{}
	params.Add("vs_currency", c.vsCurrency)
	params.Add("days", strconv.Itoa(days))
	params.Add("interval", "daily")

	reqURL := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(id), params.Encode())

	var chart struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := c.getJSON(ctx, reqURL, &chart); err != nil {
		c.logger.Error("Failed to fetch market chart",
			zap.Error(err),
			zap.String("coin_id", id),
			zap.Int("days", days))
		return nil, fmt.Errorf("failed to fetch market chart for %s: %w", id, err)
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for i, raw := range chart.Prices {
		if len(raw) < 2 {
			c.logger.Warn("Skipping malformed price point",
				zap.Int("index", i),
				zap.String("coin_id", id))
			continue
		}

		// raw[0] is a millisecond epoch timestamp
		points = append(points, model.PricePoint{
			Time:  time.UnixMilli(int64(raw[0])),
			Price: raw[1],
		})
	}

	return points, nil
}

// getJSON performs a single GET request and decodes the JSON response body
// into out
func (c *CoinGeckoClient) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Calling CoinGecko API", zap.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("CoinGecko API returned status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
