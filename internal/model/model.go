package model

import (
	"time"
)

// Coin represents a cryptocurrency as listed by the price provider's
// market listing (sorted by market cap, 100 coins per page)
type Coin struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	MarketCap     float64 `json:"market_cap,omitempty"`
	MarketCapRank int     `json:"market_cap_rank,omitempty"`
}

// PriceQuote holds the current quote for a single coin in the fixed
// vs-currency (USD). The market cap and 24h fields are optional on the
// provider side.
type PriceQuote struct {
	USD          float64  `json:"usd"`
	USDMarketCap *float64 `json:"usd_market_cap,omitempty"`
	USD24hVol    *float64 `json:"usd_24h_vol,omitempty"`
	USD24hChange *float64 `json:"usd_24h_change,omitempty"`
}

// PriceSnapshot maps coin IDs to their current quotes. A snapshot is
// replaced wholesale on every refresh cycle, never mutated in place.
type PriceSnapshot map[string]PriceQuote

// PricePoint is one point of a historical daily price series
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// RefreshResult is the outcome of one fetch-evaluate-notify-log cycle,
// published to dashboard clients once the cycle completes
type RefreshResult struct {
	Prices      PriceSnapshot    `json:"prices"`
	Triggered   []TriggeredAlert `json:"triggered_alerts"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}

// RefreshStatus reports the scheduler state to the dashboard
type RefreshStatus struct {
	Interval      int       `json:"interval_seconds"`
	LastRefreshAt time.Time `json:"last_refresh_at"`
}
