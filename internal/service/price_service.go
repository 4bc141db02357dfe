package service

import (
	"context"
	"encoding/json"

	"github.com/yourorg/crypto-tracker/internal/cache"
	"github.com/yourorg/crypto-tracker/internal/client"
	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
)

// PriceService handles price data operations against the provider API
type PriceService struct {
	client *client.CoinGeckoClient
	cache  *cache.CoinListCache // nil when the cache is disabled
	logger *zap.Logger
}

// NewPriceService creates a new price service. cache may be nil, in which
// case every coin list request goes to the provider.
func NewPriceService(apiClient *client.CoinGeckoClient, listCache *cache.CoinListCache, logger *zap.Logger) *PriceService {
	return &PriceService{
		client: apiClient,
		cache:  listCache,
		logger: logger,
	}
}

// GetCoinList retrieves the market listing, served from the Redis cache
// when available. Cache contents are advisory only: any cache problem
// falls through to a live fetch.
func (s *PriceService) GetCoinList(ctx context.Context) ([]model.Coin, error) {
	if s.cache != nil {
		if cached := s.cache.Get(ctx); cached != "" {
			var coins []model.Coin
			if err := json.Unmarshal([]byte(cached), &coins); err == nil {
				s.logger.Debug("Coin list served from cache", zap.Int("count", len(coins)))
				return coins, nil
			}
			s.logger.Warn("Discarding unreadable cached coin list")
		}
	}

	coins, err := s.client.GetCoinList(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(coins); err == nil {
			s.cache.Set(ctx, string(data))
		}
	}

	return coins, nil
}

// GetPrices retrieves a fresh price snapshot for the given coin IDs. The
// snapshot is never cached; every refresh cycle replaces it wholesale.
func (s *PriceService) GetPrices(ctx context.Context, ids []string) (model.PriceSnapshot, error) {
	return s.client.GetSimplePrices(ctx, ids)
}

// GetHistory retrieves the daily historical series for a coin
func (s *PriceService) GetHistory(ctx context.Context, id string, days int) ([]model.PricePoint, error) {
	return s.client.GetMarketChart(ctx, id, days)
}
