package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yourorg/crypto-tracker/internal/model"
	"github.com/yourorg/crypto-tracker/internal/service"
	"github.com/yourorg/crypto-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CoinHandler handles price data HTTP requests.
//
// Price API failures are non-fatal: the response carries an empty result
// plus a user-visible error message, and the dashboard keeps running
// until the next refresh.
type CoinHandler struct {
	priceService *service.PriceService
	logger       *zap.Logger
}

// NewCoinHandler creates a new coin handler
func NewCoinHandler(priceService *service.PriceService, logger *zap.Logger) *CoinHandler {
	return &CoinHandler{
		priceService: priceService,
		logger:       logger,
	}
}

// GetCoinList handles retrieving the market listing
// GET /api/v1/coins
func (h *CoinHandler) GetCoinList(c *gin.Context) {
	coins, err := h.priceService.GetCoinList(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get coin list", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"coins": []model.Coin{},
			"error": "Error fetching crypto list",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// GetPrices handles retrieving a fresh price snapshot for a set of coins
// GET /api/v1/prices?ids=bitcoin,ethereum
func (h *CoinHandler) GetPrices(c *gin.Context) {
	var ids []string
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	snapshot, err := h.priceService.GetPrices(c.Request.Context(), ids)
	if err != nil {
		h.logger.Error("Failed to get prices", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"prices": model.PriceSnapshot{},
			"error":  "Error fetching price data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": snapshot})
}

// GetHistory handles retrieving the historical daily series for one coin
// GET /api/v1/coins/:id/history?days=7
func (h *CoinHandler) GetHistory(c *gin.Context) {
	id := c.Param("id")

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid days parameter")
		return
	}

	points, err := h.priceService.GetHistory(c.Request.Context(), id, days)
	if err != nil {
		h.logger.Error("Failed to get history", zap.Error(err), zap.String("coin_id", id))
		c.JSON(http.StatusOK, gin.H{
			"points": []model.PricePoint{},
			"error":  "Error fetching historical data for " + id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}
