package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/crypto-tracker/internal/client"
	"github.com/yourorg/crypto-tracker/internal/config"
	"github.com/yourorg/crypto-tracker/internal/model"
	"github.com/yourorg/crypto-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newCoinRouter(t *testing.T, apiURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	apiClient := client.NewCoinGeckoClient(config.CoinGeckoConfig{
		BaseURL:    apiURL,
		Timeout:    2 * time.Second,
		VsCurrency: "usd",
		PerPage:    100,
	}, logger)
	priceService := service.NewPriceService(apiClient, nil, logger)

	h := NewCoinHandler(priceService, logger)
	router := gin.New()
	router.GET("/api/v1/coins", h.GetCoinList)
	router.GET("/api/v1/coins/:id/history", h.GetHistory)
	router.GET("/api/v1/prices", h.GetPrices)
	return router
}

func TestGetCoinListSubstitutesEmptyListOnAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	router := newCoinRouter(t, srv.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/coins", nil))

	// API failures are non-fatal: 200 with an empty list and a notice
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Coins []model.Coin `json:"coins"`
		Error string       `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Coins) != 0 || resp.Error == "" {
		t.Fatalf("resp = %+v, want empty list plus error notice", resp)
	}
}

func TestGetPricesEmptyIDs(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	router := newCoinRouter(t, srv.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if requests != 0 {
		t.Fatalf("empty ids reached the provider (%d requests)", requests)
	}
}

func TestGetHistoryRejectsBadDays(t *testing.T) {
	router := newCoinRouter(t, "http://127.0.0.1:0")

	for _, q := range []string{"days=0", "days=-7", "days=abc"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/coins/bitcoin/history?"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
}
