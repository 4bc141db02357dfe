package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourorg/crypto-tracker/internal/client"
	"github.com/yourorg/crypto-tracker/internal/config"
	"github.com/yourorg/crypto-tracker/internal/repository"

	"go.uber.org/zap"
)

func newTestTracker(t *testing.T, baseURL string, n *stubNotifier) *TrackerService {
	t.Helper()
	logger := zap.NewNop()

	apiClient := client.NewCoinGeckoClient(config.CoinGeckoConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		VsCurrency: "usd",
		PerPage:    100,
	}, logger)

	priceService := NewPriceService(apiClient, nil, logger)
	ruleRepo := repository.NewAlertRuleRepository(logger)
	eventRepo := repository.NewAlertEventRepository(filepath.Join(t.TempDir(), "alerts.log"), logger)
	alertService := NewAlertService(ruleRepo, eventRepo, n, logger)

	return NewTrackerService(priceService, alertService, 60*time.Second, logger)
}

func TestRunCycleFetchesEvaluatesAndTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{"usd":65000}}`))
	}))
	defer srv.Close()

	n := &stubNotifier{outcome: true}
	tracker := newTestTracker(t, srv.URL, n)
	tracker.SetTrackedIDs([]string{"bitcoin"})

	result := tracker.RunCycle(context.Background())

	if result.Prices["bitcoin"].USD != 65000 {
		t.Fatalf("snapshot = %+v", result.Prices)
	}
	if result.RefreshedAt.IsZero() {
		t.Fatal("RefreshedAt not set")
	}
	if got := tracker.Status().LastRefreshAt; !got.Equal(result.RefreshedAt) {
		t.Fatalf("status last refresh %v != cycle %v", got, result.RefreshedAt)
	}
}

func TestRunCycleWithNoTrackedCoinsSkipsRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tracker := newTestTracker(t, srv.URL, &stubNotifier{})
	result := tracker.RunCycle(context.Background())

	if requests != 0 {
		t.Fatalf("empty selection issued %d requests", requests)
	}
	if len(result.Prices) != 0 || len(result.Triggered) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunCycleSubstitutesEmptySnapshotOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tracker := newTestTracker(t, srv.URL, &stubNotifier{})
	tracker.SetTrackedIDs([]string{"bitcoin"})

	result := tracker.RunCycle(context.Background())
	if len(result.Prices) != 0 {
		t.Fatalf("failed fetch must yield an empty snapshot, got %+v", result.Prices)
	}
	if result.RefreshedAt.IsZero() {
		t.Fatal("cycle must complete despite fetch failure")
	}
}

func TestSetIntervalSeconds(t *testing.T) {
	tracker := NewTrackerService(nil, nil, 60*time.Second, zap.NewNop())

	for _, seconds := range []int{30, 60, 120, 300} {
		if err := tracker.SetIntervalSeconds(seconds); err != nil {
			t.Errorf("SetIntervalSeconds(%d): %v", seconds, err)
		}
		if got := tracker.Interval(); got != time.Duration(seconds)*time.Second {
			t.Errorf("Interval = %v after setting %ds", got, seconds)
		}
	}

	for _, seconds := range []int{0, -30, 45, 600} {
		if err := tracker.SetIntervalSeconds(seconds); err == nil {
			t.Errorf("SetIntervalSeconds(%d) accepted an unsupported interval", seconds)
		}
	}
}

func TestTrackedIDsReturnsCopy(t *testing.T) {
	tracker := NewTrackerService(nil, nil, 60*time.Second, zap.NewNop())
	tracker.SetTrackedIDs([]string{"bitcoin", "ethereum"})

	ids := tracker.TrackedIDs()
	ids[0] = "mutated"

	if got := tracker.TrackedIDs(); got[0] != "bitcoin" {
		t.Fatalf("tracked ids mutated through returned slice: %v", got)
	}
}
