package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
)

// ErrInvalidInterval is returned when a refresh interval outside the
// supported set is requested
var ErrInvalidInterval = errors.New("refresh interval must be one of 30, 60, 120 or 300 seconds")

// allowed refresh intervals, in seconds
var allowedIntervals = map[int]bool{30: true, 60: true, 120: true, 300: true}

// TrackerService holds the session state of the tracker (tracked coin
// selection, refresh interval, last refresh time) and runs the
// fetch-evaluate-notify-log cycle. All network and mail work happens
// inside RunCycle; the state here is plain process-scoped mutable data
// guarded by a mutex.
type TrackerService struct {
	priceService *PriceService
	alertService *AlertService
	logger       *zap.Logger

	mu          sync.RWMutex
	trackedIDs  []string
	interval    time.Duration
	lastRefresh time.Time
}

// NewTrackerService creates a new tracker service with the given initial
// refresh interval
func NewTrackerService(priceService *PriceService, alertService *AlertService, interval time.Duration, logger *zap.Logger) *TrackerService {
	return &TrackerService{
		priceService: priceService,
		alertService: alertService,
		interval:     interval,
		logger:       logger,
	}
}

// RunCycle executes one full refresh cycle: fetch a fresh snapshot for the
// tracked coins, evaluate every alert rule against it, notify and log the
// satisfied ones. A fetch failure ends the cycle with an empty snapshot;
// nothing here is fatal and the next cycle starts from scratch.
func (s *TrackerService) RunCycle(ctx context.Context) model.RefreshResult {
	ids := s.TrackedIDs()

	snapshot, err := s.priceService.GetPrices(ctx, ids)
	if err != nil {
		// callers tolerate an empty snapshot at every call site
		s.logger.Warn("Refresh cycle fetch failed", zap.Error(err))
		snapshot = model.PriceSnapshot{}
	}

	triggered := s.alertService.CheckAlerts(snapshot)

	now := time.Now()
	s.mu.Lock()
	s.lastRefresh = now
	s.mu.Unlock()

	s.logger.Debug("Refresh cycle completed",
		zap.Int("tracked", len(ids)),
		zap.Int("quoted", len(snapshot)),
		zap.Int("triggered", len(triggered)))

	return model.RefreshResult{
		Prices:      snapshot,
		Triggered:   triggered,
		RefreshedAt: now,
	}
}

// TrackedIDs returns the current tracked coin selection
func (s *TrackerService) TrackedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.trackedIDs))
	copy(ids, s.trackedIDs)
	return ids
}

// SetTrackedIDs replaces the tracked coin selection
func (s *TrackerService) SetTrackedIDs(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackedIDs = append([]string(nil), ids...)
}

// Interval returns the current refresh interval
func (s *TrackerService) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// SetIntervalSeconds changes the refresh interval; only the dashboard's
// predefined choices are accepted. Takes effect from the next wait.
func (s *TrackerService) SetIntervalSeconds(seconds int) error {
	if !allowedIntervals[seconds] {
		return ErrInvalidInterval
	}

	s.mu.Lock()
	s.interval = time.Duration(seconds) * time.Second
	s.mu.Unlock()

	s.logger.Info("Refresh interval changed", zap.Int("seconds", seconds))
	return nil
}

// Status reports the scheduler-facing session state
func (s *TrackerService) Status() model.RefreshStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.RefreshStatus{
		Interval:      int(s.interval / time.Second),
		LastRefreshAt: s.lastRefresh,
	}
}
