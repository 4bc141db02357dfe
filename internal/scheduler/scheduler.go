// Package scheduler drives the periodic refresh cycle. The whole flow
// (fetch, evaluate, notify, log, publish) runs to completion once per
// trigger; triggers are the interval elapsing or an explicit user action.
package scheduler

import (
	"context"
	"time"

	"github.com/yourorg/crypto-tracker/internal/service"
	"github.com/yourorg/crypto-tracker/internal/ws"

	"go.uber.org/zap"
)

// Scheduler runs refresh cycles on a timer and on manual triggers, and
// publishes each cycle's result to the websocket hub
type Scheduler struct {
	tracker *service.TrackerService
	hub     *ws.Hub
	logger  *zap.Logger
	trigger chan struct{}
}

// NewScheduler creates a new refresh scheduler
func NewScheduler(tracker *service.TrackerService, hub *ws.Hub, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		tracker: tracker,
		hub:     hub,
		logger:  logger,
		trigger: make(chan struct{}, 1),
	}
}

// TriggerNow requests an immediate refresh cycle. Requests arriving while
// a manual refresh is already pending coalesce into one.
func (s *Scheduler) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start runs the scheduler loop until the context is cancelled. Cycles
// never overlap: each one runs to completion on this goroutine before the
// next wait begins. Interval changes take effect on the next wait.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Refresh scheduler started",
		zap.Duration("interval", s.tracker.Interval()))

	// run one cycle immediately so the dashboard has data at startup
	s.runCycle(ctx)

	for {
		timer := time.NewTimer(s.tracker.Interval())

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Refresh scheduler stopped")
			return
		case <-timer.C:
			s.runCycle(ctx)
		case <-s.trigger:
			timer.Stop()
			s.logger.Info("Manual refresh triggered")
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	result := s.tracker.RunCycle(ctx)
	s.hub.Broadcast("refresh", result)
}
