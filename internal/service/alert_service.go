package service

import (
	"time"

	"github.com/yourorg/crypto-tracker/internal/model"
	"github.com/yourorg/crypto-tracker/internal/notifier"
	"github.com/yourorg/crypto-tracker/internal/repository"

	"go.uber.org/zap"
)

// AlertService manages alert rules and evaluates them against price
// snapshots
type AlertService struct {
	ruleRepo  *repository.AlertRuleRepository
	eventRepo *repository.AlertEventRepository
	notifier  notifier.Notifier
	logger    *zap.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(
	ruleRepo *repository.AlertRuleRepository,
	eventRepo *repository.AlertEventRepository,
	n notifier.Notifier,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		ruleRepo:  ruleRepo,
		eventRepo: eventRepo,
		notifier:  n,
		logger:    logger,
	}
}

// AddRule adds an alert rule, rejecting exact duplicates
func (s *AlertService) AddRule(rule model.AlertRule) error {
	return s.ruleRepo.Add(rule)
}

// RemoveRule removes the rule at the given position
func (s *AlertService) RemoveRule(index int) error {
	return s.ruleRepo.Remove(index)
}

// ListRules returns the active rules in insertion order
func (s *AlertService) ListRules() []model.AlertRule {
	return s.ruleRepo.List()
}

// RecentEvents returns the last n entries of the alert log,
// oldest-to-newest
func (s *AlertService) RecentEvents(n int) ([]model.AlertEvent, error) {
	return s.eventRepo.ReadRecent(n)
}

// Evaluate checks the given rules against a price snapshot, in rule order,
// and returns the satisfied ones. A rule whose coin is absent from the
// snapshot is skipped silently. Comparisons are inclusive at the boundary
// in both directions.
func (s *AlertService) Evaluate(snapshot model.PriceSnapshot, rules []model.AlertRule) []model.TriggeredAlert {
	var triggered []model.TriggeredAlert

	for _, rule := range rules {
		quote, ok := snapshot[rule.CryptoID]
		if !ok {
			continue
		}

		satisfied := (rule.Direction == model.DirectionAbove && quote.USD >= rule.Threshold) ||
			(rule.Direction == model.DirectionBelow && quote.USD <= rule.Threshold)
		if !satisfied {
			continue
		}

		triggered = append(triggered, model.TriggeredAlert{
			CryptoName:   rule.CryptoName,
			CurrentPrice: quote.USD,
			Threshold:    rule.Threshold,
			Direction:    rule.Direction,
		})
	}

	return triggered
}

// CheckAlerts evaluates the stored rules against the snapshot and, for
// every satisfied rule, sends a notification and appends an alert log
// event. No state is kept between calls: a rule that stays satisfied
// across consecutive cycles fires again on each of them.
//
// An event is logged whenever a rule fired; EmailSent records only the
// delivery outcome.
func (s *AlertService) CheckAlerts(snapshot model.PriceSnapshot) []model.TriggeredAlert {
	triggered := s.Evaluate(snapshot, s.ruleRepo.List())

	for i := range triggered {
		alert := &triggered[i]
		alert.EmailSent = s.notifier.Send(*alert)

		event := model.AlertEvent{
			Timestamp:      time.Now(),
			CryptoName:     alert.CryptoName,
			CurrentPrice:   alert.CurrentPrice,
			ThresholdPrice: alert.Threshold,
			AlertType:      alert.Direction,
			EmailSent:      alert.EmailSent,
		}
		if err := s.eventRepo.Append(event); err != nil {
			// local file appends are assumed reliable; surface and move on
			s.logger.Error("Failed to append alert event", zap.Error(err))
		}
	}

	if len(triggered) > 0 {
		s.logger.Info("Alert rules fired", zap.Int("count", len(triggered)))
	}
	return triggered
}
