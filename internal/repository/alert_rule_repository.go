package repository

import (
	"errors"
	"sync"

	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
)

// Rule store errors
var (
	ErrDuplicateRule   = errors.New("an identical alert rule already exists")
	ErrIndexOutOfRange = errors.New("alert rule index out of range")
)

// AlertRuleRepository holds the in-memory ordered list of alert rules.
// Rules are session-scoped: they live for the lifetime of the process and
// are never written to durable storage. The mutex covers concurrent access
// from the HTTP handlers and the refresh scheduler.
type AlertRuleRepository struct {
	mu     sync.RWMutex
	rules  []model.AlertRule
	logger *zap.Logger
}

// NewAlertRuleRepository creates a new in-memory alert rule repository
func NewAlertRuleRepository(logger *zap.Logger) *AlertRuleRepository {
	return &AlertRuleRepository{
		logger: logger,
	}
}

// Add appends a rule, preserving insertion order. A rule equal to an
// existing one in all four fields is rejected and the store is left
// unchanged.
func (r *AlertRuleRepository) Add(rule model.AlertRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rules {
		if existing.Equal(rule) {
			return ErrDuplicateRule
		}
	}

	r.rules = append(r.rules, rule)
	r.logger.Info("Alert rule added",
		zap.String("crypto_id", rule.CryptoID),
		zap.String("direction", rule.Direction),
		zap.Float64("threshold", rule.Threshold))
	return nil
}

// Remove deletes the rule at the given position; later rules shift down
// by one
func (r *AlertRuleRepository) Remove(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.rules) {
		return ErrIndexOutOfRange
	}

	removed := r.rules[index]
	r.rules = append(r.rules[:index], r.rules[index+1:]...)
	r.logger.Info("Alert rule removed",
		zap.Int("index", index),
		zap.String("crypto_id", removed.CryptoID))
	return nil
}

// List returns a read-only snapshot of the rules in insertion order
func (r *AlertRuleRepository) List() []model.AlertRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]model.AlertRule, len(r.rules))
	copy(rules, r.rules)
	return rules
}
