package model

import (
	"time"
)

// Alert directions. A rule fires when the current price crosses its
// threshold in the configured direction, boundary inclusive.
const (
	DirectionAbove = "above"
	DirectionBelow = "below"
)

// AlertRule is a user-defined price alert. Rules live in memory for the
// lifetime of the process; there is no durable rule storage.
type AlertRule struct {
	CryptoID   string  `json:"crypto_id" binding:"required"`
	CryptoName string  `json:"crypto_name" binding:"required"`
	Direction  string  `json:"direction" binding:"required,direction"`
	Threshold  float64 `json:"threshold" binding:"required,gt=0"`
}

// Equal reports whether two rules are duplicates. Identity is all four
// fields being equal.
func (r AlertRule) Equal(other AlertRule) bool {
	return r.CryptoID == other.CryptoID &&
		r.CryptoName == other.CryptoName &&
		r.Direction == other.Direction &&
		r.Threshold == other.Threshold
}

// TriggeredAlert is a rule found satisfied during one evaluation pass
type TriggeredAlert struct {
	CryptoName   string  `json:"crypto_name"`
	CurrentPrice float64 `json:"current_price"`
	Threshold    float64 `json:"threshold"`
	Direction    string  `json:"type"`
	EmailSent    bool    `json:"email_sent"`
}

// AlertEvent is one persisted line of the alert log. An event is recorded
// whenever a rule's condition evaluated true, regardless of whether the
// email was delivered; EmailSent records the delivery outcome only.
type AlertEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	CryptoName     string    `json:"crypto"`
	CurrentPrice   float64   `json:"current_price"`
	ThresholdPrice float64   `json:"threshold_price"`
	AlertType      string    `json:"alert_type"`
	EmailSent      bool      `json:"email_sent"`
}
