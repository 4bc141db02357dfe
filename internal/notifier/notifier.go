// Package notifier delivers alert notifications. Delivery failure is a
// boolean outcome, never a propagated error: a failed send must not break
// the refresh cycle that produced it.
package notifier

import (
	"github.com/yourorg/crypto-tracker/internal/model"
)

// Notifier is the interface for alert delivery backends
type Notifier interface {
	// Send delivers one alert notification and reports whether delivery
	// succeeded
	Send(alert model.TriggeredAlert) bool
}
