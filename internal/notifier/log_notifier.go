package notifier

import (
	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
)

// LogNotifier writes alerts to the application log instead of delivering
// them anywhere.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-based notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(alert model.TriggeredAlert) bool {
	n.logger.Info("Price alert triggered",
		zap.String("crypto_name", alert.CryptoName),
		zap.Float64("current_price", alert.CurrentPrice),
		zap.String("direction", alert.Direction),
		zap.Float64("threshold", alert.Threshold))
	return true
}
