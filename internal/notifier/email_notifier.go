package notifier

import (
	"fmt"
	"time"

	"github.com/yourorg/crypto-tracker/internal/config"
	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const emailBodyTemplate = `CRYPTO PRICE ALERT

Cryptocurrency: %s
Current Price: $%.2f
Alert Type: %s
Threshold Price: $%.2f

Time: %s

This is an automated alert from your Crypto Price Tracker.
`

// EmailNotifier delivers alerts as self-addressed plain-text emails over an
// authenticated STARTTLS relay connection. A fresh connection is opened and
// closed per message.
type EmailNotifier struct {
	cfg    config.SMTPConfig
	logger *zap.Logger

	// send dials the relay and delivers the message; replaced in tests
	send func(m *gomail.Message) error
}

// NewEmailNotifier creates a new email notifier for the given relay
// configuration
func NewEmailNotifier(cfg config.SMTPConfig, logger *zap.Logger) *EmailNotifier {
	n := &EmailNotifier{
		cfg:    cfg,
		logger: logger,
	}
	n.send = func(m *gomail.Message) error {
		// gomail upgrades to STARTTLS when the relay offers it, which is
		// mandatory on the default submission port 587
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Address, cfg.Password)
		return d.DialAndSend(m)
	}
	return n
}

// Send composes and delivers one alert email. When any relay configuration
// field is empty the call is refused before any connection is attempted.
// Every failure is reported as false; nothing propagates to the caller.
func (n *EmailNotifier) Send(alert model.TriggeredAlert) bool {
	if !n.cfg.Complete() {
		n.logger.Warn("Email configuration incomplete, alert not sent",
			zap.String("crypto_name", alert.CryptoName))
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.Address)
	m.SetHeader("To", n.cfg.Address)
	m.SetHeader("Subject", fmt.Sprintf("Crypto Price Alert: %s", alert.CryptoName))
	m.SetBody("text/plain", fmt.Sprintf(emailBodyTemplate,
		alert.CryptoName,
		alert.CurrentPrice,
		alert.Direction,
		alert.Threshold,
		time.Now().Format("2006-01-02 15:04:05"),
	))

	if err := n.send(m); err != nil {
		n.logger.Error("Failed to send alert email",
			zap.Error(err),
			zap.String("crypto_name", alert.CryptoName),
			zap.String("relay", n.cfg.Host))
		return false
	}

	n.logger.Info("Alert email sent",
		zap.String("crypto_name", alert.CryptoName),
		zap.Float64("current_price", alert.CurrentPrice))
	return true
}
