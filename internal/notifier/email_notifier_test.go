package notifier

import (
	"errors"
	"testing"

	"github.com/yourorg/crypto-tracker/internal/config"
	"github.com/yourorg/crypto-tracker/internal/model"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var testAlert = model.TriggeredAlert{
	CryptoName:   "Bitcoin",
	CurrentPrice: 65000,
	Threshold:    64000,
	Direction:    model.DirectionAbove,
}

func TestSendRefusedOnIncompleteConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.SMTPConfig
	}{
		{"all empty", config.SMTPConfig{Port: 587}},
		{"missing host", config.SMTPConfig{Port: 587, Address: "a@b.c", Password: "secret"}},
		{"missing address", config.SMTPConfig{Host: "smtp.example.com", Port: 587, Password: "secret"}},
		{"missing password", config.SMTPConfig{Host: "smtp.example.com", Port: 587, Address: "a@b.c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewEmailNotifier(tc.cfg, zap.NewNop())
			dialed := false
			n.send = func(m *gomail.Message) error {
				dialed = true
				return nil
			}

			if n.Send(testAlert) {
				t.Fatal("Send returned true with incomplete config")
			}
			if dialed {
				t.Fatal("Send attempted a connection with incomplete config")
			}
		})
	}
}

func TestSendComposesSelfAddressedMessage(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: 587, Address: "me@example.com", Password: "secret"}
	n := NewEmailNotifier(cfg, zap.NewNop())

	var sent *gomail.Message
	n.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	if !n.Send(testAlert) {
		t.Fatal("Send returned false on successful delivery")
	}
	if sent == nil {
		t.Fatal("no message was handed to the dialer")
	}
	if from := sent.GetHeader("From"); len(from) != 1 || from[0] != "me@example.com" {
		t.Errorf("From = %v", from)
	}
	if to := sent.GetHeader("To"); len(to) != 1 || to[0] != "me@example.com" {
		t.Errorf("To = %v, alert mail must be self-addressed", to)
	}
	if subj := sent.GetHeader("Subject"); len(subj) != 1 || subj[0] != "Crypto Price Alert: Bitcoin" {
		t.Errorf("Subject = %v", subj)
	}
}

func TestSendReportsDeliveryFailureAsFalse(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: 587, Address: "me@example.com", Password: "secret"}
	n := NewEmailNotifier(cfg, zap.NewNop())
	n.send = func(m *gomail.Message) error {
		return errors.New("relay rejected AUTH")
	}

	if n.Send(testAlert) {
		t.Fatal("Send returned true on delivery failure")
	}
}

func TestLogNotifierAlwaysSucceeds(t *testing.T) {
	n := NewLogNotifier(zap.NewNop())
	if !n.Send(testAlert) {
		t.Fatal("LogNotifier.Send returned false")
	}
}
