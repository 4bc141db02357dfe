package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %s", cfg.Server.Port)
	}
	if cfg.CoinGecko.BaseURL != "https://api.coingecko.com/api/v3" {
		t.Errorf("BaseURL default = %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.Timeout != 10*time.Second {
		t.Errorf("Timeout default = %v", cfg.CoinGecko.Timeout)
	}
	if cfg.CoinGecko.PerPage != 100 {
		t.Errorf("PerPage default = %d", cfg.CoinGecko.PerPage)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP port default = %d", cfg.SMTP.Port)
	}
	if cfg.Alerts.LogFile != "price_alerts.log" {
		t.Errorf("LogFile default = %s", cfg.Alerts.LogFile)
	}
	if cfg.Refresh.Interval != 60*time.Second {
		t.Errorf("Refresh interval default = %v", cfg.Refresh.Interval)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis enabled by default")
	}
}

func TestLoadConfigEnvOverridesSMTP(t *testing.T) {
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("EMAIL_ADDRESS", "me@example.com")
	t.Setenv("EMAIL_PASSWORD", "secret")

	cfg, err := LoadConfig(writeConfig(t, "smtp:\n  port: 2525\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.SMTP.Host != "smtp.example.com" || cfg.SMTP.Address != "me@example.com" || cfg.SMTP.Password != "secret" {
		t.Fatalf("SMTP config = %+v", cfg.SMTP)
	}
	if cfg.SMTP.Port != 2525 {
		t.Fatalf("SMTP port = %d, want file value 2525", cfg.SMTP.Port)
	}
	if !cfg.SMTP.Complete() {
		t.Fatal("populated SMTP config reported incomplete")
	}
}

func TestSMTPConfigComplete(t *testing.T) {
	complete := SMTPConfig{Host: "h", Port: 587, Address: "a", Password: "p"}
	if !complete.Complete() {
		t.Error("fully populated config reported incomplete")
	}

	for _, cfg := range []SMTPConfig{
		{Port: 587, Address: "a", Password: "p"},
		{Host: "h", Port: 587, Password: "p"},
		{Host: "h", Port: 587, Address: "a"},
	} {
		if cfg.Complete() {
			t.Errorf("config %+v reported complete", cfg)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
