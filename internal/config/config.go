package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server    ServerConfig
	CoinGecko CoinGeckoConfig
	SMTP      SMTPConfig
	Alerts    AlertsConfig
	Refresh   RefreshConfig
	Redis     RedisConfig
	Logging   LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CoinGeckoConfig holds price API specific configuration
type CoinGeckoConfig struct {
	BaseURL    string
	Timeout    time.Duration
	VsCurrency string
	PerPage    int
}

// SMTPConfig holds the mail relay configuration. Address doubles as the
// sender and the recipient: alert mails are self-addressed.
type SMTPConfig struct {
	Host     string
	Port     int
	Address  string
	Password string
}

// Complete reports whether every field needed to open a relay connection
// is populated
func (c SMTPConfig) Complete() bool {
	return c.Host != "" && c.Address != "" && c.Password != ""
}

// AlertsConfig holds alert log specific configuration
type AlertsConfig struct {
	LogFile string
}

// RefreshConfig holds refresh cycle specific configuration
type RefreshConfig struct {
	Interval time.Duration
}

// RedisConfig holds the optional coin list cache configuration
type RedisConfig struct {
	Enabled     bool
	Addr        string
	Password    string
	DB          int
	CoinListTTL time.Duration
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override (SMTP_HOST, SMTP_ADDRESS, ...)
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	bindEnvKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Price API defaults
	v.SetDefault("coingecko.baseURL", "https://api.coingecko.com/api/v3")
	v.SetDefault("coingecko.timeout", "10s")
	v.SetDefault("coingecko.vsCurrency", "usd")
	v.SetDefault("coingecko.perPage", 100)

	// Mail relay defaults
	v.SetDefault("smtp.port", 587)

	// Alert log defaults
	v.SetDefault("alerts.logFile", "price_alerts.log")

	// Refresh defaults
	v.SetDefault("refresh.interval", "60s")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.coinListTTL", "5m")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.maxSizeMB", 100)
	v.SetDefault("logging.maxBackups", 3)
	v.SetDefault("logging.maxAgeDays", 28)
}

// bindEnvKeys maps the secret-bearing keys onto the environment variable
// names the original deployment used, so credentials never have to live in
// the yaml file
func bindEnvKeys(v *viper.Viper) {
	v.BindEnv("smtp.host", "SMTP_SERVER")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.address", "EMAIL_ADDRESS")
	v.BindEnv("smtp.password", "EMAIL_PASSWORD")
}
