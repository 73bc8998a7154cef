package config

import "time"

// Config holds runtime configuration for the whatcoin bot.
type Config struct {
	AppEnv string `mapstructure:"-"`

	Bot       BotConfig       `mapstructure:"bot"`
	Server    ServerConfig    `mapstructure:"server"`
	Coingecko CoingeckoConfig `mapstructure:"coingecko"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Chart     ChartConfig     `mapstructure:"chart"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token      string        `mapstructure:"token" validate:"required"`
	Mode       string        `mapstructure:"mode" validate:"oneof=longpoll webhook"`
	WebhookURL string        `mapstructure:"webhook_url"`
	Listen     string        `mapstructure:"listen"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the metrics/health HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CoingeckoConfig configures the market-data client.
type CoingeckoConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"gte=0"`
	VsCoinFallback    bool          `mapstructure:"vs_coin_fallback"`
}

// RateLimitConfig configures per-sender rate limiting.
type RateLimitConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PerUserLimit int           `mapstructure:"per_user_limit" validate:"gte=0"`
	Window       time.Duration `mapstructure:"window"`
	Whitelist    []int64       `mapstructure:"whitelist"`
}

// RedisConfig configures the optional Redis backend for rate limiting.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// ChartConfig sets chart dimensions.
type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}
