// Package config provides configuration loading and validation utilities.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from YAML files and environment variables,
// validates it, and returns the resulting Config alongside the viper instance
// for optional hot reload.
func Load() (*Config, *viper.Viper, error) {
	// missing env files are fine; real deployments use the environment
	_ = godotenv.Load(".env.local", ".env")

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigFile(fmt.Sprintf("./configs/%s.yaml", env))
	v.SetEnvPrefix("WHATCOIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = env

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.mode", "longpoll")
	v.SetDefault("bot.timeout", "10s")
	v.SetDefault("server.addr", ":9090")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("coingecko.timeout", "15s")
	v.SetDefault("coingecko.requests_per_minute", 30)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.per_user_limit", 10)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 600)
}

// WatchLogLevel re-reads the config file on change and reports the new log
// level to onChange. Only the level is hot-reloaded; everything else needs a
// restart.
func WatchLogLevel(v *viper.Viper, onChange func(level string)) {
	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			return
		}
		onChange(v.GetString("log.level"))
	})
	v.WatchConfig()
}
