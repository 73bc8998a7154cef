package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/whatcoin/whatcoin/internal/bot"
	"github.com/whatcoin/whatcoin/internal/catalog"
	"github.com/whatcoin/whatcoin/internal/chart"
	"github.com/whatcoin/whatcoin/internal/coingecko"
	"github.com/whatcoin/whatcoin/internal/command"
	appErrors "github.com/whatcoin/whatcoin/internal/errors"
	"github.com/whatcoin/whatcoin/internal/middleware"
	"github.com/whatcoin/whatcoin/internal/ratelimit"
	"github.com/whatcoin/whatcoin/pkg/config"
	"github.com/whatcoin/whatcoin/pkg/graceful"
	"github.com/whatcoin/whatcoin/pkg/logger"
	appRedis "github.com/whatcoin/whatcoin/pkg/redis"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	sentryEnabled := cfg.Sentry.Enabled && cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     "whatcoin@" + version,
		}); err != nil {
			slog.Error("failed to init sentry", slog.Any("error", err))
			sentryEnabled = false
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	log, levelVar := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Sentry:     sentryEnabled,
	})
	config.WatchLogLevel(v, func(level string) {
		levelVar.Set(logger.ParseLevel(level))
		log.Info("log level changed", slog.String("level", level))
	})

	log.Info("starting whatcoin bot",
		slog.String("version", version),
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode))

	gecko := coingecko.New(coingecko.Config{
		BaseURL:           cfg.Coingecko.BaseURL,
		APIKey:            cfg.Coingecko.APIKey,
		Timeout:           cfg.Coingecko.Timeout,
		RequestsPerMinute: cfg.Coingecko.RequestsPerMinute,
	}, log)

	catalogSvc := catalog.NewService(gecko, log)
	catalogSvc.VsCoinFallback = cfg.Coingecko.VsCoinFallback

	handlers := command.NewHandlers(gecko, chart.NewRenderer(cfg.Chart.Width, cfg.Chart.Height), version)
	table := command.BuildTable(handlers, command.NewKinds(catalogSvc))
	dispatcher := command.NewDispatcher(table, log)

	var limiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		rdb, err := appRedis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("redis unavailable, falling back to memory rate limiter", slog.Any("error", err))
		} else {
			defer func() { _ = rdb.Close() }()
			limiter = ratelimit.NewRedisLimiter(rdb, log)
			go ratelimit.NewCleaner(rdb, log, 10*time.Minute, 2*cfg.RateLimit.Window).Run(ctx)
		}
	}
	if limiter == nil {
		mem := ratelimit.NewMemoryLimiter(log)
		go mem.Run(ctx, 10*time.Minute, 2*cfg.RateLimit.Window)
		limiter = mem
	}
	rules := ratelimit.NewRules(cfg.RateLimit)

	errHandler := appErrors.NewHandler(log, sentryEnabled)
	dedupe := middleware.NewDedupe(10*time.Minute, log)

	b, err := bot.New(cfg.Bot, dispatcher, errHandler, log,
		dedupe.Middleware(),
		middleware.RateLimit(limiter, rules, log),
		middleware.Logging(log),
	)
	if err != nil {
		log.Error("failed to create bot", slog.Any("error", err))
		os.Exit(1)
	}

	metricsSrv := graceful.NewMetricsServer(log, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
	go func() {
		if err := metricsSrv.ListenAndServe(ctx); err != nil {
			log.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	b.Start()

	log.Info("whatcoin bot shut down")
}
