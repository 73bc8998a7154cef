// Package middleware contains telebot middleware for the bot's update
// pipeline.
package middleware

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/whatcoin/whatcoin/internal/errors"
	"github.com/whatcoin/whatcoin/internal/ratelimit"
	"github.com/whatcoin/whatcoin/pkg/metrics"
)

// RateLimit enforces per-sender rate limits for incoming updates. Throttled
// senders get a short notice instead of their reply.
func RateLimit(limiter ratelimit.Limiter, rules *ratelimit.Rules, log *slog.Logger) telebot.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if limiter == nil || rules == nil || !rules.Enabled() {
				return next(c)
			}

			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if rules.IsWhitelisted(sender.ID) {
				return next(c)
			}

			limit, window := rules.PerSenderLimit()
			key := fmt.Sprintf("sender:%d", sender.ID)
			result, err := limiter.Check(context.Background(), key, limit, window)
			if err != nil && result == nil {
				// limiter backend failure: fail open
				log.Warn("rate limiter error", slog.Int64("sender_id", sender.ID), slog.Any("error", err))
				return next(c)
			}

			if !result.Allowed {
				log.Warn("rate limit exceeded", slog.Int64("sender_id", sender.ID))
				metrics.RecordRateLimited()
				return c.Send(errors.NewRateLimitError().UserMessage)
			}

			return next(c)
		}
	}
}
