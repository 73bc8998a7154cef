package middleware

import (
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"
)

// Logging records every inbound update with its handling duration.
func Logging(log *slog.Logger) telebot.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			start := time.Now()
			err := next(c)

			attrs := []any{
				slog.Duration("duration", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				attrs = append(attrs, slog.Int64("sender_id", sender.ID))
			}
			if msg := c.Message(); msg != nil {
				attrs = append(attrs, slog.Int("message_id", msg.ID))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				log.Error("update failed", attrs...)
				return err
			}

			log.Info("update handled", attrs...)
			return nil
		}
	}
}
