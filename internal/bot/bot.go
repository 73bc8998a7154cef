// Package bot adapts the Telegram transport to the command dispatcher.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/whatcoin/whatcoin/internal/command"
	"github.com/whatcoin/whatcoin/internal/errors"
	"github.com/whatcoin/whatcoin/pkg/config"
	"github.com/whatcoin/whatcoin/pkg/logger"
)

// Bot wraps telebot.Bot with the command dispatcher and error boundary.
type Bot struct {
	telebot    *telebot.Bot
	dispatcher *command.Dispatcher
	errHandler *errors.Handler
	log        *slog.Logger
}

// New builds a telegram bot instance configured according to the application
// settings. Middlewares apply in the given order before dispatch.
func New(
	cfg config.BotConfig,
	dispatcher *command.Dispatcher,
	errHandler *errors.Handler,
	log *slog.Logger,
	middlewares ...telebot.MiddlewareFunc,
) (*Bot, error) {
	if log == nil {
		log = slog.Default()
	}

	settings := telebot.Settings{Token: cfg.Token}
	if cfg.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen:   cfg.Listen,
			Endpoint: &telebot.WebhookEndpoint{PublicURL: cfg.WebhookURL},
		}
	} else {
		settings.Poller = &telebot.LongPoller{Timeout: cfg.Timeout}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	b := &Bot{
		telebot:    tb,
		dispatcher: dispatcher,
		errHandler: errHandler,
		log:        log,
	}

	for _, mw := range middlewares {
		tb.Use(mw)
	}
	tb.Handle(telebot.OnText, b.onText)

	return b, nil
}

// Start runs the telegram bot event loop. It blocks until Stop is called.
func (b *Bot) Start() {
	b.log.Info("telegram bot starting")
	b.telebot.Start()
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// onText routes every text message through the dispatcher. A nil reply means
// nothing is sent, matching the silent-ignore contract for unknown commands
// and non-command text.
func (b *Bot) onText(c telebot.Context) error {
	ctx, correlationID := logger.WithCorrelationID(context.Background())

	locale := "en"
	if sender := c.Sender(); sender != nil && sender.LanguageCode != "" {
		locale = sender.LanguageCode
	}

	req := command.NewRequest(locale, b.log.With(slog.String("correlation_id", correlationID)))
	req.Notify = func(action string) {
		if action == command.ActionUploadPhoto {
			_ = c.Notify(telebot.UploadingPhoto)
		}
	}

	reply, err := b.dispatcher.Handle(ctx, req, c.Text())
	if err != nil {
		if msg, ok := b.errHandler.Handle(ctx, err); ok {
			return c.Send(msg)
		}
		return nil
	}
	if reply == nil {
		return nil
	}

	return send(c, reply)
}

func send(c telebot.Context, reply *command.Reply) error {
	if len(reply.Photo) > 0 {
		photo := &telebot.Photo{
			File:    telebot.FromReader(bytes.NewReader(reply.Photo)),
			Caption: reply.Text,
		}
		return c.Send(photo)
	}

	if reply.Markdown {
		return c.Send(reply.Text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}
	return c.Send(reply.Text)
}
