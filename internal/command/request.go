// Package command implements the bot's command table: declarative argument
// specs, concurrent argument resolution, and overload-aware dispatch.
package command

import (
	"log/slog"

	"github.com/whatcoin/whatcoin/internal/format"
)

// ChatAction names sent through Request.Notify.
const ActionUploadPhoto = "upload_photo"

// Request carries the per-message context handlers need: the sender's locale,
// a locale-bound formatter, a scoped logger and a best-effort chat-action
// callback. It is built by the transport adapter for every inbound message.
type Request struct {
	Locale string
	Fmt    *format.Formatter
	Log    *slog.Logger
	Notify func(action string)
}

// NewRequest builds a request for the given locale.
func NewRequest(locale string, log *slog.Logger) *Request {
	if log == nil {
		log = slog.Default()
	}

	return &Request{
		Locale: locale,
		Fmt:    format.ForLocale(locale),
		Log:    log,
		Notify: func(string) {},
	}
}
