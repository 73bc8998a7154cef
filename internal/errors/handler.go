package errors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/whatcoin/whatcoin/pkg/logger"
)

// Handler is the transport adapter's top-level error boundary: it logs the
// error, optionally reports it to Sentry, and produces the user-facing reply.
type Handler struct {
	log           *slog.Logger
	sentryEnabled bool
}

// NewHandler creates the error boundary.
func NewHandler(log *slog.Logger, sentryEnabled bool) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		log:           log,
		sentryEnabled: sentryEnabled,
	}
}

// Handle converts err into the message the user should see. The second return
// is false when err is nil and nothing should be sent.
func (h *Handler) Handle(ctx context.Context, err error) (string, bool) {
	if err == nil {
		return "", false
	}

	if ctx == nil {
		ctx = context.Background()
	}

	attrs := []any{slog.String("error", err.Error())}
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		attrs = append(attrs, slog.String("correlation_id", correlationID))
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		attrs = append(attrs,
			slog.String("code", appErr.Code),
			slog.String("severity", string(appErr.Severity)),
			slog.Bool("retryable", appErr.Retryable))
		h.log.Error("command failed", attrs...)

		if h.sentryEnabled && (appErr.Severity == SeverityHigh || appErr.Severity == SeverityCritical) {
			h.sendToSentry(err, appErr)
		}

		if appErr.UserMessage != "" {
			return appErr.UserMessage, true
		}
		return "Something went wrong. Please try again later.", true
	}

	h.log.Error("command failed", attrs...)
	if h.sentryEnabled {
		h.sendToSentry(err, nil)
	}

	return "Something went wrong. Please try again later.", true
}

func (h *Handler) sendToSentry(err error, appErr *AppError) {
	sentry.WithScope(func(scope *sentry.Scope) {
		if appErr != nil {
			if appErr.Code != "" {
				scope.SetTag("code", appErr.Code)
			}
			if appErr.Severity != "" {
				scope.SetTag("severity", string(appErr.Severity))
			}
		}
		sentry.CaptureException(err)
	})
}
