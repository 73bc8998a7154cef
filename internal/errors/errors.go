// Package errors defines the bot's error taxonomy and the top-level error
// boundary.
package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries the internal message, the user-facing message and routing
// hints for the error boundary.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewUpstreamError wraps a market-data API failure (network error, non-2xx).
func NewUpstreamError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("market data error: %s", underlyingMsg),
		UserMessage: "Sorry, I couldn't reach the market data service. Please try again later.",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

// NewRateLimitError signals the sender has been throttled.
func NewRateLimitError() *AppError {
	return &AppError{
		Code:        "E300",
		Message:     "rate limit exceeded",
		UserMessage: "Easy there! Please wait a bit before sending more commands.",
		Severity:    SeverityLow,
		Retryable:   true,
	}
}
