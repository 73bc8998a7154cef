package ratelimit

import (
	"time"

	"github.com/whatcoin/whatcoin/pkg/config"
)

// Rules encapsulates the configured per-sender limit and whitelist.
type Rules struct {
	cfg config.RateLimitConfig
}

// NewRules constructs rate limiting rules from configuration settings.
func NewRules(cfg config.RateLimitConfig) *Rules {
	return &Rules{cfg: cfg}
}

// Enabled reports whether rate limiting is active at all.
func (r *Rules) Enabled() bool {
	return r.cfg.Enabled && r.cfg.PerUserLimit > 0 && r.cfg.Window > 0
}

// IsWhitelisted returns true if the sender bypasses rate limits.
func (r *Rules) IsWhitelisted(senderID int64) bool {
	for _, id := range r.cfg.Whitelist {
		if id == senderID {
			return true
		}
	}
	return false
}

// PerSenderLimit returns the limit and window applied to each sender.
func (r *Rules) PerSenderLimit() (int, time.Duration) {
	return r.cfg.PerUserLimit, r.cfg.Window
}
