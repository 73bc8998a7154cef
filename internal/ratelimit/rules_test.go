package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/whatcoin/whatcoin/pkg/config"
)

func TestRules_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RateLimitConfig
		want bool
	}{
		{"fully configured", config.RateLimitConfig{Enabled: true, PerUserLimit: 10, Window: time.Minute}, true},
		{"disabled", config.RateLimitConfig{Enabled: false, PerUserLimit: 10, Window: time.Minute}, false},
		{"zero limit", config.RateLimitConfig{Enabled: true, PerUserLimit: 0, Window: time.Minute}, false},
		{"zero window", config.RateLimitConfig{Enabled: true, PerUserLimit: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRules(tt.cfg).Enabled())
		})
	}
}

func TestRules_Whitelist(t *testing.T) {
	rules := NewRules(config.RateLimitConfig{Whitelist: []int64{42, 99}})

	assert.True(t, rules.IsWhitelisted(42))
	assert.True(t, rules.IsWhitelisted(99))
	assert.False(t, rules.IsWhitelisted(7))
}

func TestRules_PerSenderLimit(t *testing.T) {
	rules := NewRules(config.RateLimitConfig{PerUserLimit: 10, Window: time.Minute})

	limit, window := rules.PerSenderLimit()
	assert.Equal(t, 10, limit)
	assert.Equal(t, time.Minute, window)
}
