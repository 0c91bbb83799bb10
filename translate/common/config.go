// Package common holds the failover and rate-limit plumbing shared by
// managed translator and detector instances.
package common

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type FailoverConfig struct {
	// Disable instance temporarily for CooldownBaseSec * cooldownMultiplier
	// once MaxFailures consecutive failures are reached. Set MaxFailures to 1
	// to disable a failed instance immediately.
	MaxFailures     int `yaml:"max_failures"`
	CooldownBaseSec int `yaml:"cooldown_base_sec"`

	// Disable instance permanently once it has been cooled down
	// MaxDisableCycles times without an intervening success.
	MaxDisableCycles int `yaml:"max_disable_cycles"`
}

// RateLimitConfig defines the parameters for the token-bucket rate limiter.
type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled"`
	BucketSize int     `yaml:"bucket_size"`
	RefillTPS  float64 `yaml:"refill_token_per_sec"`
}

// NewLimiterFromConfig returns a configured limiter, or nil when rate
// limiting is disabled.
func (c RateLimitConfig) NewLimiterFromConfig(logger *logrus.Entry) *rate.Limiter {
	if !c.Enabled {
		return nil
	}
	logger.Debugf("rate limiter refill: %.2f tokens/s, bucket size: %d",
		c.RefillTPS, c.BucketSize)
	return rate.NewLimiter(rate.Limit(c.RefillTPS), c.BucketSize)
}
