package api

import (
	"fmt"

	"github.com/aunetx/text-translator/translate/common"
)

// DefaultConfig carries settings an instance config may inherit when it does
// not set them itself.
type DefaultConfig struct {
	// Positive
	Weight int `yaml:"weight"`

	// Optional
	SystemPrompt string `yaml:"system_prompt"`

	// Optional. Failover
	Failover common.FailoverConfig `yaml:"failover"`
}

// Config describes one provider adapter instance. Key is the opaque API
// credential; it is stored by the adapter at construction and never mutated
// afterwards.
type Config struct {
	DefaultConfig `yaml:",inline"`

	// Required
	Name string `yaml:"name"`

	// Required
	Type string `yaml:"type"`

	// Positive
	Timeout int64 `yaml:"timeout"`

	// Optional. API credential, required by keyed backends.
	Key string `yaml:"key"`

	// Optional. Overrides the provider's default base URL.
	Endpoint string `yaml:"endpoint"`

	// Optional. Model name for chat-completion backends.
	Model string `yaml:"model"`

	// Optional. Engine name for the translate-shell backend.
	Engine string `yaml:"engine"`

	// Optional. ISO 639-1 codes restricting offline detection.
	DetectLangs []string `yaml:"detect_langs"`

	// Optional. Minimum detection confidence, 0-1.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`

	// Optional
	RateLimit common.RateLimitConfig `yaml:"rate_limit"`
}

// CheckAndMergeDefaultConfig validates required fields and fills unset ones
// from the shared defaults.
func (c *Config) CheckAndMergeDefaultConfig(dc DefaultConfig) (err error) {
	if c.Name == "" {
		err = fmt.Errorf("instance name is required")
		return
	}

	if c.Type == "" {
		err = fmt.Errorf("instance type is required")
		return
	}

	if c.Weight <= 0 {
		if dc.Weight <= 0 {
			err = fmt.Errorf("instance weight must be positive")
			return
		}
		c.Weight = dc.Weight
	}

	if c.SystemPrompt == "" {
		c.SystemPrompt = dc.SystemPrompt
	}

	if c.Timeout <= 0 {
		err = fmt.Errorf("instance timeout must be positive")
		return
	}

	// Failover
	if c.Failover.MaxFailures < 1 {
		c.Failover.MaxFailures = dc.Failover.MaxFailures
	}

	if c.Failover.CooldownBaseSec <= 0 {
		c.Failover.CooldownBaseSec = dc.Failover.CooldownBaseSec
		if c.Failover.CooldownBaseSec <= 0 {
			err = fmt.Errorf("the failover cooldown must be positive")
			return
		}
	}

	if c.Failover.MaxDisableCycles < 1 {
		c.Failover.MaxDisableCycles = dc.Failover.MaxDisableCycles
	}

	// Rate limit
	if c.RateLimit.Enabled {
		if c.RateLimit.RefillTPS <= 0.0 {
			err = fmt.Errorf("limiter refill rate must be positive")
			return
		}

		if c.RateLimit.BucketSize <= 0 {
			err = fmt.Errorf("limiter bucket size must be positive")
			return
		}
	}
	return
}
