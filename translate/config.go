package translate

import (
	"github.com/aunetx/text-translator/translate/api"
)

// ServiceConfig holds all configuration related to the translation service.
type ServiceConfig struct {
	Selector              string            `yaml:"selector"`
	Providers             []api.Config      `yaml:"providers"`
	Detectors             []api.Config      `yaml:"detectors"`
	DefaultProviderConfig api.DefaultConfig `yaml:"default_provider_config"`
}

// NewServiceConfig creates a ServiceConfig with usable defaults.
func NewServiceConfig() (c ServiceConfig) {
	c = ServiceConfig{
		Providers: make([]api.Config, 0),
		Detectors: make([]api.Config, 0),
	}

	// By default, a consistently failing provider is disabled for:
	// 3  failures: 1 * 120 secs cooldown
	// 6  failures: 2 * 120 secs cooldown
	// ...
	// 18 failures: disabled until restart
	c.DefaultProviderConfig.Weight = 1
	c.DefaultProviderConfig.Failover.MaxFailures = 3
	c.DefaultProviderConfig.Failover.CooldownBaseSec = 120
	c.DefaultProviderConfig.Failover.MaxDisableCycles = 6

	return
}
