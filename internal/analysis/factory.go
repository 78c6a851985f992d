package analysis

import (
	"fmt"

	"runsheet/internal/config"
	"runsheet/internal/port"
)

// ProviderFactory creates an AnalysisProvider from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.AnalysisProvider, error)

// registry of provider factories, populated explicitly via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates an AnalysisProvider using the registered factory.
func NewProvider(cfg *config.ProviderConfig) (port.AnalysisProvider, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown analysis provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the configured providers. A single provider is returned as is;
// several are wrapped in a FallbackProvider in configuration order.
func NewFromConfig(cfg *config.AnalysisConfig) (port.AnalysisProvider, error) {
	cfgs := cfg.Providers()
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("analysis.NewFromConfig: no provider configured")
	}

	list := make([]port.AnalysisProvider, 0, len(cfgs))
	names := make([]string, 0, len(cfgs))
	for _, pc := range cfgs {
		p, err := NewProvider(pc)
		if err != nil {
			return nil, fmt.Errorf("analysis.NewFromConfig: %w", err)
		}
		list = append(list, p)
		names = append(names, pc.Provider)
	}
	if len(list) == 1 {
		return list[0], nil
	}
	return NewFallbackProvider(list, names), nil
}
