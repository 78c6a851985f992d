package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runsheet/internal/analysis"
	"runsheet/internal/config"
	"runsheet/internal/port"
	"runsheet/mocks"
)

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := analysis.NewProvider(&config.ProviderConfig{Provider: "nonexistent"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown analysis provider")
}

func TestNewFromConfig(t *testing.T) {
	analysis.RegisterProvider("test-a", func(_ *config.ProviderConfig) (port.AnalysisProvider, error) {
		return new(mocks.MockAnalysisProvider), nil
	})
	analysis.RegisterProvider("test-b", func(_ *config.ProviderConfig) (port.AnalysisProvider, error) {
		return new(mocks.MockAnalysisProvider), nil
	})

	single, err := analysis.NewFromConfig(&config.AnalysisConfig{Primary: config.ProviderConfig{Provider: "test-a"}})
	require.NoError(t, err)
	assert.IsType(t, &mocks.MockAnalysisProvider{}, single)

	chain, err := analysis.NewFromConfig(&config.AnalysisConfig{
		Primary:   config.ProviderConfig{Provider: "test-a"},
		Secondary: config.ProviderConfig{Provider: "test-b"},
	})
	require.NoError(t, err)
	assert.IsType(t, &analysis.FallbackProvider{}, chain)

	_, err = analysis.NewFromConfig(&config.AnalysisConfig{})
	assert.Error(t, err)
}
