package unprompted

import (
	"go.uber.org/zap"
)

// ModelSettings are the fixed generation parameters of a Prompt
type ModelSettings struct {
	Model string `yaml:"model,omitempty"`
	// Temperature is nil when unset; a set 0 means greedy sampling
	Temperature *float64 `yaml:"temperature,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
}

// DefaultModelSettings returns the settings used when none are given
func DefaultModelSettings() ModelSettings {
	temperature := DefaultTemperature
	return ModelSettings{
		Model:       DefaultModel,
		Temperature: &temperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// GetTemperature returns the temperature and whether it was set
func (s ModelSettings) GetTemperature() (float64, bool) {
	if s.Temperature == nil {
		return 0, false
	}
	return *s.Temperature, true
}

// clone returns a copy that shares no pointers with s
func (s ModelSettings) clone() ModelSettings {
	if s.Temperature != nil {
		temperature := *s.Temperature
		s.Temperature = &temperature
	}
	return s
}

// Option is a functional option for configuring a Prompt.
type Option func(*promptConfig)

// promptConfig holds the internal configuration for a Prompt.
type promptConfig struct {
	settings  ModelSettings
	completer Completer
	logger    *zap.Logger
}

// defaultPromptConfig returns the default prompt configuration.
func defaultPromptConfig() *promptConfig {
	return &promptConfig{
		settings:  DefaultModelSettings(),
		completer: nil,
		logger:    nil,
	}
}

// WithCompleter sets the backend used to generate missing values.
// Default: nil (fills that need generation fail)
func WithCompleter(c Completer) Option {
	return func(cfg *promptConfig) {
		cfg.completer = c
	}
}

// WithModel sets the model identifier sent with every request.
// Default: "gpt-3.5-turbo-instruct"
func WithModel(model string) Option {
	return func(cfg *promptConfig) {
		if model != "" {
			cfg.settings.Model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
// Default: 0.7
func WithTemperature(temperature float64) Option {
	return func(cfg *promptConfig) {
		cfg.settings.Temperature = &temperature
	}
}

// WithMaxTokens sets the token budget of each request.
// Default: 120
func WithMaxTokens(maxTokens int) Option {
	return func(cfg *promptConfig) {
		if maxTokens > 0 {
			cfg.settings.MaxTokens = maxTokens
		}
	}
}

// WithModelSettings replaces all generation settings at once.
// Empty fields and a nil Temperature keep their current value.
func WithModelSettings(settings ModelSettings) Option {
	return func(cfg *promptConfig) {
		if settings.Model != "" {
			cfg.settings.Model = settings.Model
		}
		if temperature, ok := settings.GetTemperature(); ok {
			cfg.settings.Temperature = &temperature
		}
		if settings.MaxTokens > 0 {
			cfg.settings.MaxTokens = settings.MaxTokens
		}
	}
}

// WithLogger sets the logger for the prompt.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *promptConfig) {
		cfg.logger = logger
	}
}
