package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/roundtable/core"
)

// Supported provider names.
const (
	ProviderMock      = "mock"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// LimitsConfig is the on-disk shape of the session budget. Durations are
// whole seconds to keep the YAML readable; zero values fall back to the
// library defaults.
type LimitsConfig struct {
	MaxMessages          int     `yaml:"max_messages"`
	MaxTokens            int     `yaml:"max_tokens"`
	MaxSeconds           int     `yaml:"max_seconds"`
	MaxRoundsPerPhase    int     `yaml:"max_rounds_per_phase"`
	ConvergenceThreshold int     `yaml:"convergence_threshold"`
	ConvergenceScore     float64 `yaml:"convergence_score"`
}

// ToLimits converts the config shape into session limits with defaults
// applied.
func (l LimitsConfig) ToLimits() core.Limits {
	return core.Limits{
		MaxMessages:          l.MaxMessages,
		MaxTokens:            l.MaxTokens,
		MaxDuration:          time.Duration(l.MaxSeconds) * time.Second,
		MaxRoundsPerPhase:    l.MaxRoundsPerPhase,
		ConvergenceThreshold: l.ConvergenceThreshold,
		ConvergenceScore:     l.ConvergenceScore,
	}.WithDefaults()
}

// Config is the persisted CLI configuration.
type Config struct {
	// Provider selects the model backend: mock, anthropic or openai.
	Provider string `yaml:"provider"`
	// Model is the provider-specific model identifier. Empty uses the
	// provider default.
	Model string `yaml:"model,omitempty"`
	// Temperature is passed through to the provider.
	Temperature float64 `yaml:"temperature"`
	// TeamFile points to a custom team YAML; empty uses the built-in team.
	TeamFile string `yaml:"team_file,omitempty"`
	// HeuristicOnly disables model-backed willingness polls.
	HeuristicOnly bool `yaml:"heuristic_only"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Limits is the session budget.
	Limits LimitsConfig `yaml:"limits"`
}

// Default returns the baseline configuration: the offline mock provider with
// library-default limits.
func Default() *Config {
	return &Config{
		Provider:    ProviderMock,
		Temperature: 0.7,
		LogLevel:    "info",
	}
}

// Validate checks the fields a session cannot start without.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderMock, ProviderAnthropic, ProviderOpenAI:
	default:
		return &core.ConfigurationError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", c.Provider)}
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return &core.ConfigurationError{Field: "temperature", Reason: "must be between 0 and 2"}
	}
	return nil
}

// Read loads a configuration file. A missing file yields the defaults so
// first runs work without an init step.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write persists the configuration, creating parent directories as needed.
func (c *Config) Write(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ReadBrief loads and validates a project brief from a YAML file.
func ReadBrief(path string) (core.ProjectBrief, error) {
	var brief core.ProjectBrief

	data, err := os.ReadFile(path)
	if err != nil {
		return brief, fmt.Errorf("reading brief: %w", err)
	}
	if err := yaml.Unmarshal(data, &brief); err != nil {
		return brief, fmt.Errorf("parsing brief: %w", err)
	}
	if err := brief.Validate(); err != nil {
		return brief, err
	}
	return brief, nil
}
