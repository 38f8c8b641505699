package model

import "time"

// Config is the full runtime configuration, loadable from
// ~/.azilut/config.yaml via viper and overridable through AZILUT_* env
// vars and CLI flags.
type Config struct {
	Glossary    GlossaryConfig    `yaml:"glossary" mapstructure:"glossary"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Interpret   InterpretConfig   `yaml:"interpret" mapstructure:"interpret"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// GlossaryConfig controls where the rule table comes from.
type GlossaryConfig struct {
	// Path to a YAML rule table. Empty means the built-in table.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig controls the in-memory normalization cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls batch processing parallelism.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles per-sender submissions in batch mode.
type RateLimitConfig struct {
	MessagesPerSecond float64 `yaml:"messages_per_second" mapstructure:"messages_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// InterpretConfig selects the interpretation collaborator. The heuristic
// interpreter needs no configuration; the LLM-backed one needs a provider
// and credentials. Interpretation is decorative metadata and never affects
// admission.
type InterpretConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "", "heuristic" or "openai"
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Glossary: GlossaryConfig{Path: ""},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{Workers: 4},
		RateLimit: RateLimitConfig{
			MessagesPerSecond: 50,
			Burst:             10,
		},
		Interpret: InterpretConfig{
			Provider:  "", // heuristic
			Timeout:   30,
			MaxTokens: 256,
		},
		Output: OutputConfig{},
	}
}
