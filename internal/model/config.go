package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// EmbeddingConfig selects the vector provider for category matching
type EmbeddingConfig struct {
	Provider          string        `yaml:"provider"` // "lexical" (default, deterministic) or "openai"
	Model             string        `yaml:"model"`
	APIKey            string        `yaml:"api_key,omitempty"`
	BaseURL           string        `yaml:"base_url,omitempty"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// LLMConfig configures the optional advisory provider
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "", "openai", "anthropic", "ollama"
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// CacheConfig bounds the embedding-vector cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk layer location; empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
	MaxItems  int           `yaml:"max_items"` // Memory layer cap; full cache is flushed when hit
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults. The lexical provider is
// the default so a fresh install evaluates deterministically with no
// credentials and no network access.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:          "lexical",
			Model:             "text-embedding-3-small",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   15,
			MaxTokens: 1200,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
			MaxItems:  4096,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
