package model

import "time"

// Config is the complete veridraft configuration
type Config struct {
	Threshold   float64           `yaml:"threshold" mapstructure:"threshold"` // Verification threshold (HALLUCINATION_THRESHOLD)
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Index       IndexConfig       `yaml:"index" mapstructure:"index"`
	FactCheck   FactCheckConfig   `yaml:"factcheck" mapstructure:"factcheck"`
	Enrich      EnrichConfig      `yaml:"enrich" mapstructure:"enrich"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
}

// LLMConfig configures the generation collaborator
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// IndexConfig configures the local authoritative instrument index
type IndexConfig struct {
	DatasetPath string `yaml:"dataset_path,omitempty" mapstructure:"dataset_path"` // Optional YAML dataset, merged over built-ins
}

// FactCheckConfig configures the external fallback lookup
type FactCheckConfig struct {
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // Seconds
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// EnrichConfig configures the optional market-context searcher
type EnrichConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"` // Seconds
}

// ConcurrencyConfig bounds request-scoped parallelism
type ConcurrencyConfig struct {
	VerificationWorkers int `yaml:"verification_workers" mapstructure:"verification_workers"`
	BatchWorkers        int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// CacheConfig configures lookup memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir,omitempty" mapstructure:"dir"` // Disk layer; empty = memory only
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// HTTPConfig holds outbound HTTP settings shared by collaborator clients
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// DefaultConfig returns built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Threshold: 70,
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Index: IndexConfig{},
		FactCheck: FactCheckConfig{
			BaseURL:           "https://normas.leg.example/api/search",
			Timeout:           10,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Enrich: EnrichConfig{
			Enabled: false,
			Timeout: 8,
		},
		Concurrency: ConcurrencyConfig{
			VerificationWorkers: 10,
			BatchWorkers:        4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		HTTP: HTTPConfig{
			UserAgent: "veridraft/0.1 (+https://github.com/rpontes/veridraft)",
		},
	}
}
