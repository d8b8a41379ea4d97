package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients of external APIs.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout (0 means no timeout).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "orquideira/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the search-and-join flow.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SemanticScholarURL is the graph API base, without a trailing slash
	// (default https://api.semanticscholar.org/graph/v1).
	SemanticScholarURL string `json:"semantic_scholar_url" yaml:"semantic_scholar_url" mapstructure:"semantic_scholar_url"`

	// ORCIDURL is the public registry API base (default https://pub.orcid.org/v3.0).
	ORCIDURL string `json:"orcid_url" yaml:"orcid_url" mapstructure:"orcid_url"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// ORCIDToken is an optional read-public bearer token.
	ORCIDToken string `json:"orcid_token,omitempty" yaml:"orcid_token,omitempty" mapstructure:"orcid_token"`

	// MaxResults caps the number of upstream search hits requested
	// (0 lets the API decide).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MaxEnrichmentConcurrency bounds concurrent profile lookups
	// (default 8, 0 means unbounded).
	MaxEnrichmentConcurrency int `json:"max_enrichment_concurrency" yaml:"max_enrichment_concurrency" mapstructure:"max_enrichment_concurrency"`

	// RequestsPerSecond throttles outbound requests (0 means unlimited).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// RateLimitRetries is how many times an HTTP 429 is retried with
	// backoff (0 disables retries).
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`
}

// SessionConfig holds settings for the local authentication stub.
type SessionConfig struct {
	// StateDir is where the session key and preferences are stored
	// (default ~/.config/orquideira/state).
	StateDir string `json:"state_dir" yaml:"state_dir" mapstructure:"state_dir"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// JWTSecret signs session tokens. Loaded from .secrets/jwt-secret when empty.
	JWTSecret string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty" mapstructure:"jwt_secret"`

	// TokenTTL is the session token lifetime (default 24h).
	TokenTTL time.Duration `json:"token_ttl" yaml:"token_ttl" mapstructure:"token_ttl"`
}

// CatalogConfig holds settings for the mock catalog.
type CatalogConfig struct {
	// Fixture is an optional YAML file replacing the embedded dataset.
	Fixture string `json:"fixture,omitempty" yaml:"fixture,omitempty" mapstructure:"fixture"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Session SessionConfig `json:"session" yaml:"session" mapstructure:"session"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
