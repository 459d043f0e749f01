package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must be <= max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Embedding.validate(); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}

	if err := c.Seeder.validate(); err != nil {
		return fmt.Errorf("seeder: %w", err)
	}

	return nil
}

func (e *EmbeddingConfig) validate() error {
	switch e.Provider {
	case EmbeddingProviderOpenAI:
		if e.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %q", e.Provider)
		}
		if e.BaseURL == "" {
			return fmt.Errorf("base_url is required for provider %q", e.Provider)
		}
	case EmbeddingProviderStub:
	default:
		return fmt.Errorf("unknown provider %q (allowed: %s, %s)", e.Provider, EmbeddingProviderOpenAI, EmbeddingProviderStub)
	}

	if e.Dimensions <= 0 {
		return fmt.Errorf("dimensions must be > 0 (got %d)", e.Dimensions)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", e.Timeout)
	}
	if e.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0 (got %v)", e.RequestsPerSecond)
	}
	return nil
}

func (s *SeederConfig) validate() error {
	if s.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", s.MaxAttempts)
	}
	if s.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be > 0 (got %s)", s.InitialBackoff)
	}
	return nil
}
