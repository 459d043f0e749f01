package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Seeder    SeederConfig    `yaml:"seeder"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"bookshelf"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Embedding providers.
const (
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderStub   = "stub"
)

// EmbeddingConfig holds embedding service settings.
type EmbeddingConfig struct {
	Provider   string        `yaml:"provider"    env:"EMBEDDING_PROVIDER"    env-default:"openai"`
	BaseURL    string        `yaml:"base_url"    env:"EMBEDDING_BASE_URL"    env-default:"https://api.openai.com"`
	APIKey     string        `yaml:"api_key"     env:"EMBEDDING_API_KEY"`
	Model      string        `yaml:"model"       env:"EMBEDDING_MODEL"       env-default:"text-embedding-3-small"`
	Dimensions int           `yaml:"dimensions"  env:"EMBEDDING_DIMENSIONS"  env-default:"1536"`
	Timeout    time.Duration `yaml:"timeout"     env:"EMBEDDING_TIMEOUT"     env-default:"30s"`
	// RequestsPerSecond caps outgoing calls; 0 disables the limiter.
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"EMBEDDING_RPS" env-default:"5"`
}

// SeederConfig holds batch import settings.
type SeederConfig struct {
	CatalogPath    string        `yaml:"catalog_path"    env:"SEEDER_CATALOG_PATH"    env-default:"./catalog.yaml"`
	MaxAttempts    int           `yaml:"max_attempts"    env:"SEEDER_MAX_ATTEMPTS"    env-default:"3"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"SEEDER_INITIAL_BACKOFF" env-default:"1s"`
	DryRun         bool          `yaml:"dry_run"         env:"SEEDER_DRY_RUN"         env-default:"false"`
}
