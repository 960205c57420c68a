package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     int    `envconfig:"APP_PORT" default:"8080"`
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Genai    GenaiConfig
	Pipeline PipelineConfig
	CORS     CORSConfig
}

// database configuration
type DBConfig struct {
	DSN      string `envconfig:"DATABASE_URL" required:"true"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"20"`
}

// redis configuration; the cache is optional, an empty addr disables it
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_BANK_TTL" default:"5m"`
}

// JWT configuration
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

// generative content service configuration
type GenaiConfig struct {
	APIKey  string        `envconfig:"GENAI_API_KEY" required:"true"`
	Model   string        `envconfig:"GENAI_MODEL" default:"meta-llama/llama-4-maverick-17b-128e-instruct"`
	BaseURL string        `envconfig:"GENAI_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Timeout time.Duration `envconfig:"GENAI_TIMEOUT" default:"60s"`
}

// interview build pipeline configuration
type PipelineConfig struct {
	BaseCount      int `envconfig:"PIPELINE_BASE_COUNT" default:"5"`
	ExclusionLimit int `envconfig:"PIPELINE_EXCLUSION_LIMIT" default:"50"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Pipeline.BaseCount < 1 {
		return fmt.Errorf("PIPELINE_BASE_COUNT must be at least 1")
	}
	if c.Pipeline.ExclusionLimit < 1 {
		return fmt.Errorf("PIPELINE_EXCLUSION_LIMIT must be at least 1")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
