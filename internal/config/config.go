package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	Port    int    `envconfig:"APP_PORT" default:"8080"`
	Store   StoreConfig
	Limiter RateLimiterConfig
	CORS    CORSConfig
	JWT     JWTConfig
	Groq    GroqConfig
	Cloud   CloudConfig
	Gamify  GamifyConfig
}

// StoreConfig configures the encrypted local journal store.
type StoreConfig struct {
	Dir        string `envconfig:"JOURNAL_DIR" default:"./data"`
	Passphrase string `envconfig:"JOURNAL_PASSPHRASE"`
	Timezone   string `envconfig:"JOURNAL_TIMEZONE" default:"Local"`
}

// RateLimiterConfig configures the advisory per-endpoint limiter.
// Ceilings apply to a trailing 60-second window.
type RateLimiterConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	DefaultCeiling int  `envconfig:"RATE_LIMIT_DEFAULT" default:"30"`
	AICeiling      int  `envconfig:"RATE_LIMIT_AI" default:"5"`
}

// CORSConfig configures trusted browser origins.
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// JWTConfig configures session tokens issued after passcode unlock.
type JWTConfig struct {
	Secret       string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"JWT_TOKEN_TTL" default:"12h"`
	PasscodeHash string        `envconfig:"PASSCODE_HASH" required:"true"`
}

// GroqConfig configures the chat-completion API used for summaries and feedback.
type GroqConfig struct {
	APIKey      string        `envconfig:"GROQ_API_KEY"`
	Model       string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Timeout     time.Duration `envconfig:"GROQ_TIMEOUT" default:"30s"`
	Temperature float32       `envconfig:"GROQ_TEMPERATURE" default:"0.7"`
}

// CloudConfig configures the personal key-value mirror.
type CloudConfig struct {
	Enabled       bool          `envconfig:"CLOUD_SYNC_ENABLED" default:"false"`
	RedisAddr     string        `envconfig:"CLOUD_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"CLOUD_REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"CLOUD_REDIS_DB" default:"0"`
	DrainInterval time.Duration `envconfig:"CLOUD_DRAIN_INTERVAL" default:"1m"`
}

// GamifyConfig configures point awards and level thresholds.
type GamifyConfig struct {
	BasePoints     int `envconfig:"GAMIFY_BASE_POINTS" default:"10"`
	StreakBonus    int `envconfig:"GAMIFY_STREAK_BONUS" default:"2"`
	PointsPerLevel int `envconfig:"GAMIFY_POINTS_PER_LEVEL" default:"100"`
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
	if c.Store.Dir == "" {
		return fmt.Errorf("JOURNAL_DIR must not be empty")
	}
	if c.Limiter.DefaultCeiling < 1 {
		return fmt.Errorf("RATE_LIMIT_DEFAULT must be at least 1")
	}
	if c.Limiter.AICeiling < 1 {
		return fmt.Errorf("RATE_LIMIT_AI must be at least 1")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Gamify.BasePoints < 1 {
		return fmt.Errorf("GAMIFY_BASE_POINTS must be at least 1")
	}
	if c.Gamify.PointsPerLevel < 1 {
		return fmt.Errorf("GAMIFY_POINTS_PER_LEVEL must be at least 1")
	}
	if len(c.GetCORSOrigins()) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid JOURNAL_TIMEZONE: %w", err)
	}
	return nil
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Location resolves the configured timezone used for calendar-day arithmetic.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Store.Timezone)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
