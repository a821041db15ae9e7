package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Roster store
	DBDriver    string `mapstructure:"DB_DRIVER"` // "postgres", "sqlite"
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RosterPath  string `mapstructure:"ROSTER_PATH"`

	// Redis
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// Generation
	MaxTeams          int `mapstructure:"MAX_TEAMS"`
	DefaultTeamCount  int `mapstructure:"DEFAULT_TEAM_COUNT"`
	DefaultMaxPerTeam int `mapstructure:"DEFAULT_MAX_PER_TEAM"`
	MaxAttempts       int `mapstructure:"MAX_ATTEMPTS"`
	GenerationWorkers int `mapstructure:"GENERATION_WORKERS"`

	// Rate limiting
	RateLimit float64 `mapstructure:"RATE_LIMIT"`
	RateBurst int     `mapstructure:"RATE_BURST"`

	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`
}

// SetDefaults registers every default on v. Shared by the server and the CLI.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "file:rosters.db?cache=shared")
	v.SetDefault("ROSTER_PATH", "rosters.csv")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "24h")
	v.SetDefault("MAX_TEAMS", 40)
	v.SetDefault("DEFAULT_TEAM_COUNT", 20)
	v.SetDefault("DEFAULT_MAX_PER_TEAM", 7)
	v.SetDefault("MAX_ATTEMPTS", 1000) // 0 retries forever
	v.SetDefault("GENERATION_WORKERS", 1)
	v.SetDefault("RATE_LIMIT", 10.0)
	v.SetDefault("RATE_BURST", 20)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	SetDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.MaxTeams <= 0 {
		return fmt.Errorf("MAX_TEAMS must be positive, got %d", c.MaxTeams)
	}
	if c.DefaultTeamCount <= 0 || c.DefaultTeamCount > c.MaxTeams {
		return fmt.Errorf("DEFAULT_TEAM_COUNT must be in 1..%d, got %d", c.MaxTeams, c.DefaultTeamCount)
	}
	if c.DefaultMaxPerTeam <= 0 {
		return fmt.Errorf("DEFAULT_MAX_PER_TEAM must be positive, got %d", c.DefaultMaxPerTeam)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("MAX_ATTEMPTS must not be negative, got %d", c.MaxAttempts)
	}
	if c.GenerationWorkers < 1 {
		c.GenerationWorkers = 1
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
