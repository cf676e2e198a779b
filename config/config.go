package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	PageSize        int     `yaml:"page_size"`
	MaxPageSize     int     `yaml:"max_page_size"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig holds token issuing parameters.
type AuthConfig struct {
	Secret           string        `yaml:"secret"`
	AccessTTLMinutes int           `yaml:"access_ttl_minutes"`
	RefreshTTLDays   int           `yaml:"refresh_ttl_days"`
	AccessTTL        time.Duration `yaml:"-"`
	RefreshTTL       time.Duration `yaml:"-"`
	BcryptCost       int           `yaml:"bcrypt_cost"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warning|error|fatal
	Format string `yaml:"format"` // text|json
}

// BootstrapConfig optionally seeds an initial manager account so a fresh
// deployment can reach the catalog admin endpoints.
type BootstrapConfig struct {
	ManagerUsername string `yaml:"manager_username"`
	ManagerPassword string `yaml:"manager_password"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	if cfg.Server.PageSize <= 0 {
		cfg.Server.PageSize = 50
	}
	if cfg.Server.MaxPageSize <= 0 {
		cfg.Server.MaxPageSize = 500
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret must be configured")
	}
	if cfg.Auth.AccessTTLMinutes <= 0 {
		cfg.Auth.AccessTTLMinutes = 30
	}
	if cfg.Auth.RefreshTTLDays <= 0 {
		cfg.Auth.RefreshTTLDays = 7
	}
	cfg.Auth.AccessTTL = time.Duration(cfg.Auth.AccessTTLMinutes) * time.Minute
	cfg.Auth.RefreshTTL = time.Duration(cfg.Auth.RefreshTTLDays) * 24 * time.Hour
	if cfg.Auth.BcryptCost <= 0 {
		cfg.Auth.BcryptCost = 12
	}

	return &cfg, nil
}
