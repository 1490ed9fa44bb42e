package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port            string `yaml:"port"`
	LogLevel        string `yaml:"logLevel"`
	DatabaseURL     string `yaml:"databaseURL"`
	RedisAddr       string `yaml:"redisAddr"`
	RedisPassword   string `yaml:"redisPassword"`
	SessionTTL      string `yaml:"sessionTTL"`
	SessionStrategy string `yaml:"sessionStrategy"`
	JWTSecret       string `yaml:"jwtSecret"`
	AdminPassword   string `yaml:"adminPassword"`

	// LoginRateLimitPerMinute caps login attempts per client IP;
	// zero disables throttling.
	LoginRateLimitPerMinute int `yaml:"loginRateLimitPerMinute"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		cfg.SessionTTL = v
	}
	if v := os.Getenv("SESSION_STRATEGY"); v != "" {
		cfg.SessionStrategy = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
	if v := os.Getenv("LOGIN_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LoginRateLimitPerMinute = n
		}
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	switch cfg.SessionStrategy {
	case "", "memory", "redis", "jwt":
	default:
		return fmt.Errorf("config: unknown sessionStrategy %q (want memory, redis or jwt)", cfg.SessionStrategy)
	}
	if cfg.SessionStrategy == "jwt" && cfg.JWTSecret == "" {
		return errors.New("config: jwtSecret is required for the jwt session strategy (set JWT_SECRET)")
	}
	if cfg.SessionStrategy == "redis" && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required for the redis session strategy (set REDIS_ADDR)")
	}
	if cfg.LoginRateLimitPerMinute < 0 {
		return errors.New("config: loginRateLimitPerMinute must be >= 0")
	}
	if _, err := ParseSessionTTL(cfg.SessionTTL); err != nil {
		return err
	}
	return nil
}

// ParseSessionTTL parses optional session TTL duration string.
func ParseSessionTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("invalid sessionTTL duration: %w", err)
	}
	if dur <= 0 {
		return 0, fmt.Errorf("invalid sessionTTL duration: %s must be positive", ttlStr)
	}
	return dur, nil
}
