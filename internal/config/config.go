package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	Secure       bool
	TablePrefix  string
	QueryTimeout time.Duration
}

type SessionConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	IdleTTL   time.Duration
}

type CacheConfig struct {
	MaxEntries int
	ResultTTL  time.Duration
	EventsTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "20002"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("CLICKHOUSE_HOST", "localhost"),
			Port:         getEnv("CLICKHOUSE_PORT", "9000"),
			Username:     getEnv("CLICKHOUSE_USER", "default"),
			Password:     getEnv("CLICKHOUSE_PASSWORD", ""),
			Secure:       getEnvBool("CLICKHOUSE_SECURE", false),
			TablePrefix:  getEnv("CLICKHOUSE_TABLE_PREFIX", "game_analytics"),
			QueryTimeout: getEnvDuration("QUERY_TIMEOUT", 60*time.Second),
		},
		Session: SessionConfig{
			JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
			TokenTTL:  getEnvDuration("SESSION_TOKEN_TTL", 12*time.Hour),
			IdleTTL:   getEnvDuration("SESSION_IDLE_TTL", 2*time.Hour),
		},
		Cache: CacheConfig{
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 1000),
			ResultTTL:  getEnvDuration("CACHE_RESULT_TTL", 30*time.Minute),
			EventsTTL:  getEnvDuration("CACHE_EVENTS_TTL", 1*time.Hour),
		},
	}
}

// Validate catches configuration errors that should block startup.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("CLICKHOUSE_HOST must not be empty")
	}
	if c.Database.TablePrefix == "" {
		return fmt.Errorf("CLICKHOUSE_TABLE_PREFIX must not be empty")
	}
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
