// Package config loads service settings from defaults, an optional YAML
// file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the YAML file to load, if any.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	API      APIConfig      `koanf:"api"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig selects PostgreSQL when Host is set and SQLite otherwise.
type DatabaseConfig struct {
	Path     string `koanf:"path"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

func (d DatabaseConfig) UsePostgres() bool {
	return d.Host != ""
}

func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type SecurityConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	SessionKey string        `koanf:"session_key"`
	SessionTTL time.Duration `koanf:"session_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

type LoggingConfig struct {
	Level        string `koanf:"level"`
	LogstashAddr string `koanf:"logstash_addr"`
}

type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":9090",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:    "socialfeed.db",
			Port:    "5432",
			SSLMode: "require",
		},
		Security: SecurityConfig{
			JWTSecret:  "dev-secret-change-me-dev-secret-change-me",
			TokenTTL:   24 * time.Hour,
			SessionKey: "SESSION_KEY",
			SessionTTL: 16 * time.Hour,
			BcryptCost: 14,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		API: APIConfig{
			DefaultPageSize: 30,
			MaxPageSize:     100,
		},
	}
}

// Load reads configuration using the file named by CONFIG_PATH, if set.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(ConfigPathEnvVar))
}

// LoadFile layers defaults, the YAML file at path (skipped when empty) and
// environment variables.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// PORT may be given as "8080" or ":8080".
	if cfg.Server.Addr != "" && !strings.Contains(cfg.Server.Addr, ":") {
		cfg.Server.Addr = ":" + cfg.Server.Addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

var envMappings = map[string]string{
	"port":                 "server.addr",
	"database":             "database.path",
	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_user":              "database.user",
	"db_password":          "database.password",
	"db_name":              "database.name",
	"db_sslmode":           "database.sslmode",
	"jwt_secret":           "security.jwt_secret",
	"token_ttl":            "security.token_ttl",
	"session_key":          "security.session_key",
	"session_ttl":          "security.session_ttl",
	"bcrypt_cost":          "security.bcrypt_cost",
	"log_level":            "logging.level",
	"logstash_addr":        "logging.logstash_addr",
	"default_page_size":    "api.default_page_size",
	"max_page_size":        "api.max_page_size",
	"server_read_timeout":  "server.read_timeout",
	"server_write_timeout": "server.write_timeout",
}

// envTransformFunc maps known environment variables to koanf paths and
// drops everything else.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	if !c.Database.UsePostgres() && c.Database.Path == "" {
		return fmt.Errorf("database path is required when DB_HOST is not set")
	}
	if c.Database.UsePostgres() && (c.Database.User == "" || c.Database.Name == "") {
		return fmt.Errorf("DB_USER and DB_NAME are required with DB_HOST")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Security.SessionKey == "" {
		return fmt.Errorf("SESSION_KEY is required")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d out of range [4,31]", c.Security.BcryptCost)
	}
	if c.API.DefaultPageSize <= 0 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("invalid page sizes: default=%d max=%d", c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	return nil
}
