// Package config provides configuration management for the mcloud OAuth2
// server core.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
)

var validate = validator.New()

// Config holds the configuration for the server core
type Config struct {
	Database   DatabaseConfig   `yaml:"database" json:"database" mapstructure:"database"`
	Security   SecurityConfig   `yaml:"security" json:"security" mapstructure:"security"`
	Pagination PaginationConfig `yaml:"pagination" json:"pagination" mapstructure:"pagination"`

	// EnableAuditLog turns on best-effort audit entries for mutating
	// service operations.
	EnableAuditLog bool `yaml:"enable_audit_log" json:"enable_audit_log" mapstructure:"enable_audit_log"`

	LogLevel string `yaml:"log_level" json:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`

	mu sync.RWMutex
}

// DatabaseConfig holds the entity store connection settings
type DatabaseConfig struct {
	Type string `yaml:"type" json:"type" mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	Path string `yaml:"path" json:"path" mapstructure:"path"` // SQLite database file path
	URL  string `yaml:"url" json:"url" mapstructure:"url"`    // Connection URL for non-SQLite databases

	// Connection retry policy applied while opening the store.
	ConnectAttempts int           `yaml:"connect_attempts" json:"connect_attempts" mapstructure:"connect_attempts" validate:"min=1"`
	ConnectDelay    time.Duration `yaml:"connect_delay" json:"connect_delay" mapstructure:"connect_delay"`
}

// SecurityConfig holds hashing settings
type SecurityConfig struct {
	// BcryptCost is the work factor handed to the password hasher.
	BcryptCost int `yaml:"bcrypt_cost" json:"bcrypt_cost" mapstructure:"bcrypt_cost" validate:"min=4,max=31"`
}

// PaginationConfig holds paged-scan defaults
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" json:"default_limit" mapstructure:"default_limit" validate:"min=1"`
	MaxLimit     int `yaml:"max_limit" json:"max_limit" mapstructure:"max_limit" validate:"min=1"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Type:            "sqlite",
			Path:            "./data/mcloud_oauth.db",
			ConnectAttempts: 3,
			ConnectDelay:    time.Second,
		},
		Security: SecurityConfig{
			BcryptCost: 10,
		},
		Pagination: PaginationConfig{
			DefaultLimit: 20,
			MaxLimit:     200,
		},
		EnableAuditLog: true,
		LogLevel:       "info",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validate.Struct(c); err != nil {
		return errors.NewConfigInvalidError(err.Error())
	}

	if c.Database.Type == "sqlite" && c.Database.Path == "" {
		return errors.NewConfigInvalidError("database.path is required for SQLite")
	}
	if c.Database.Type != "sqlite" && c.Database.URL == "" {
		return errors.NewConfigInvalidError("database.url is required for non-SQLite databases")
	}
	if c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return errors.NewConfigInvalidError("pagination.max_limit must not be below pagination.default_limit")
	}

	return nil
}

// FromYAMLFile loads configuration from a YAML file
func (c *Config) FromYAMLFile(path string) error {
	return c.fromFile(path, "yaml")
}

// FromJSONFile loads configuration from a JSON file
func (c *Config) FromJSONFile(path string) error {
	return c.fromFile(path, "json")
}

func (c *Config) fromFile(path, format string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(format)

	if err := v.ReadInConfig(); err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to read config file %s: %v", path, err))
	}

	if err := v.Unmarshal(c); err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to unmarshal config file %s: %v", path, err))
	}

	return nil
}

// ToYAMLFile saves configuration to a YAML file
func (c *Config) ToYAMLFile(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to create directory: %v", err))
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to marshal config: %v", err))
	}

	return os.WriteFile(path, data, 0644)
}

// LoadFromEnv overlays environment variables onto the configuration using
// the given prefix, e.g. MCLOUD_DATABASE_TYPE for database.type.
func (c *Config) LoadFromEnv(prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys it has seen, so every key is bound
	// explicitly.
	for _, key := range []string{
		"database.type", "database.path", "database.url",
		"database.connect_attempts", "database.connect_delay",
		"security.bcrypt_cost",
		"pagination.default_limit", "pagination.max_limit",
		"enable_audit_log", "log_level",
	} {
		if err := v.BindEnv(key); err != nil {
			return errors.NewConfigError(fmt.Sprintf("failed to bind env key %s: %v", key, err))
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to unmarshal environment: %v", err))
	}

	return nil
}

// Watch reloads the file on change and hands the result to onChange. A
// reload that fails to parse or validate is dropped and never replaces a
// good configuration.
func (c *Config) Watch(path string, onChange func(*Config)) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to read config file %s: %v", path, err))
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		next := DefaultConfig()
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := next.Validate(); err != nil {
			return
		}
		onChange(next)
	})
	v.WatchConfig()

	return nil
}
