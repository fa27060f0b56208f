// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig     `mapstructure:"app"`
	Server       ServerConfig  `mapstructure:"server"`
	Stats        StatsConfig   `mapstructure:"stats"`
	GenAI        GenAIConfig   `mapstructure:"genai"`
	Logging      LoggingConfig `mapstructure:"logging"`
	RegistryPath string        `mapstructure:"registry_path"`
}

type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment" validate:"oneof=development staging production test"`
}

type ServerConfig struct {
	Host            string     `mapstructure:"host"`
	Port            int        `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     int        `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int        `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int        `mapstructure:"shutdown_timeout"` // milliseconds
	CORS            CORSConfig `mapstructure:"cors"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig defaults to allowing everything, which is not suitable for production.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1"`
	AllowedMethods []string `mapstructure:"allowed_methods" validate:"min=1"`
	AllowedHeaders []string `mapstructure:"allowed_headers" validate:"min=1"`
	MaxAge         int      `mapstructure:"max_age"` // seconds

	// With a "*" origin and credentials the caller's origin is echoed back.
	AllowCredentials bool `mapstructure:"allow_credentials"`
}

// StatsConfig points at the balldontlie-compatible stats provider.
type StatsConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout" validate:"min=0"` // milliseconds, 0 = client default
}

// GenAIConfig points at the text generation provider.
type GenAIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key" validate:"required"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout" validate:"min=0"` // milliseconds, 0 = client default
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
