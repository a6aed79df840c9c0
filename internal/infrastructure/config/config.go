// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compliance:
//   - III. Config: Store config in the environment
//   - Configuration is loaded from environment variables (ASPHALT_ prefix)
//   - A config.yaml file is optional
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hapkiduki/asphalt-go/internal/application/service"
)

// EnvPrefix is prepended to every environment variable, e.g. ASPHALT_SERVER_PORT.
const EnvPrefix = "ASPHALT"

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// Database contains saved-calculation storage configuration
	Database DatabaseConfig `mapstructure:"database"`

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Pricing contains calculator defaults
	Pricing PricingConfig `mapstructure:"pricing"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (e.g., development, staging, production)
	Environment string `mapstructure:"environment"`

	// Version of the application
	Version string `mapstructure:"version"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// RequestTimeout bounds handler execution
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxRequestSize is the maximum allowed request body size in bytes
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// LogConfig contains logger configuration.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is json or console
	Format string `mapstructure:"format"`
}

// DatabaseConfig contains SQLite configuration.
type DatabaseConfig struct {
	// Enabled turns saved calculations on
	Enabled bool `mapstructure:"enabled"`

	// Path is the SQLite database file
	Path string `mapstructure:"path"`

	// MaxOpenConns caps concurrent connections
	MaxOpenConns int `mapstructure:"max_open_conns"`
}

// RateLimitConfig contains per-client token bucket settings.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst is the bucket size
	Burst int `mapstructure:"burst"`
}

// PricingConfig contains the defaults applied to fields a request omits.
type PricingConfig struct {
	// ApplyFormDefaults fills missing optional fields with the values below
	ApplyFormDefaults bool `mapstructure:"apply_form_defaults"`

	// DefaultDensity in kg/m³
	DefaultDensity float64 `mapstructure:"default_density"`

	// DefaultPricePerTon in dollars
	DefaultPricePerTon float64 `mapstructure:"default_price_per_ton"`

	// DefaultLaborPerSqFt in dollars per square foot
	DefaultLaborPerSqFt float64 `mapstructure:"default_labor_per_sq_ft"`

	// DefaultBasePerSqFt in dollars per square foot
	DefaultBasePerSqFt float64 `mapstructure:"default_base_per_sq_ft"`
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (if found)
//  3. Default values
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// ., ./configs and /etc/asphalt-go for config.yaml.
//
// Parameters:
//   - path: config file path, or empty to search
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/asphalt-go")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when searching; env vars and defaults apply
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "asphalt-go")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_request_size", 1<<20) // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Database defaults
	v.SetDefault("database.enabled", true)
	v.SetDefault("database.path", "data/calculations.db")
	v.SetDefault("database.max_open_conns", 4)

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	// Pricing defaults mirror the calculator forms
	v.SetDefault("pricing.apply_form_defaults", false)
	v.SetDefault("pricing.default_density", 2400)
	v.SetDefault("pricing.default_price_per_ton", 85)
	v.SetDefault("pricing.default_labor_per_sq_ft", 2.5)
	v.SetDefault("pricing.default_base_per_sq_ft", 1.5)
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT") // PORT is a common convention
}

// Validate checks values that would otherwise fail later at runtime.
//
// Returns:
//   - error: a description of every invalid setting
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxRequestSize <= 0 {
		problems = append(problems, "server.max_request_size must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		problems = append(problems, fmt.Sprintf("log.format %q must be json or console", c.Log.Format))
	}
	if c.Database.Enabled && c.Database.Path == "" {
		problems = append(problems, "database.path is required when database.enabled is true")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		problems = append(problems, "rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	if c.Pricing.DefaultDensity <= 0 {
		problems = append(problems, "pricing.default_density must be positive")
	}
	if c.Pricing.DefaultPricePerTon < 0 || c.Pricing.DefaultLaborPerSqFt < 0 || c.Pricing.DefaultBasePerSqFt < 0 {
		problems = append(problems, "pricing defaults must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Defaults converts the pricing section into sanitizer defaults.
func (p PricingConfig) Defaults() service.Defaults {
	return service.Defaults{
		ApplyFormDefaults: p.ApplyFormDefaults,
		Density:           p.DefaultDensity,
		PricePerTon:       p.DefaultPricePerTon,
		LaborCostPerSqFt:  p.DefaultLaborPerSqFt,
		BaseCostPerSqFt:   p.DefaultBasePerSqFt,
	}
}
