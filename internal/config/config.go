package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Display     DisplayConfig     `yaml:"display"`
	Validation  ValidationConfig  `yaml:"validation"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TTI_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TTI_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TTI_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TTI_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TTI_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	CurrencyPrefix string        `yaml:"currency_prefix" env:"TTI_DISPLAY_CURRENCY"`
	DateFormat     string        `yaml:"date_format" env:"TTI_DISPLAY_DATE_FORMAT"`
	TimerInterval  time.Duration `yaml:"timer_interval" env:"TTI_DISPLAY_TIMER_INTERVAL"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	NameMinLength      int           `yaml:"name_min_length" env:"TTI_VALIDATION_NAME_MIN"`
	NameMaxLength      int           `yaml:"name_max_length" env:"TTI_VALIDATION_NAME_MAX"`
	MaxSessionDuration time.Duration `yaml:"max_session_duration" env:"TTI_VALIDATION_MAX_SESSION"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TTI_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TTI_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tti")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tti.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			CurrencyPrefix: "GBP",
			DateFormat:     "02/01/2006",
			TimerInterval:  time.Second,
		},
		Validation: ValidationConfig{
			NameMinLength:      1,
			NameMaxLength:      255,
			MaxSessionDuration: 24 * time.Hour,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// EnsureDatabaseDir creates the database directory if it does not exist
func (c *Config) EnsureDatabaseDir() error {
	return os.MkdirAll(c.Database.Dir, os.FileMode(c.Database.DirPermissions))
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	// Database configuration
	if dir := os.Getenv("TTI_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TTI_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TTI_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TTI_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TTI_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Display configuration
	if prefix := os.Getenv("TTI_DISPLAY_CURRENCY"); prefix != "" {
		c.Display.CurrencyPrefix = prefix
	}
	if format := os.Getenv("TTI_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if interval := os.Getenv("TTI_DISPLAY_TIMER_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Display.TimerInterval = d
		}
	}

	// Validation configuration
	if minLen := os.Getenv("TTI_VALIDATION_NAME_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.NameMinLength = n
		}
	}
	if maxLen := os.Getenv("TTI_VALIDATION_NAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.NameMaxLength = n
		}
	}
	if maxDur := os.Getenv("TTI_VALIDATION_MAX_SESSION"); maxDur != "" {
		if d, err := time.ParseDuration(maxDur); err == nil {
			c.Validation.MaxSessionDuration = d
		}
	}

	// Application configuration
	if timeout := os.Getenv("TTI_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TTI_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}
}
