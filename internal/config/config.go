package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort        = 5000
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the audit dashboard server
type Config struct {
	// Server configuration
	Host string
	Port int

	// Upload configuration
	UploadsDirectory string
	MaxFileSize      int64 // Maximum PDF file size in bytes

	// Application configuration
	Version      string
	ServerName   string
	LogLevel     string
	SeedDemoData bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		UploadsDirectory: filepath.Join(currentDir, "uploads"),
		MaxFileSize:      DefaultMaxFileSize,
		Version:          "1.0.0",
		ServerName:       "auditsense",
		LogLevel:         DefaultLogLevel,
		SeedDemoData:     false,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.UploadsDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.UploadsDirectory); err == nil {
			cfg.UploadsDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("AUDITSENSE")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("uploadsdir", cfg.UploadsDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("seed", cfg.SeedDemoData)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("uploadsdir", cfg.UploadsDirectory, "Directory where uploaded PDF files are stored")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Bool("seed", cfg.SeedDemoData, "Preload the dashboard with demonstration data")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("uploadsdir", pflag.Lookup("uploadsdir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("seed", pflag.Lookup("seed"))
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.UploadsDirectory = viper.GetString("uploadsdir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.SeedDemoData = viper.GetBool("seed")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.UploadsDirectory == "" {
		return errors.New("uploads directory cannot be empty")
	}

	// Check if uploads directory exists, create if it doesn't
	if _, err := os.Stat(c.UploadsDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.UploadsDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create uploads directory %s: %w", c.UploadsDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access uploads directory %s: %w", c.UploadsDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host: %s, Port: %d, UploadsDirectory: %s, LogLevel: %s, MaxFileSize: %d, SeedDemoData: %t}",
		c.Host, c.Port, c.UploadsDirectory, c.LogLevel, c.MaxFileSize, c.SeedDemoData)
}
