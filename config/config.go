package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"githubsearch/logger"
)

const (
	DefaultPort            = 5000
	DefaultGitHubAPIURL    = "https://api.github.com"
	DefaultLogLevel        = "info"
	DefaultConfigFile      = ".env"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds all configuration for the application
type Config struct {
	Port            int
	GitHubToken     string
	GitHubAPIURL    string
	LogLevel        string
	DatabaseURL     string
	ShutdownTimeout time.Duration

	v         *viper.Viper
	fileFound bool
	mu        sync.Mutex
	onChange  []func(*Config)
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{v: viper.New()}
}

// Load loads configuration from the optional config file and environment variables
func (c *Config) Load() error {
	c.v.SetConfigFile(DefaultConfigFile)
	c.v.AutomaticEnv()
	if path := c.v.GetString("CONFIG_FILE"); path != "" {
		c.v.SetConfigFile(path)
	}

	c.v.SetDefault("PORT", DefaultPort)
	c.v.SetDefault("GITHUB_API_URL", DefaultGitHubAPIURL)
	c.v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	c.v.SetDefault("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)

	// Read the config file if it exists
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		c.fileFound = true
	}

	return c.apply()
}

func (c *Config) apply() error {
	c.Port = c.v.GetInt("PORT")
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	// Optional: unauthenticated requests work with a lower rate limit
	c.GitHubToken = c.v.GetString("GITHUB_TOKEN")

	c.GitHubAPIURL = c.v.GetString("GITHUB_API_URL")
	c.LogLevel = c.v.GetString("LOG_LEVEL")

	c.ShutdownTimeout = c.v.GetDuration("SHUTDOWN_TIMEOUT")
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}

	c.DatabaseURL = c.v.GetString("DATABASE_URL")
	if c.DatabaseURL == "" && c.v.GetString("POSTGRES_HOST") != "" {
		c.DatabaseURL = fmt.Sprintf(
			"user=%s password=%s dbname=%s port=%s host=%s sslmode=disable",
			c.v.GetString("POSTGRES_USER"),
			c.v.GetString("POSTGRES_PASSWORD"),
			c.v.GetString("POSTGRES_DB"),
			c.v.GetString("POSTGRES_PORT"),
			c.v.GetString("POSTGRES_HOST"),
		)
	}

	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// HasDatabase reports whether a database connection is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// OnChange registers a callback invoked after the config file changes and
// has been re-applied.
func (c *Config) OnChange(fn func(*Config)) {
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

// Watch starts watching the config file for changes. It is a no-op when no
// config file was loaded.
func (c *Config) Watch() bool {
	if !c.fileFound {
		return false
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("Config file changed", zap.String("file", e.Name))
		c.reload()
	})
	c.v.WatchConfig()
	return true
}

func (c *Config) reload() {
	c.mu.Lock()
	err := c.apply()
	callbacks := slices.Clone(c.onChange)
	c.mu.Unlock()
	if err != nil {
		logger.Error("Failed to reload config", zap.Error(err))
		return
	}
	for _, fn := range callbacks {
		fn(c)
	}
}
