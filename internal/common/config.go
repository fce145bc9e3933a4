package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	News        NewsConfig    `toml:"news"`
	Prices      PricesConfig  `toml:"prices"`
	Export      ExportConfig  `toml:"export"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// NewsConfig controls the finviz-style headline source.
type NewsConfig struct {
	BaseURL        string        `toml:"base_url"`        // News listing host
	UserAgent      string        `toml:"user_agent"`      // User-agent header sent with every request
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	RateLimit      int           `toml:"rate_limit"`      // Requests per second
}

// PricesConfig controls the market-data (EOD close series) source.
type PricesConfig struct {
	BaseURL        string        `toml:"base_url"`        // Market-data API base URL
	APIToken       string        `toml:"api_token"`       // API token (required against the real API)
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	RateLimit      int           `toml:"rate_limit"`      // Requests per second
}

// ExportConfig controls CSV export defaults.
type ExportConfig struct {
	DefaultFilename string `toml:"default_filename"` // Used when the request omits a filename
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in signum.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		News: NewsConfig{
			BaseURL:        "https://finviz.com",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout: 30 * time.Second,
			RateLimit:      2, // Conservative: public page, not an API
		},
		Prices: PricesConfig{
			BaseURL:        "https://eodhd.com/api",
			APIToken:       "",
			RequestTimeout: 30 * time.Second,
			RateLimit:      10,
		},
		Export: ExportConfig{
			DefaultFilename: "news_labels.csv",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: SIGNUM_ENV, fallback: GO_ENV)
	if env := os.Getenv("SIGNUM_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("SIGNUM_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SIGNUM_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("SIGNUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("SIGNUM_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	// News source configuration
	if baseURL := os.Getenv("SIGNUM_NEWS_BASE_URL"); baseURL != "" {
		config.News.BaseURL = baseURL
	}
	if userAgent := os.Getenv("SIGNUM_NEWS_USER_AGENT"); userAgent != "" {
		config.News.UserAgent = userAgent
	}
	if timeout := os.Getenv("SIGNUM_NEWS_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.News.RequestTimeout = d
		}
	}
	if rateLimit := os.Getenv("SIGNUM_NEWS_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			config.News.RateLimit = rl
		}
	}

	// Price source configuration
	if baseURL := os.Getenv("SIGNUM_PRICES_BASE_URL"); baseURL != "" {
		config.Prices.BaseURL = baseURL
	}
	if apiToken := os.Getenv("SIGNUM_PRICES_API_TOKEN"); apiToken != "" {
		config.Prices.APIToken = apiToken
	}
	if timeout := os.Getenv("SIGNUM_PRICES_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Prices.RequestTimeout = d
		}
	}
	if rateLimit := os.Getenv("SIGNUM_PRICES_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			config.Prices.RateLimit = rl
		}
	}

	// Export configuration
	if filename := os.Getenv("SIGNUM_EXPORT_DEFAULT_FILENAME"); filename != "" {
		config.Export.DefaultFilename = filename
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := c.Environment
	return env == "production" || env == "prod"
}
