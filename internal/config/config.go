// Package config provides configuration loading and validation for the CLI
// and the aggregation engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Default operational knobs.
const (
	// DefaultFetchTimeout is the per-request HTTP timeout.
	DefaultFetchTimeout = 15 * time.Second
	// DefaultRunBudget is the wall-clock budget for one discovery run.
	DefaultRunBudget = 90 * time.Second
	// DefaultSearchRate is the request rate against the keyed search
	// provider, in requests per second.
	DefaultSearchRate = 1.0
)

// Duration wraps time.Duration so config files can say "90s" or "2m".
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds everything the aggregation engine needs to run. All fields
// are optional; missing values fall back to defaults.
type Config struct {
	// Credentials
	SerperAPIKey string `json:"serper_api_key,omitempty"` // keyed search provider credential
	GoogleAPIKey string `json:"google_api_key,omitempty"` // Google Custom Search credential
	GoogleCX     string `json:"google_cx,omitempty"`      // Google Custom Search engine ID

	// Timing
	FetchTimeout Duration `json:"fetch_timeout,omitempty"` // per-request HTTP timeout
	RunBudget    Duration `json:"run_budget,omitempty"`    // wall-clock budget per run

	// Behavior
	SearchRate  float64 `json:"search_rate,omitempty"`  // requests/second against the search provider
	SearchBurst int     `json:"search_burst,omitempty"` // allowed burst against the search provider; 0 means evenly spaced
	UseBrowser  bool    `json:"use_browser,omitempty"`  // headless render fallback for SPA listing pages
	Verbose     bool    `json:"verbose,omitempty"`      // detailed per-source output
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() *Config {
	return &Config{
		SerperAPIKey: os.Getenv("SERPER_API_KEY"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GoogleCX:     os.Getenv("GOOGLE_SEARCH_CX"),
		FetchTimeout: Duration(getEnvDuration("JOBRADAR_FETCH_TIMEOUT", 0)),
		RunBudget:    Duration(getEnvDuration("JOBRADAR_RUN_BUDGET", 0)),
		SearchRate:   getEnvFloat("JOBRADAR_SEARCH_RATE", 0),
		SearchBurst:  getEnvInt("JOBRADAR_SEARCH_BURST", 0),
		UseBrowser:   getEnvBool("JOBRADAR_USE_BROWSER", false),
		Verbose:      getEnvBool("JOBRADAR_VERBOSE", false),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.SearchRate < 0 {
		return fmt.Errorf("config error: 'search_rate' must be non-negative")
	}
	if c.SearchBurst < 0 {
		return fmt.Errorf("config error: 'search_burst' must be non-negative")
	}
	if time.Duration(c.FetchTimeout) < 0 {
		return fmt.Errorf("config error: 'fetch_timeout' must be non-negative")
	}
	if time.Duration(c.RunBudget) < 0 {
		return fmt.Errorf("config error: 'run_budget' must be non-negative")
	}
	if (c.GoogleAPIKey == "") != (c.GoogleCX == "") {
		return fmt.Errorf("config error: 'google_api_key' and 'google_cx' must be set together")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to layer a config file under environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.SerperAPIKey == "" {
		result.SerperAPIKey = defaults.SerperAPIKey
	}
	if result.GoogleAPIKey == "" {
		result.GoogleAPIKey = defaults.GoogleAPIKey
	}
	if result.GoogleCX == "" {
		result.GoogleCX = defaults.GoogleCX
	}
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.RunBudget == 0 {
		result.RunBudget = defaults.RunBudget
	}
	if result.SearchRate == 0 {
		result.SearchRate = defaults.SearchRate
	}
	if result.SearchBurst == 0 {
		result.SearchBurst = defaults.SearchBurst
	}
	// Bool fields: cannot distinguish unset from false, so env/CLI wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// FetchTimeoutOrDefault returns the configured per-request timeout.
func (c *Config) FetchTimeoutOrDefault() time.Duration {
	if c.FetchTimeout > 0 {
		return time.Duration(c.FetchTimeout)
	}
	return DefaultFetchTimeout
}

// RunBudgetOrDefault returns the configured wall-clock budget.
func (c *Config) RunBudgetOrDefault() time.Duration {
	if c.RunBudget > 0 {
		return time.Duration(c.RunBudget)
	}
	return DefaultRunBudget
}

// SearchRateOrDefault returns the configured search request rate.
func (c *Config) SearchRateOrDefault() float64 {
	if c.SearchRate > 0 {
		return c.SearchRate
	}
	return DefaultSearchRate
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
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
