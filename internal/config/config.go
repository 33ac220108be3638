package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"derrclan.com/ayah/internal/alquran"
)

// Environment variables read by Load.
const (
	EnvBaseURL       = "AYAH_BASE_URL"
	EnvTimeout       = "AYAH_TIMEOUT"
	EnvRetries       = "AYAH_RETRIES"
	EnvRetryDelay    = "AYAH_RETRY_DELAY"
	EnvArabicEdition = "AYAH_ARABIC_EDITION"
	EnvTranslation   = "AYAH_TRANSLATION"
	EnvLogLevel      = "AYAH_LOG_LEVEL"
)

// Config holds the settings read at startup.
type Config struct {
	// BaseURL is the AlQuran.cloud API root, without a trailing slash
	BaseURL string `json:"baseURL"`

	// Timeout bounds each HTTP attempt
	Timeout time.Duration `json:"timeout"`

	// Retries is how many times a transient failure is retried
	Retries int `json:"retries"`

	// RetryDelay is the fixed wait between attempts
	RetryDelay time.Duration `json:"retryDelay"`

	// ArabicEdition is the edition used for the Arabic text
	ArabicEdition string `json:"arabicEdition"`

	// Translation is a translation alias or edition identifier
	Translation string `json:"translation"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:       alquran.DefaultBaseURL,
		Timeout:       alquran.DefaultTimeout,
		Retries:       alquran.DefaultRetries,
		RetryDelay:    alquran.DefaultRetryDelay,
		ArabicEdition: alquran.DefaultArabicEdition,
		Translation:   "sahih",
		LogLevel:      "warn",
	}
}

// Load returns the default configuration overridden by the environment.
// Values from getenv win over values read from envFiles; env files that do
// not exist are skipped.
func Load(getenv func(string) string, envFiles ...string) (*Config, error) {
	fileEnv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(fileEnv[key])
	}

	cfg := Default()

	if v := lookup(EnvBaseURL); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := lookup(EnvRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvRetries, err)
		}
		cfg.Retries = n
	}
	if v := lookup(EnvRetryDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvRetryDelay, err)
		}
		cfg.RetryDelay = d
	}
	if v := lookup(EnvArabicEdition); v != "" {
		cfg.ArabicEdition = v
	}
	if v := lookup(EnvTranslation); v != "" {
		cfg.Translation = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an http or https URL", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.RetryDelay)
	}
	if c.ArabicEdition == "" {
		return errors.New("arabic edition must not be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}

	return nil
}

func readEnvFiles(paths []string) (map[string]string, error) {
	env := map[string]string{}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		// Earlier files win, matching godotenv.Load.
		for k, v := range values {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}
	return env, nil
}
