package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"trucklogix-service/internal/timeline"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendModeHTTP = "http"
	BackendModeMock = "mock"
)

type Config struct {
	Port              string
	BackendURL        string
	BackendMode       string
	BackendTimeout    time.Duration
	DatabaseURL       string
	RedisURL          string
	RouteCacheTTL     time.Duration
	ORSAPIKey         string
	NATSURL           string
	NATSSubjectPrefix string
	Palette           timeline.Palette
}

// fileConfig is the optional YAML overlay named by CONFIG_PATH.
type fileConfig struct {
	Backend struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	RouteCache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"route_cache"`
	Palette timeline.Palette `yaml:"palette"`
}

func defaults() *Config {
	return &Config{
		Port:              "8080",
		BackendURL:        "http://localhost:8000/api",
		BackendMode:       BackendModeHTTP,
		BackendTimeout:    30 * time.Second,
		RouteCacheTTL:     10 * time.Minute,
		NATSSubjectPrefix: "trucklogix",
		Palette:           timeline.DefaultPalette(),
	}
}

// Load builds the service configuration. Values come from built-in defaults,
// then the YAML file at CONFIG_PATH (if any), then environment variables,
// with .env loaded into the environment first.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = Get("PORT", cfg.Port)
	cfg.BackendURL = strings.TrimRight(Get("BACKEND_URL", cfg.BackendURL), "/")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.ORSAPIKey = strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubjectPrefix = Get("NATS_SUBJECT_PREFIX", cfg.NATSSubjectPrefix)

	mode := strings.ToLower(Get("BACKEND_MODE", cfg.BackendMode))
	switch mode {
	case BackendModeHTTP, BackendModeMock:
		cfg.BackendMode = mode
	default:
		return nil, fmt.Errorf("invalid BACKEND_MODE: %q", mode)
	}

	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
		}
		cfg.BackendTimeout = d
	}

	if v := os.Getenv("ROUTE_CACHE_TTL"); v != "" {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ROUTE_CACHE_TTL: %w", err)
		}
		cfg.RouteCacheTTL = d
	}

	if cfg.BackendMode == BackendModeHTTP && cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL must be set when BACKEND_MODE=http")
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Backend.URL != "" {
		c.BackendURL = fc.Backend.URL
	}
	if fc.Backend.Timeout != "" {
		d, err := parsePositiveDuration(fc.Backend.Timeout)
		if err != nil {
			return fmt.Errorf("parse config %s: backend.timeout: %w", path, err)
		}
		c.BackendTimeout = d
	}
	if fc.RouteCache.TTL != "" {
		d, err := parsePositiveDuration(fc.RouteCache.TTL)
		if err != nil {
			return fmt.Errorf("parse config %s: route_cache.ttl: %w", path, err)
		}
		c.RouteCacheTTL = d
	}
	c.Palette = fc.Palette.WithDefaults()

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(v string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
