package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full web process configuration. Values resolve in order:
// defaults, then the YAML file, then STORE_WEB_* environment variables.
type Config struct {
	Env  string `yaml:"env"`
	Addr string `yaml:"addr"`

	TemplatesDir string `yaml:"templates_dir"`
	StaticDir    string `yaml:"static_dir"`
	LocalesDir   string `yaml:"locales_dir"`

	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`

	Site struct {
		Name    string `yaml:"name"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"site"`

	Listing struct {
		// BaseURL of the product listing endpoint. Empty means the built-in
		// fake catalog serves results.
		BaseURL string `yaml:"base_url"`
	} `yaml:"listing"`

	Reviews struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"reviews"`

	Browse struct {
		DebounceMs    int `yaml:"debounce_ms"`
		SessionTTLMin int `yaml:"session_ttl_min"`
	} `yaml:"browse"`
}

func defaults() *Config {
	c := &Config{
		Env:           "dev",
		Addr:          ":8080",
		TemplatesDir:  "templates",
		StaticDir:     "static",
		LocalesDir:    "locales",
		DefaultLocale: "fa",
		Locales:       []string{"fa", "en"},
	}
	c.Site.Name = "سبزبازار"
	c.Site.BaseURL = "http://localhost:8080"
	c.Browse.DebounceMs = 300
	c.Browse.SessionTTLMin = 30
	return c
}

// Load reads configuration. path may be empty or point at a missing file; a
// .env file next to the binary is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	c := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	c.applyEnv()

	if c.Browse.DebounceMs <= 0 {
		c.Browse.DebounceMs = 300
	}
	if c.Browse.SessionTTLMin <= 0 {
		c.Browse.SessionTTLMin = 30
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STORE_WEB_ENV"); v != "" {
		c.Env = v
	}
	// port resolution prefers STORE_WEB_PORT, then the platform's PORT
	if v := os.Getenv("STORE_WEB_PORT"); v != "" {
		c.Addr = ":" + v
	} else if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("STORE_WEB_TEMPLATES_DIR"); v != "" {
		c.TemplatesDir = v
	}
	if v := os.Getenv("STORE_WEB_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("STORE_WEB_LOCALES_DIR"); v != "" {
		c.LocalesDir = v
	}
	if v := os.Getenv("STORE_WEB_SITE_BASE_URL"); v != "" {
		c.Site.BaseURL = v
	}
	if v := os.Getenv("STORE_WEB_LISTING_BASE_URL"); v != "" {
		c.Listing.BaseURL = v
	}
	if v := os.Getenv("STORE_WEB_REVIEWS_BASE_URL"); v != "" {
		c.Reviews.BaseURL = v
	}
	if v := os.Getenv("STORE_WEB_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Browse.DebounceMs = n
		}
	}
}

// DebounceWindow returns the facet-edit quiescence window as a duration.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Browse.DebounceMs) * time.Millisecond
}

// SessionTTL returns how long an idle browse session keeps its filter state.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Browse.SessionTTLMin) * time.Minute
}

// IsProd reports whether the process runs with production hardening.
func (c *Config) IsProd() bool { return c.Env == "prod" }
