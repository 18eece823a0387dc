package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huanfeng/connhub-cli/pkg/models"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CONNHUB_API_BASE_URL
const EnvPrefix = "CONNHUB"

var defaultConfig = models.Config{
	API: models.APIConfig{
		BaseURL:    "http://localhost:8080/api",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		UserAgent:  "connhub-cli",
	},
	Countries: models.CountriesConfig{
		URL: "https://restcountries.com/v3.1/all?fields=name,cca2",
	},
	Cache: models.CacheConfig{
		Dir: "",
		TTL: 24 * time.Hour,
	},
	View: models.ViewConfig{
		PageSize: 12,
		Sort:     "alphabetical",
		Locale:   "en",
	},
	Log: models.LogConfig{
		Level:  "warn",
		Format: "console",
	},
	Logo: models.LogoConfig{
		MaxSizeBytes: 5 * 1024 * 1024,
		Size:         144,
	},
}

// Defaults returns a copy of the built-in configuration
func Defaults() models.Config {
	return defaultConfig
}

// DefaultCacheDir returns the cache directory used when cache.dir is empty
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "connhub")
	}
	return filepath.Join(os.TempDir(), "connhub")
}

// DefaultConfigDir returns the directory searched for connhub.yaml
func DefaultConfigDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "connhub")
	}
	return "."
}

func setDefaults(v *viper.Viper) {
	d := defaultConfig
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.max_retries", d.API.MaxRetries)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("countries.url", d.Countries.URL)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("view.page_size", d.View.PageSize)
	v.SetDefault("view.sort", d.View.Sort)
	v.SetDefault("view.locale", d.View.Locale)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("user.name", d.User.Name)
	v.SetDefault("user.email", d.User.Email)
	v.SetDefault("logo.max_size_bytes", d.Logo.MaxSizeBytes)
	v.SetDefault("logo.size", d.Logo.Size)
}

// Load loads configuration from file and environment into v. Pass
// viper.GetViper() to share the global instance with cobra flag bindings.
func Load(v *viper.Viper, configPath string) (*models.Config, error) {
	v.SetConfigType("yaml")
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("connhub")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is not an error, we'll use defaults
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir()
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the client cannot work with
func Validate(cfg *models.Config) error {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if cfg.View.PageSize <= 0 {
		return fmt.Errorf("view.page_size must be positive, got %d", cfg.View.PageSize)
	}
	if cfg.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must not be negative")
	}
	if cfg.Logo.MaxSizeBytes <= 0 {
		return fmt.Errorf("logo.max_size_bytes must be positive")
	}
	return nil
}

// SaveTemplate saves a configuration template
func SaveTemplate(path string) error {
	templateContent := `# connhub configuration file

api:
  # Catalog backend, including the /api prefix
  base_url: "http://localhost:8080/api"

  # Per-request timeout
  timeout: 30s

  # Retries for network errors and 5xx responses (4xx are never retried)
  max_retries: 3

countries:
  # Reference country list used to match countries of origin
  url: "https://restcountries.com/v3.1/all?fields=name,cca2"

cache:
  # Leave empty for the user cache directory
  dir: ""

  # How long a downloaded catalog stays fresh
  ttl: 24h

view:
  # Records per page
  page_size: 12

  # alphabetical, popularity or activity
  sort: "alphabetical"

  # Collation locale for alphabetical ordering
  locale: "en"

log:
  # debug, info, warn or error
  level: "warn"

  # console or json
  format: "console"

  # Optional log file in addition to stderr
  file: ""

user:
  # Identity used when voting and requesting integrations
  name: ""
  email: ""

logo:
  max_size_bytes: 5242880

  # Uploaded logos are resized to a square of this many pixels
  size: 144
`

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(templateContent), 0644)
}
