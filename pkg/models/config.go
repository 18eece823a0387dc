package models

import "time"

// Config represents the application configuration
type Config struct {
	API       APIConfig       `mapstructure:"api" json:"api" yaml:"api"`
	Countries CountriesConfig `mapstructure:"countries" json:"countries" yaml:"countries"`
	Cache     CacheConfig     `mapstructure:"cache" json:"cache" yaml:"cache"`
	View      ViewConfig      `mapstructure:"view" json:"view" yaml:"view"`
	Log       LogConfig       `mapstructure:"log" json:"log" yaml:"log"`
	User      UserConfig      `mapstructure:"user" json:"user" yaml:"user"`
	Logo      LogoConfig      `mapstructure:"logo" json:"logo" yaml:"logo"`
}

// APIConfig contains catalog backend settings
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" json:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent"`
}

// CountriesConfig points at the reference country list
type CountriesConfig struct {
	URL string `mapstructure:"url" json:"url" yaml:"url"`
}

// CacheConfig contains local cache settings
type CacheConfig struct {
	Dir string        `mapstructure:"dir" json:"dir" yaml:"dir"`
	TTL time.Duration `mapstructure:"ttl" json:"ttl" yaml:"ttl"`
}

// ViewConfig contains list presentation defaults
type ViewConfig struct {
	PageSize int    `mapstructure:"page_size" json:"page_size" yaml:"page_size"`
	Sort     string `mapstructure:"sort" json:"sort" yaml:"sort"`
	Locale   string `mapstructure:"locale" json:"locale" yaml:"locale"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"` // "console" or "json"
	File   string `mapstructure:"file" json:"file" yaml:"file"`
}

// UserConfig identifies the person voting and submitting requests
type UserConfig struct {
	Name  string `mapstructure:"name" json:"name" yaml:"name"`
	Email string `mapstructure:"email" json:"email" yaml:"email"`
}

// LogoConfig limits uploaded logos
type LogoConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes" json:"max_size_bytes" yaml:"max_size_bytes"`
	Size         uint  `mapstructure:"size" json:"size" yaml:"size"`
}
