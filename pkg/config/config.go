// Package config loads aurum's user configuration.
//
// Settings live in ~/.config/aurum/config.yml (honoring XDG_CONFIG_HOME)
// and every key can be overridden through an AURUM_-prefixed environment
// variable, e.g. AURUM_MAX_RESULTS=50. A missing file is not an error;
// defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/aurum/pkg/aur"
)

const appName = "aurum"

// Config holds the user-tunable settings.
type Config struct {
	// AURURL is the package index endpoint.
	AURURL string `mapstructure:"aur_url"`

	// CacheDir roots both source checkouts (<dir>/pkg) and index response
	// caches (<dir>/api).
	CacheDir string `mapstructure:"cache_dir"`

	// MaxResults caps how many search hits are listed.
	MaxResults int `mapstructure:"max_results"`

	// ResultTTL bounds how long index responses are served from cache.
	ResultTTL time.Duration `mapstructure:"result_ttl"`
}

// PkgDir returns the directory holding package working copies.
func (c Config) PkgDir() string { return filepath.Join(c.CacheDir, "pkg") }

// APIDir returns the directory holding cached index responses.
func (c Config) APIDir() string { return filepath.Join(c.CacheDir, "api") }

// Default returns the built-in settings.
func Default() (Config, error) {
	cacheDir, err := defaultCacheDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		AURURL:     aur.DefaultBaseURL,
		CacheDir:   cacheDir,
		MaxResults: 25,
		ResultTTL:  24 * time.Hour,
	}, nil
}

// Dir returns the configuration directory, $XDG_CONFIG_HOME/aurum or
// ~/.config/aurum.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Load reads config.yml from the configuration directory.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.yml from dir, applying defaults for missing keys
// and AURUM_* environment overrides on top.
func LoadFrom(dir string) (Config, error) {
	defaults, err := Default()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("aur_url", defaults.AURURL)
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("max_results", defaults.MaxResults)
	v.SetDefault("result_ttl", defaults.ResultTTL)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("AURUM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaults.CacheDir
	}
	return cfg, nil
}

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}
