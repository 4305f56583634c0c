// Package config provides functionality for loading and saving configuration
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/source"
	"github.com/uberswe/domainRadar/pkg/util"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is the default name for the configuration file
const DefaultConfigFileName = "config.json"

// DefaultListen is the default address of the HTTP server
const DefaultListen = ":8080"

// Default returns the configuration used when no file is present
func Default() *domain.Config {
	return &domain.Config{
		Username:    os.Getenv("LOOPIA_USERNAME"),
		Password:    os.Getenv("LOOPIA_PASSWORD"),
		Sources:     []domain.Source{{URL: source.DefaultURL, Format: domain.FormatPlain}},
		CacheDir:    "cache",
		CachedLists: make(map[string]string),
		Listen:      DefaultListen,
	}
}

// Load loads the configuration from the config file.
// If the file doesn't exist, it returns a default configuration.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func Load(configFileName string) (*domain.Config, error) {
	config := Default()
	defer applyEnv(config)

	if _, err := os.Stat(configFileName); os.IsNotExist(err) {
		log.Warn().Str("file", configFileName).Msg("Configuration file not found, using defaults and environment variables")
		return config, nil
	}

	data, err := os.ReadFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig domain.Config
	if isYAML(configFileName) {
		err = yaml.Unmarshal(data, &fileConfig)
	} else {
		err = json.Unmarshal(data, &fileConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults
	if fileConfig.Username != "" {
		config.Username = fileConfig.Username
	}
	if fileConfig.Password != "" {
		config.Password = fileConfig.Password
	}
	if len(fileConfig.Sources) > 0 {
		config.Sources = fileConfig.Sources
	}
	if fileConfig.CacheDir != "" {
		config.CacheDir = fileConfig.CacheDir
	}
	if fileConfig.CacheMaxAge != "" {
		config.CacheMaxAge = fileConfig.CacheMaxAge
	}
	if fileConfig.CachedLists != nil {
		config.CachedLists = fileConfig.CachedLists
	}
	if fileConfig.LastCacheTime != "" {
		config.LastCacheTime = fileConfig.LastCacheTime
	}
	if fileConfig.Listen != "" {
		config.Listen = fileConfig.Listen
	}
	config.Filters = fileConfig.Filters

	for i := range config.Sources {
		if config.Sources[i].Format == "" {
			config.Sources[i].Format = domain.FormatPlain
		}
	}

	return config, nil
}

// applyEnv lets environment variables override file values
func applyEnv(config *domain.Config) {
	if config.Username == "" {
		config.Username = os.Getenv("LOOPIA_USERNAME")
	}
	if config.Password == "" {
		config.Password = os.Getenv("LOOPIA_PASSWORD")
	}
	if url := os.Getenv("DOMAINRADAR_SOURCE_URL"); url != "" {
		config.Sources = []domain.Source{{URL: url, Format: domain.FormatPlain}}
	}
}

// Save saves the configuration to the config file
func Save(config *domain.Config, configFileName string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configFileName) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFileName, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CacheMaxAge returns the configured cache lifetime, or util.DefaultCacheMaxAge
// when the value is missing or malformed
func CacheMaxAge(config *domain.Config) time.Duration {
	if config.CacheMaxAge == "" {
		return util.DefaultCacheMaxAge
	}
	d, err := time.ParseDuration(config.CacheMaxAge)
	if err != nil || d <= 0 {
		log.Warn().Str("cache_max_age", config.CacheMaxAge).Msg("Invalid cache max age, using default")
		return util.DefaultCacheMaxAge
	}
	return d
}

// RecordDownloads stores where freshly downloaded lists were cached
func RecordDownloads(config *domain.Config, entries []source.Entry, now time.Time) bool {
	changed := false
	for _, e := range entries {
		if !e.Downloaded {
			continue
		}
		if config.CachedLists == nil {
			config.CachedLists = make(map[string]string)
		}
		config.CachedLists[e.URL] = e.Path
		changed = true
	}
	if changed {
		config.LastCacheTime = now.Format(time.RFC3339)
	}
	return changed
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
