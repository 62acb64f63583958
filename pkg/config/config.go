// Package config loads the orchestrator configuration that tells unbox where
// the synchronized volume and the local unbox directory live.
//
// Configuration is layered: built-in defaults, then config.json (the format
// shared with other machines syncing the volume), then an optional
// .unbox.toml with local overrides, then UNBOX_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration file names
const (
	// ConfigFileName is the shared JSON configuration file
	ConfigFileName = "config.json"

	// OverrideFileName is the optional local TOML override file
	OverrideFileName = ".unbox.toml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "UNBOX_"
)

// Config is the collaborator configuration consumed by the orchestrator.
type Config struct {
	// ResourcesDirectory is where candidate resources are discovered
	ResourcesDirectory string `koanf:"resources_directory"`

	// VolumeDirectory is the root of the synchronized volume
	VolumeDirectory string `koanf:"volume_directory"`

	// LocalDirectory is the local unbox directory; empty means the XDG
	// data default
	LocalDirectory string `koanf:"local_directory"`

	// TerminalColorCodes maps message kinds (info, added, warning, error)
	// to terminal color names
	TerminalColorCodes map[string]string `koanf:"terminal_color_codes"`
}

// defaults returns the built-in configuration layer.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"resources_directory": "",
		"volume_directory":    "",
		"local_directory":     "",
		"terminal_color_codes": map[string]string{
			"info":    "cyan",
			"added":   "green",
			"warning": "yellow",
			"error":   "red",
		},
	}
}

// Load reads configuration from configPath, or from the default locations
// when configPath is empty: $XDG_CONFIG_HOME/unbox/config.json, then
// ./config.json. A missing config file is not an error; the defaults and
// environment still apply.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file does not exist: %s", configPath)
		}
		if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configPath)
		}

		// Local overrides sit next to the shared config file.
		overridePath := filepath.Join(filepath.Dir(configPath), OverrideFileName)
		if _, err := os.Stat(overridePath); err == nil {
			if err := k.Load(file.Provider(overridePath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", overridePath)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// findConfigFile returns the first default config location that exists.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(xdg.ConfigHome, "unbox", ConfigFileName),
		ConfigFileName,
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
