// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional launcher settings file. The settings
// cover launcher-side conveniences only; platform configuration lives in
// the env file cascade, not here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"tekton-cli/internal/dispatch"
)

const (
	// AppName is the settings directory name under the config root.
	AppName = "tekton"
	// FileName is the settings file name (without extension).
	FileName = "config"
	// FileExt is the settings file extension.
	FileExt = "yaml"
)

type (
	// Settings are the launcher's own knobs.
	Settings struct {
		// Interpreter runs the platform scripts.
		Interpreter string `mapstructure:"interpreter"`
		// TillBinary overrides the conventional till location; empty
		// means the dispatcher's convention applies.
		TillBinary string `mapstructure:"till_binary"`
		// Verbose enables verbose error output without -d.
		Verbose bool `mapstructure:"verbose"`
	}

	// LoadOptions override discovery for tests.
	LoadOptions struct {
		// ConfigDir overrides the settings directory.
		ConfigDir string
	}
)

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{Interpreter: dispatch.DefaultInterpreter}
}

// Dir returns the settings directory, $XDG_CONFIG_HOME/tekton or
// ~/.config/tekton.
func Dir() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load reads the settings file when present and returns the defaults
// otherwise. A settings file is never required.
func Load(opts LoadOptions) (Settings, error) {
	dir := opts.ConfigDir
	if dir == "" {
		var err error
		dir, err = Dir()
		if err != nil {
			return DefaultSettings(), err
		}
	}

	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("interpreter", defaults.Interpreter)
	v.SetDefault("till_binary", defaults.TillBinary)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetConfigName(FileName)
	v.SetConfigType(FileExt)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("failed to read launcher settings: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return defaults, fmt.Errorf("failed to parse launcher settings: %w", err)
	}
	return s, nil
}
