// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads Lockam settings from defaults, YAML files, LOCKAM_*
// environment variables and command flags, and writes them back to disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "lockam"
	envPrefix  = "lockam"
)

type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

type InstallConfig struct {
	// Marker is the file whose presence means setup has completed.
	Marker string `mapstructure:"marker" yaml:"marker"`
}

type CredentialsConfig struct {
	// Policy is "single" or "multi".
	Policy string `mapstructure:"policy" yaml:"policy"`
}

type ValidationConfig struct {
	MinAgeYears int `mapstructure:"min_age_years" yaml:"min_age_years"`
}

// Config is the full application configuration.
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database" yaml:"database"`
	Install     InstallConfig     `mapstructure:"install" yaml:"install"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
	Validation  ValidationConfig  `mapstructure:"validation" yaml:"validation"`
	Language    string            `mapstructure:"language" yaml:"language"`
	Debug       bool              `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the built-in values keyed the way flags and env vars
// name them.
func Defaults() map[string]any {
	dataDir := DataDir()
	return map[string]any{
		"database.type":            "sqlite",
		"database.dsn":             filepath.Join(dataDir, "lockam.db"),
		"install.marker":           filepath.Join(dataDir, ".installed"),
		"credentials.policy":       "single",
		"validation.min_age_years": 5,
		"language":                 "en",
		"debug":                    false,
	}
}

// DataDir is where the database and install marker live by default.
func DataDir() string {
	switch runtime.GOOS {
	case "windows":
		if d := os.Getenv("LOCALAPPDATA"); d != "" {
			return filepath.Join(d, "Lockam")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "Lockam")
		}
	default:
		if d := os.Getenv("XDG_DATA_HOME"); d != "" {
			return filepath.Join(d, "lockam")
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", "lockam")
		}
	}
	return filepath.Join(".", "lockam-data")
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Lockam")
		default:
			configDir = "/etc/lockam"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "lockam")
	}

	return filepath.Join(configDir, configName+".yaml"), nil
}

// LoadConfig resolves T from defaults, the first lockam.yaml found (or the
// explicit path), LOCKAM_* environment variables and the flags of cmd, in
// increasing precedence. A missing config file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteConfigFile stores c as YAML in the user or system config location
// and returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the DSN may carry database credentials.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
