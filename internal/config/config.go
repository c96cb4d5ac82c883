// Package config loads the extpack configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/extkit/extpack/internal/messages"
)

// AutoCLI is the cli value meaning "detect the editor CLI automatically".
const AutoCLI = "auto"

// DefaultCLI is the invocation name used when detection finds no candidate;
// it resolves through the execution environment's search path.
const DefaultCLI = "code"

// Config is the extpack configuration surface.
type Config struct {
	// CLI is "auto" or an explicit editor CLI path/command.
	CLI string `toml:"cli"`
	// BinDir is the directory listed for CLI auto-detection.
	BinDir string `toml:"bin-dir"`
	// SettingsPath overrides the detected user settings.json location.
	SettingsPath string `toml:"settings-path"`
	// HostName is the editor's self-reported display name.
	HostName string `toml:"host-name"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CLI:      AutoCLI,
		HostName: "Visual Studio Code",
	}
}

var userHomeDir = homedir.Dir

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeErrFmt, err)
	}
	return filepath.Join(home, ".config", "extpack", "config.toml"), nil
}

// Load reads the config at path. An empty path means the default location,
// and a missing file yields the defaults rather than an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates config TOML. source names the input in errors.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := cfg.validate(source); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(source string) error {
	if c.CLI == "" {
		return fmt.Errorf(messages.ConfigInvalidFmt, source, fmt.Errorf(messages.ConfigInvalidCLIValue))
	}
	return nil
}

// Override returns the CLI override string handed to resolution: the
// configured value when explicit, or the default invocation name under auto.
func (c *Config) Override() string {
	if c.CLI != AutoCLI {
		return c.CLI
	}
	return DefaultCLI
}

// AutoDetect reports whether CLI detection should run.
func (c *Config) AutoDetect() bool {
	return c.CLI == AutoCLI
}
