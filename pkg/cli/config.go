package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "prochop"

	// configFile is the defaults file name inside appDir.
	configFile = "config.yaml"
)

// Config holds persistent defaults for the prochop CLI, loaded from
// the user config directory:
//
//	~/Library/Application Support/prochop/config.yaml   (macOS)
//	~/.config/prochop/config.yaml                       (Linux)
//	%AppData%/prochop/config.yaml                       (Windows)
//
// Every field is optional; command-line flags always win over the file.
type Config struct {
	// DefaultFormat is the output container format used when -f is not
	// given ("wav" or "sfs").
	DefaultFormat string `yaml:"default_format,omitempty"`

	// KeepDuplicates enables the numbered-suffix duplicate policy by
	// default.
	KeepDuplicates bool `yaml:"keep_duplicates,omitempty"`

	// NoColor disables styled console output by default.
	NoColor bool `yaml:"no_color,omitempty"`
}

// ConfigPath returns the path of the defaults file.
func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, configFile), nil
}

// LoadConfig loads the defaults file from the default location.
// A missing file yields a zero Config and no error.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(path)
}

// LoadConfigFrom loads a defaults file from a specific path.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the defaults file to path, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
