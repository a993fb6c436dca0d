// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flashdeck/flashdeck/internal/storage"
)

type Config struct {
	DataFile       string `yaml:"data_file"`
	DebounceMillis int    `yaml:"debounce_millis"`
	Verbose        bool   `yaml:"verbose"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		DataFile:       storage.DefaultPath(),
		DebounceMillis: 300,
	}
}

// Load reads a YAML config file. A missing file is not an error; the
// defaults are returned so the app works out of the box.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.DataFile == "" {
		cfg.DataFile = storage.DefaultPath()
	}
	if cfg.DebounceMillis <= 0 {
		cfg.DebounceMillis = 300
	}

	return &cfg, nil
}
