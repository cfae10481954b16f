package config

import (
	"fmt"
	"os"

	"github.com/statelayer/statetrie/pkg/storage"
	"gopkg.in/yaml.v3"
)

// Version is the version of the tool, set at build time.
var Version string

// Config is the top-level daemon/tool configuration.
type Config struct {
	Storage storage.DBConfiguration `yaml:"Storage"`
	Logger  LoggerConfig            `yaml:"Logger"`
}

// LoggerConfig describes logging parameters.
type LoggerConfig struct {
	LogLevel string `yaml:"LogLevel"`
	LogPath  string `yaml:"LogPath"`
}

// Load attempts to load the config from the given path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal unmarshals the config from the given bytes. Missing storage type
// defaults to an in-memory store.
func Unmarshal(data []byte) (Config, error) {
	config := Config{
		Storage: storage.DBConfiguration{
			Type: "inmemory",
		},
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	return config, nil
}
