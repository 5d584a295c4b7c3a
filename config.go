package godecor

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pablor21/godecor/inspect"
	"github.com/pablor21/godecor/logger"
)

// Config controls the optional extras of wrapper generation: source-level
// introspection of targets and logging verbosity.
type Config struct {
	Inspect  inspect.Mode    `json:"inspect" yaml:"inspect"`
	LogLevel logger.LogLevel `json:"log_level" yaml:"log_level"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Inspect:  inspect.ModeNone,
		LogLevel: logger.LogLevelInfo,
	}
}

// LoadConfig reads a Config from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := NewDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}
