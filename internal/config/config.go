package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional harness configuration file for the simulator.
// CLI flags override any value set here.
type Config struct {
	WatchFolder    string        `yaml:"watch_folder"`
	Vendors        []string      `yaml:"vendors"`
	Duration       time.Duration `yaml:"duration"`
	SizeMB         float64       `yaml:"size_mb"`
	ObserveTimeout time.Duration `yaml:"observe_timeout"`
	Cleanup        bool          `yaml:"cleanup"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
