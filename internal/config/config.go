package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from xmlgraph.yml.
type ProjectConfig struct {
	DataDir         string `yaml:"dataDir,omitempty"`
	Pattern         string `yaml:"pattern,omitempty"`
	DBPath          string `yaml:"dbPath,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
	Profile         string `yaml:"profile,omitempty"`
	RulesFile       string `yaml:"rulesFile,omitempty"`
	ContinueOnError bool   `yaml:"continueOnError,omitempty"`
}

// Load attempts to read xmlgraph.yml or xmlgraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"xmlgraph.yml", "xmlgraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
