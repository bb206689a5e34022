package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Labels  LabelsConfig  `yaml:"labels"`
	Sieve   SieveConfig   `yaml:"sieve"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type LabelsConfig struct {
	CaseSensitive bool `yaml:"case_sensitive"`

	// TagNames names the reserved tags $label2..$label5 when they are
	// turned into labels. Missing entries keep their defaults.
	TagNames map[string]string `yaml:"tag_names"`

	// Existing seeds the in-memory label directory used by dry runs, so
	// the output shows which labels would have to be created.
	Existing []string `yaml:"existing"`
}

type SieveConfig struct {
	DoveadmCmd []string `yaml:"doveadm_command"` // e.g. ["doveadm"] or ["docker", "exec", "-i", "...", "doveadm"]
	ScriptName string   `yaml:"script_name"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Labels: LabelsConfig{
			TagNames: map[string]string{
				"$label2": "Work",
				"$label3": "Personal",
				"$label4": "Todo",
				"$label5": "Later",
			},
		},
		Sieve: SieveConfig{
			DoveadmCmd: []string{"doveadm"},
			ScriptName: "thunderbird-migrated",
		},
	}
}

// Load tries an explicit path (if given), then ./tb2gmail.yaml, then
// /etc/tb2gmail.yaml. If nothing is found, it falls back to Default.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFrom(path)
	}

	// default search locations
	candidates := []string{
		"./tb2gmail.yaml",
		"/etc/tb2gmail.yaml",
	}

	for _, p := range candidates {
		cfg, err := loadFrom(p)
		if err == nil {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		// For other errors (permission, parse, etc.) return immediately.
		return nil, err
	}

	return Default(), nil
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	defaults := Default()
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Reserved tags left out of tag_names keep their default names.
	for tag, name := range defaults.Labels.TagNames {
		if _, ok := cfg.Labels.TagNames[tag]; !ok {
			if cfg.Labels.TagNames == nil {
				cfg.Labels.TagNames = map[string]string{}
			}
			cfg.Labels.TagNames[tag] = name
		}
	}
	if len(cfg.Sieve.DoveadmCmd) == 0 {
		cfg.Sieve.DoveadmCmd = defaults.Sieve.DoveadmCmd
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	for tag := range c.Labels.TagNames {
		if !strings.HasPrefix(tag, "$label") {
			return fmt.Errorf("labels.tag_names: %q is not a reserved tag", tag)
		}
	}
	return nil
}
