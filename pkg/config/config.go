package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	IgnoreFile   string `yaml:"ignore_file"`
	Distribution string `yaml:"distribution"`
	TrackerURL   string `yaml:"tracker_url"`
	LogLevel     string `yaml:"log_level"`
	Output       string `yaml:"-"`
	Repo         string `yaml:"-"`
	Token        string `yaml:"-"`
	DryRun       bool   `yaml:"-"`
	Issues       Issues `yaml:"issues"`
}

type Issues struct {
	Labels []string `yaml:"labels"`
}

func Default() *Config {
	return &Config{
		IgnoreFile: ".trivyignore",
		LogLevel:   "info",
		Issues: Issues{
			Labels: []string{"security"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("ignore-file"); err == nil && v != "" {
		cfg.IgnoreFile = v
	}
	if v, err := flags.GetString("distribution"); err == nil && v != "" {
		cfg.Distribution = v
	}
	if v, err := flags.GetString("tracker-url"); err == nil && v != "" {
		cfg.TrackerURL = v
	}
	if v, err := flags.GetString("log-level"); err == nil && v != "" {
		cfg.LogLevel = v
	}
	if v, err := flags.GetString("output"); err == nil && v != "" {
		cfg.Output = v
	}
	if v, err := flags.GetString("repo"); err == nil && v != "" {
		cfg.Repo = v
	}
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetBool("dry-run"); err == nil {
		cfg.DryRun = v
	}
	return cfg
}

// Validate checks the fields without which a run cannot classify anything.
func (c *Config) Validate() error {
	if c.IgnoreFile == "" {
		return fmt.Errorf("ignore file path is required")
	}
	if c.Distribution == "" {
		return fmt.Errorf("target distribution is required (set --distribution or the distribution config field)")
	}
	return nil
}
