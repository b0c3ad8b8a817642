// Package config loads the optional YAML configuration and builds the
// program logger.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"github.com/jj-sm/html2wikijs/core/style"
)

//go:embed config.yaml
var defaultConfig []byte

// Formats lists the supported output formats.
var Formats = []string{"markdown", "md", "json", "pdf"}

type (
	CalloutConfig struct {
		Kind   string   `yaml:"kind"`
		Colors []string `yaml:"colors"`
	}

	ConvertConfig struct {
		ExtraCallouts []CalloutConfig `yaml:"extra_callouts"`
		CodeKeywords  []string        `yaml:"code_keywords"`
	}

	OutputConfig struct {
		Format string `yaml:"format"`
		Dir    string `yaml:"dir"`
	}

	BatchConfig struct {
		Workers int `yaml:"workers"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Convert ConvertConfig `yaml:"convert"`
		Output  OutputConfig  `yaml:"output"`
		Batch   BatchConfig   `yaml:"batch"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields we defined are accepted, so yaml.Unmarshal cannot be used
	// directly
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration file at path and superimposes
// its values on top of the built-in defaults. An empty path yields the
// defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// an empty document leaves the defaults alone
		if len(bytes.TrimSpace(data)) > 0 {
			if cfg, err = unmarshalConfig(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to process configuration file: %w", err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (cfg *Config) Validate() error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported configuration version %d", cfg.Version)
	}
	if !slices.Contains(Formats, cfg.Output.Format) {
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	if cfg.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers: must not be negative")
	}
	if _, err := cfg.Convert.CalloutRules(); err != nil {
		return err
	}
	return cfg.Logging.Validate()
}

// CalloutRules converts the configured palette entries.
func (c *ConvertConfig) CalloutRules() ([]style.CalloutRule, error) {
	rules := make([]style.CalloutRule, 0, len(c.ExtraCallouts))
	for i, ec := range c.ExtraCallouts {
		kind, ok := style.ParseCallout(ec.Kind)
		if !ok {
			return nil, fmt.Errorf("convert.extra_callouts[%d]: unknown kind %q", i, ec.Kind)
		}
		if len(ec.Colors) == 0 {
			return nil, fmt.Errorf("convert.extra_callouts[%d]: no colors", i)
		}
		rules = append(rules, style.CalloutRule{Kind: kind, Colors: ec.Colors})
	}
	return rules, nil
}

// Dump returns cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// Default returns the built-in configuration as YAML.
func Default() []byte {
	return slices.Clone(defaultConfig)
}
