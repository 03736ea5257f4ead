// Package config loads run parameters for the contact tools from a TOML
// file. Every value has a working default, so a config file is optional and
// command line flags override whatever the file sets.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/SanjiKun-Santhosh/PCMN/contact"
)

// Neo4jConfig points the network exporter at a Neo4j or Memgraph instance.
// Credentials are usually supplied through the environment instead (see
// cmd/contact-net); values here are a fallback for local setups.
type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// Config is the full run configuration.
type Config struct {
	// Threshold is the contact cutoff in nanometers.
	Threshold float64 `toml:"threshold"`

	// ExclusionWindow skips sequence neighbors within this many positions.
	ExclusionWindow int `toml:"exclusion_window"`

	// FilterMode is "any" or "both".
	FilterMode string `toml:"filter_mode"`

	// Residues restricts the network to these residues of interest,
	// spelled like 'LYS171', '171' or 'A:171'.
	Residues []string `toml:"residues"`

	// Workers bounds detection parallelism; 0 means one per CPU.
	Workers int `toml:"workers"`

	Neo4j Neo4jConfig `toml:"neo4j"`
}

// Default returns the configuration used when no file and no flags are
// given.
func Default() Config {
	return Config{
		Threshold:  contact.DefaultThreshold,
		FilterMode: "any",
	}
}

// Load reads a TOML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// Mode parses the configured filter mode.
func (c Config) Mode() (contact.Mode, error) {
	return contact.ParseMode(c.FilterMode)
}

// DetectOptions returns the detection options this configuration describes.
func (c Config) DetectOptions() contact.Options {
	return contact.Options{
		Threshold:       c.Threshold,
		ExclusionWindow: c.ExclusionWindow,
		Workers:         c.Workers,
	}
}
