// Package config loads the optional .simplicityhl.yaml project file: a
// handful of default CLI flags so a project doesn't have to repeat
// `--arguments`/`--witness`/`--debug-symbols` on every invocation.
// LoadConfig/ParseConfig/FindConfig follow a read-then-validate-then-
// default structure, scaled down to this project's small flag set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DebugSymbols is the project's debug-symbol setting. The compile
// subcommand builds with debug symbols unless it is "none"; "summary" and
// "full" are treated alike, and the debug-symbols subcommand ignores it.
type DebugSymbols string

const (
	DebugSymbolsNone    DebugSymbols = "none"
	DebugSymbolsSummary DebugSymbols = "summary"
	DebugSymbolsFull    DebugSymbols = "full"
)

// Config is the top-level .simplicityhl.yaml shape.
type Config struct {
	// ArgumentsFile is the default path to a parameters JSON file.
	ArgumentsFile string `yaml:"arguments_file,omitempty"`

	// WitnessFile is the default path to a witness values JSON file.
	WitnessFile string `yaml:"witness_file,omitempty"`

	// DebugSymbols is the default debug-symbol setting (see DebugSymbols).
	DebugSymbols DebugSymbols `yaml:"debug_symbols,omitempty"`

	// Color controls whether CLI diagnostics are colorized by default.
	Color *bool `yaml:"color,omitempty"`
}

// LoadConfig reads and parses a .simplicityhl.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses .simplicityhl.yaml content from bytes. path is used
// only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	switch c.DebugSymbols {
	case "", DebugSymbolsNone, DebugSymbolsSummary, DebugSymbolsFull:
		return nil
	default:
		return fmt.Errorf("config: %s: debug_symbols must be one of none, summary, full; found %q", path, c.DebugSymbols)
	}
}

func (c *Config) setDefaults() {
	if c.DebugSymbols == "" {
		c.DebugSymbols = DebugSymbolsSummary
	}
}

// FindConfig searches for .simplicityhl.yaml (or .yml) starting from dir
// and walking up to parent directories. Returns an empty path and nil
// error if none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolving directory: %w", err)
	}
	for {
		for _, name := range []string{".simplicityhl.yaml", ".simplicityhl.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
