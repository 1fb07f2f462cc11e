// Package config loads run configuration from .stylefixrc files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
	"stylefix.dev/stylefix/internal/collections"
)

// rcNames are the recognized config file names, in lookup order
var rcNames = []string{
	".stylefixrc.json",
	".stylefixrc.yaml",
	".stylefixrc.yml",
}

// Config is the run configuration
type Config struct {
	// Rules toggles rules by name. A nil map enables every rule.
	Rules map[string]bool `json:"rules" yaml:"rules"`
	// MathFunctions extends the math function set of
	// calc-no-unspaced-operator
	MathFunctions []string `json:"mathFunctions" yaml:"mathFunctions"`
	// Fix enables rewrite mode
	Fix bool `json:"fix" yaml:"fix"`
}

// Default returns the configuration used when no rc file exists: every
// rule enabled, check mode
func Default() *Config {
	return &Config{}
}

// Enabled reports whether the named rule should run
func (c *Config) Enabled(rule string) bool {
	if c.Rules == nil {
		return true
	}
	return c.Rules[rule]
}

// Validate rejects configurations that name unknown rules
func (c *Config) Validate(known collections.Set[string]) error {
	for name := range c.Rules {
		if !known.Has(name) {
			names := known.Members()
			sort.Strings(names)
			return fmt.Errorf("unknown rule %q (known rules: %s)", name, strings.Join(names, ", "))
		}
	}
	return nil
}

// Load reads a config file. JSON files may contain comments and trailing
// commas
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return cfg, nil
}

// Find walks from dir toward the filesystem root looking for a config
// file. Returns the empty string when none exists.
func Find(dir string) string {
	for {
		for _, name := range rcNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
