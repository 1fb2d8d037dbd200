package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleConfig selects rules from a registry. It is read from YAML:
//
//	# only run these categories
//	categories: [mesh, reaction, burner]
//	# and never these rules
//	disabled:
//	  - input.dump.nFrames
type RuleConfig struct {
	Categories []string `yaml:"categories"`
	Disabled   []string `yaml:"disabled"`
	Enabled    []string `yaml:"enabled"`
}

// LoadRuleConfig reads a rule configuration file.
func LoadRuleConfig(path string) (*RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule config: %w", err)
	}
	return ParseRuleConfig(data)
}

// ParseRuleConfig decodes a YAML rule configuration. Unknown keys are
// rejected.
func ParseRuleConfig(data []byte) (*RuleConfig, error) {
	cfg := &RuleConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse rule config: %w", err)
	}
	return cfg, nil
}

// Apply adjusts registry. When Categories is set only rules of those
// categories stay enabled; Enabled then turns individual rules back on
// and Disabled turns rules off. Ids the registry does not know are an
// error.
func (c *RuleConfig) Apply(registry *RuleRegistry) error {
	if len(c.Categories) > 0 {
		registry.DisableAll()
		for _, cat := range c.Categories {
			if len(registry.RulesByCategory(cat)) == 0 {
				return fmt.Errorf("unknown rule category %q", cat)
			}
			registry.EnableCategory(cat)
		}
	}
	for _, id := range c.Enabled {
		if !registry.Enable(id) {
			return fmt.Errorf("unknown rule %q", id)
		}
	}
	for _, id := range c.Disabled {
		if !registry.Disable(id) {
			return fmt.Errorf("unknown rule %q", id)
		}
	}
	return nil
}
