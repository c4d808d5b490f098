package grammar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is a named expression of the grammar language.
type Rule struct {
	Name        string `yaml:"name" json:"name"`
	Expr        string `yaml:"expr" json:"expr"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Grammar is the file representation of a set of rules. Start names
// the rule used by Parser.Parse and defaults to the first rule.
type Grammar struct {
	Name  string `yaml:"name" json:"name"`
	Start string `yaml:"start,omitempty" json:"start,omitempty"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Load reads a grammar file. Files ending in .json are read as JSON,
// everything else as YAML.
func Load(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g *Grammar
	if strings.EqualFold(filepath.Ext(path), ".json") {
		g, err = LoadJSON(data)
	} else {
		g, err = LoadYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.Name == "" {
		g.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return g, nil
}

// LoadYAML decodes a grammar from YAML.
func LoadYAML(data []byte) (*Grammar, error) {
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// EncodeYAML encodes g as YAML.
func (g *Grammar) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(g)
}

func (g *Grammar) validate() error {
	if len(g.Rules) == 0 {
		return ErrNoRules
	}
	for i, rule := range g.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rule %d: missing name", i)
		}
		if strings.TrimSpace(rule.Expr) == "" {
			return fmt.Errorf("rule %q: missing expr", rule.Name)
		}
	}
	return nil
}
