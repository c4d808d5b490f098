package grammar

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a JSON grammar is malformed or has the wrong shape.
var ErrInvalidJSON = errors.New("invalid JSON grammar")

// LoadJSON decodes a grammar from JSON with the same shape as the
// YAML form: {"name": ..., "start": ..., "rules": [{"name": ..., "expr": ...}]}.
func LoadJSON(data []byte) (*Grammar, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level value is not an object", ErrInvalidJSON)
	}

	g := &Grammar{
		Name:  doc.Get("name").String(),
		Start: doc.Get("start").String(),
	}
	rules := doc.Get("rules")
	if rules.Exists() && !rules.IsArray() {
		return nil, fmt.Errorf("%w: rules is not an array", ErrInvalidJSON)
	}
	var err error
	rules.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("%w: rule %d is not an object", ErrInvalidJSON, len(g.Rules))
			return false
		}
		g.Rules = append(g.Rules, Rule{
			Name:        value.Get("name").String(),
			Expr:        value.Get("expr").String(),
			Description: value.Get("description").String(),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}
