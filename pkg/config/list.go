package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// List is a configuration value given either as a comma-separated string
// ("a, b, c") or as a native list. Entries are trimmed.
type List []string

func splitList(s string) List {
	parts := strings.Split(s, ",")
	out := make(List, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *List) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*l = splitList(v)
	case []any:
		out := make(List, 0, len(v))
		for _, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			out = append(out, strings.TrimSpace(s))
		}
		*l = out
	default:
		s, err := scalarString(v)
		if err != nil {
			return err
		}
		*l = List{s}
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = splitList(node.Value)
	case yaml.SequenceNode:
		out := make(List, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list entries must be scalars", item.Line)
			}
			out = append(out, strings.TrimSpace(item.Value))
		}
		*l = out
	default:
		return fmt.Errorf("line %d: expected a string or a list", node.Line)
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int64, float64, bool:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("unsupported value %v (%T)", v, v)
}
