package conf

import "gopkg.in/yaml.v3"

// YAMLParser implements koanf.Parser for yaml config files.
type YAMLParser struct{}

// YAML returns a yaml parser.
func YAML() *YAMLParser {
	return &YAMLParser{}
}

// Unmarshal parses yaml bytes into a nested map.
func (p *YAMLParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	if out == nil {
		out = map[string]any{}
	}

	return out, nil
}

// Marshal encodes a nested map as yaml.
func (p *YAMLParser) Marshal(o map[string]any) ([]byte, error) {
	return yaml.Marshal(o)
}
