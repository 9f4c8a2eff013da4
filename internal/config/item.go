package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Item is a single item instance: its type and raw property values
type Item struct {
	Type       string            `yaml:"type,omitempty"`
	Properties map[string]string `yaml:"properties"`
}

type itemDocument struct {
	Type       string    `yaml:"type"`
	Properties yaml.Node `yaml:"properties"`
}

// ParseItem parses a YAML byte slice into an Item. Property values must be
// scalars; their literal text is kept, so 10 becomes "10".
func ParseItem(data []byte) (*Item, error) {
	var doc itemDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse item YAML: %w", err)
	}

	item := &Item{
		Type:       doc.Type,
		Properties: make(map[string]string),
	}

	props := &doc.Properties
	if props.Kind == 0 {
		return item, nil
	}
	if props.Kind == yaml.ScalarNode && props.Tag == "!!null" {
		return item, nil
	}
	if props.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("properties must be a YAML mapping (line %d)", props.Line)
	}

	for i := 0; i+1 < len(props.Content); i += 2 {
		keyNode := props.Content[i]
		valueNode := props.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("property %q must be a scalar value (line %d)", keyNode.Value, valueNode.Line)
		}
		value := valueNode.Value
		if valueNode.Tag == "!!null" {
			value = ""
		}
		item.Properties[keyNode.Value] = value
	}

	return item, nil
}

// LoadItemFromFile loads and parses an item document from a file
func LoadItemFromFile(filename string) (*Item, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ParseItem(data)
}

// LoadItemFromReader loads and parses an item document from an io.Reader
func LoadItemFromReader(reader io.Reader) (*Item, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}

	return ParseItem(data)
}

// ToYAML converts an Item back to YAML format
func (i *Item) ToYAML() ([]byte, error) {
	return yaml.Marshal(i)
}
