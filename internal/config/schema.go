package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Property kinds. A plain property holds a value of a property type; the
// other kinds point at item types.
const (
	KindProperty      = "property"
	KindReference     = "reference"
	KindCollection    = "collection"
	KindRefCollection = "ref-collection"
)

// Schema is a schema document contributed by a model extension
type Schema struct {
	SchemaVersion string         `yaml:"schemaVersion"`
	Extension     string         `yaml:"extension"`
	PropertyTypes []PropertyType `yaml:"propertyTypes"`
	ItemTypes     []ItemType     `yaml:"itemTypes"`
}

// PropertyType is a named, regex constrained value format
type PropertyType struct {
	Name  string `yaml:"name"`
	Regex string `yaml:"regex"`
}

// ItemType describes a configuration entity and the item type it extends
type ItemType struct {
	Name        string     `yaml:"name"`
	Extends     string     `yaml:"extends"`
	Description string     `yaml:"description,omitempty"`
	Deprecated  bool       `yaml:"deprecated,omitempty"`
	Properties  []Property `yaml:"properties,omitempty"`
	Validators  []string   `yaml:"validators,omitempty"`
}

// Property defines a single property of an item type
type Property struct {
	Name         string  `yaml:"name"`
	Type         string  `yaml:"type"`
	Kind         string  `yaml:"kind,omitempty"` // property, reference, collection, ref-collection
	Required     bool    `yaml:"required,omitempty"`
	Default      *string `yaml:"default,omitempty"`
	Description  string  `yaml:"description,omitempty"`
	SiteSpecific bool    `yaml:"siteSpecific,omitempty"`
}

// EffectiveKind returns the property kind, defaulting to KindProperty
func (p Property) EffectiveKind() string {
	if p.Kind == "" {
		return KindProperty
	}
	return p.Kind
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	out := *s
	if s.PropertyTypes != nil {
		out.PropertyTypes = append([]PropertyType(nil), s.PropertyTypes...)
	}
	if s.ItemTypes != nil {
		out.ItemTypes = make([]ItemType, len(s.ItemTypes))
		for i, it := range s.ItemTypes {
			out.ItemTypes[i] = it.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the item type. The copy shares no slices
// or default pointers with it.
func (it ItemType) Clone() ItemType {
	out := it
	if it.Properties != nil {
		out.Properties = make([]Property, len(it.Properties))
		for i, p := range it.Properties {
			if p.Default != nil {
				def := *p.Default
				p.Default = &def
			}
			out.Properties[i] = p
		}
	}
	if it.Validators != nil {
		out.Validators = append([]string(nil), it.Validators...)
	}
	return out
}

// Property returns the named property of the item type
func (it *ItemType) Property(name string) (*Property, bool) {
	for i := range it.Properties {
		if it.Properties[i].Name == name {
			return &it.Properties[i], true
		}
	}
	return nil, false
}

// ParseSchema parses a YAML schema document. Unknown keys are rejected.
func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}
	return &schema, nil
}
