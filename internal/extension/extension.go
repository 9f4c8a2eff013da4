// Package extension loads the CBA schema contribution and exposes it the way
// the host's extension loader consumes it: an ordered list of property
// types, an ordered list of item types, and the validators attached to each
// item type.
package extension

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/dlclark/regexp2"

	"github.com/bamaas/cbactl/internal/config"
	cbaerrors "github.com/bamaas/cbactl/internal/errors"
	"github.com/bamaas/cbactl/internal/validator"
)

// SupportedSchemaVersions is the range of schema document versions this
// loader understands.
const SupportedSchemaVersions = "^1"

// matchTimeout bounds a single property type match.
const matchTimeout = time.Second

// Extension is a loaded, checked schema contribution. It is immutable once
// built and safe for concurrent use.
type Extension struct {
	schema     *config.Schema
	version    *semver.Version
	regexps    map[string]*regexp2.Regexp
	validators map[string][]validator.Validator
}

// Parse builds an Extension from a YAML schema document.
func Parse(data []byte) (*Extension, error) {
	schema, err := config.ParseSchema(data)
	if err != nil {
		return nil, cbaerrors.Wrap(cbaerrors.ErrCodeInvalidSchema, "failed to parse schema", err)
	}
	return New(schema)
}

// LoadFromFile builds an Extension from a schema document on disk.
func LoadFromFile(filename string) (*Extension, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return Parse(data)
}

// LoadFromReader builds an Extension from a schema document read from r.
func LoadFromReader(reader io.Reader) (*Extension, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	return Parse(data)
}

// New checks schema and resolves its validators.
func New(schema *config.Schema) (*Extension, error) {
	if schema == nil {
		return nil, cbaerrors.New(cbaerrors.ErrCodeInvalidSchema, "schema cannot be nil")
	}

	version, err := checkVersion(schema.SchemaVersion)
	if err != nil {
		return nil, err
	}
	schema = schema.Clone()

	ext := &Extension{
		schema:     schema,
		version:    version,
		regexps:    make(map[string]*regexp2.Regexp, len(schema.PropertyTypes)),
		validators: make(map[string][]validator.Validator, len(schema.ItemTypes)),
	}

	for _, pt := range schema.PropertyTypes {
		if pt.Name == "" {
			return nil, cbaerrors.New(cbaerrors.ErrCodeInvalidSchema, "property type missing name")
		}
		if _, dup := ext.regexps[pt.Name]; dup {
			return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
				"duplicate property type", map[string]any{"propertyType": pt.Name})
		}
		re, err := regexp2.Compile(pt.Regex, regexp2.None)
		if err != nil {
			return nil, cbaerrors.Wrap(cbaerrors.ErrCodeInvalidSchema,
				fmt.Sprintf("invalid regex for property type %s", pt.Name), err)
		}
		re.MatchTimeout = matchTimeout
		ext.regexps[pt.Name] = re
	}

	for _, it := range schema.ItemTypes {
		if it.Name == "" {
			return nil, cbaerrors.New(cbaerrors.ErrCodeInvalidSchema, "item type missing name")
		}
		if _, dup := ext.validators[it.Name]; dup {
			return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
				"duplicate item type", map[string]any{"itemType": it.Name})
		}
		if err := checkProperties(it); err != nil {
			return nil, err
		}

		vs := make([]validator.Validator, 0, len(it.Validators))
		for _, name := range it.Validators {
			v, ok := validator.Lookup(name)
			if !ok {
				return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
					fmt.Sprintf("unknown validator %s on item type %s", name, it.Name),
					map[string]any{"itemType": it.Name, "validator": name, "known": validator.Names()})
			}
			vs = append(vs, v)
		}
		ext.validators[it.Name] = vs
	}

	return ext, nil
}

func checkVersion(raw string) (*semver.Version, error) {
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, cbaerrors.Wrap(cbaerrors.ErrCodeInvalidSchema,
			fmt.Sprintf("invalid schema version %q", raw), err)
	}
	supported, err := semver.NewConstraint(SupportedSchemaVersions)
	if err != nil {
		return nil, cbaerrors.Wrap(cbaerrors.ErrCodeInternal, "invalid supported version range", err)
	}
	if !supported.Check(version) {
		return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
			fmt.Sprintf("unsupported schema version %s", version),
			map[string]any{"supported": SupportedSchemaVersions})
	}
	return version, nil
}

func checkProperties(it config.ItemType) error {
	seen := make(map[string]bool, len(it.Properties))
	for _, p := range it.Properties {
		if p.Name == "" || p.Type == "" {
			return cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
				fmt.Sprintf("item type %s has a property without name or type", it.Name),
				map[string]any{"itemType": it.Name, "property": p.Name})
		}
		if seen[p.Name] {
			return cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
				fmt.Sprintf("item type %s declares property %s twice", it.Name, p.Name),
				map[string]any{"itemType": it.Name, "property": p.Name})
		}
		seen[p.Name] = true

		switch p.EffectiveKind() {
		case config.KindProperty, config.KindReference, config.KindCollection, config.KindRefCollection:
		default:
			return cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidSchema,
				fmt.Sprintf("property %s of item type %s has unknown kind %q", p.Name, it.Name, p.Kind),
				map[string]any{"itemType": it.Name, "property": p.Name})
		}
	}
	return nil
}

// Name returns the extension name declared by the schema.
func (e *Extension) Name() string {
	return e.schema.Extension
}

// Version returns the schema document version.
func (e *Extension) Version() *semver.Version {
	return e.version
}

// PropertyTypes returns the property type definitions in declaration order.
func (e *Extension) PropertyTypes() []config.PropertyType {
	out := make([]config.PropertyType, len(e.schema.PropertyTypes))
	copy(out, e.schema.PropertyTypes)
	return out
}

// ItemTypes returns the item type definitions in declaration order.
func (e *Extension) ItemTypes() []config.ItemType {
	out := make([]config.ItemType, len(e.schema.ItemTypes))
	for i, it := range e.schema.ItemTypes {
		out[i] = it.Clone()
	}
	return out
}

// PropertyType returns the named property type.
func (e *Extension) PropertyType(name string) (*config.PropertyType, error) {
	for i := range e.schema.PropertyTypes {
		if e.schema.PropertyTypes[i].Name == name {
			pt := e.schema.PropertyTypes[i]
			return &pt, nil
		}
	}
	return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeNotFound,
		fmt.Sprintf("property type %s not found", name), map[string]any{"propertyType": name})
}

// ItemType returns the named item type.
func (e *Extension) ItemType(name string) (*config.ItemType, error) {
	for i := range e.schema.ItemTypes {
		if e.schema.ItemTypes[i].Name == name {
			it := e.schema.ItemTypes[i].Clone()
			return &it, nil
		}
	}
	return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeNotFound,
		fmt.Sprintf("item type %s not found", name), map[string]any{"itemType": name})
}

// Validators returns the validators registered for an item type.
func (e *Extension) Validators(itemType string) ([]validator.Validator, error) {
	vs, ok := e.validators[itemType]
	if !ok {
		return nil, cbaerrors.NewWithContext(cbaerrors.ErrCodeNotFound,
			fmt.Sprintf("item type %s not found", itemType), map[string]any{"itemType": itemType})
	}
	return append([]validator.Validator(nil), vs...), nil
}

// Validate runs the item type's validators over props and returns every
// error they report, in validator order.
func (e *Extension) Validate(itemType string, props validator.Properties) ([]*validator.ValidationError, error) {
	vs, err := e.Validators(itemType)
	if err != nil {
		return nil, err
	}
	return validator.Run(props, vs...), nil
}

// Defaults returns the declared default values of an item type.
func (e *Extension) Defaults(itemType string) (validator.Properties, error) {
	it, err := e.ItemType(itemType)
	if err != nil {
		return nil, err
	}
	defaults := make(validator.Properties)
	for _, p := range it.Properties {
		if p.Default != nil {
			defaults[p.Name] = *p.Default
		}
	}
	return defaults, nil
}

// Check is a stricter form of Validate. It reports missing required
// properties, values that do not match an extension property type, and
// undeclared properties, followed by the validators' errors. Host property
// types such as basic_string and integer are not value-checked.
func (e *Extension) Check(itemType string, props validator.Properties) ([]*validator.ValidationError, error) {
	it, err := e.ItemType(itemType)
	if err != nil {
		return nil, err
	}

	var errs []*validator.ValidationError
	for _, p := range it.Properties {
		value, present := props[p.Name]
		if p.Required && (!present || value == "") {
			errs = append(errs, &validator.ValidationError{
				PropertyName: p.Name,
				Message:      fmt.Sprintf("Required property '%s' is missing", p.Name),
			})
			continue
		}
		if !present || value == "" || p.EffectiveKind() != config.KindProperty {
			continue
		}
		re, ok := e.regexps[p.Type]
		if !ok {
			continue
		}
		matched, err := re.MatchString(value)
		if err != nil {
			return nil, cbaerrors.Wrap(cbaerrors.ErrCodeInternal,
				fmt.Sprintf("failed to match property %s against type %s", p.Name, p.Type), err)
		}
		if !matched {
			errs = append(errs, &validator.ValidationError{
				PropertyName: p.Name,
				Message:      fmt.Sprintf("Invalid value '%s' for property '%s' of type '%s'", value, p.Name, p.Type),
			})
		}
	}

	var unknown []string
	for name := range props {
		if _, ok := it.Property(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, &validator.ValidationError{
			PropertyName: name,
			Message:      fmt.Sprintf("Property '%s' is not allowed", name),
		})
	}

	verrs, err := e.Validate(itemType, props)
	if err != nil {
		return nil, err
	}
	return append(errs, verrs...), nil
}
