// Package validator holds the item validators contributed by the CBA
// extension. A validator inspects one item's property mapping and reports
// at most one field-level error. Validators are pure and may be called
// concurrently.
package validator

import "fmt"

// Properties is the property mapping of a single item, keyed by property
// name. Values are the raw strings supplied by the host.
type Properties map[string]string

// ValidationError reports a single invalid property.
type ValidationError struct {
	PropertyName string `yaml:"property"`
	Message      string `yaml:"message"`
}

// Error renders the error in the host's display format.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("<%s - ValidationError - %s>", e.PropertyName, e.Message)
}

// Validator checks an item's properties. It returns nil when they are valid.
type Validator interface {
	Validate(props Properties) *ValidationError
}

// Func adapts an ordinary function to the Validator interface.
type Func func(props Properties) *ValidationError

// Validate calls f(props).
func (f Func) Validate(props Properties) *ValidationError {
	return f(props)
}

// Run calls each validator in order and collects the errors they report.
func Run(props Properties, validators ...Validator) []*ValidationError {
	var errs []*ValidationError
	for _, v := range validators {
		if err := v.Validate(props); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
