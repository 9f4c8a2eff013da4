package extension

import (
	"embed"
	"fmt"
	"log/slog"
	"sync"
)

//go:embed data/cba.yaml
var embeddedSchema embed.FS

// EmbeddedSchemaPath is the location of the CBA schema in the embedded filesystem
const EmbeddedSchemaPath = "data/cba.yaml"

var (
	loadOnce      sync.Once
	cachedExt     *Extension
	cachedLoadErr error
)

// Load returns the CBA extension built from the embedded schema. The
// schema is parsed once and shared; callers must not modify it.
func Load() (*Extension, error) {
	loadOnce.Do(func() {
		data, err := EmbeddedSchema()
		if err != nil {
			cachedLoadErr = err
			return
		}
		cachedExt, cachedLoadErr = Parse(data)
		if cachedLoadErr == nil {
			slog.Debug("loaded embedded schema",
				"extension", cachedExt.Name(),
				"itemTypes", len(cachedExt.ItemTypes()),
				"propertyTypes", len(cachedExt.PropertyTypes()))
		}
	})
	return cachedExt, cachedLoadErr
}

// EmbeddedSchema returns the raw embedded schema document
func EmbeddedSchema() ([]byte, error) {
	content, err := embeddedSchema.ReadFile(EmbeddedSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema %s: %w", EmbeddedSchemaPath, err)
	}
	return content, nil
}
