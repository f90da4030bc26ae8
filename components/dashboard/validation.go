package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks a widget configuration, such as the saved filters
// of a patient stats widget, before it is stored.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator validates configurations against WidgetDefinition.Schema.
// Compiled schemas are cached per code and schema revision.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{compiled: make(map[string]*jsonschema.Schema)}
}

func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	doc, err := jsonDocument(config)
	if err != nil {
		return fmt.Errorf("dashboard: config for %s: %w", def.Code, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, def.Code, err)
	}
	return nil
}

// jsonDocument round-trips config through encoding/json so Go ints and
// typed slices reach the validator as JSON values.
func jsonDocument(config map[string]any) (any, error) {
	if config == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	var doc any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (v *JSONSchemaValidator) schemaFor(def WidgetDefinition) (*jsonschema.Schema, error) {
	key := def.Code + "@" + hashOf(def.Schema)
	v.mu.RLock()
	cached := v.compiled[key]
	v.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	raw, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: schema %s: %w", def.Code, err)
	}
	url := "widget-" + def.Code + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("dashboard: schema %s: %w", def.Code, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[key] = schema
	v.mu.Unlock()
	return schema, nil
}

// ValidateSeeds checks every seed configuration against its definition.
func ValidateSeeds(validator ConfigValidator, defs []WidgetDefinition, seeds []AddWidgetRequest) error {
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}
	index := make(map[string]WidgetDefinition, len(defs))
	for _, def := range defs {
		index[def.Code] = def
	}
	var errs []error
	for _, seed := range seeds {
		def, ok := index[seed.DefinitionID]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", errUnknownDefinition, seed.DefinitionID))
			continue
		}
		if err := validator.Validate(def, seed.Configuration); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetDefinition, map[string]any) error { return nil }
