package settings

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaName = "spa.settings.json"

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["calendarEnabled", "bufferTime", "minimumAdvanceBookingHours", "workingHours"],
  "properties": {
    "calendarEnabled": {"type": "boolean"},
    "bufferTime": {"type": "integer", "minimum": 0, "maximum": 120},
    "minimumAdvanceBookingHours": {"type": "integer", "minimum": 0, "maximum": 168},
    "workingHours": {
      "type": "object",
      "propertyNames": {"enum": ["monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"]},
      "additionalProperties": {
        "type": "object",
        "required": ["enabled", "start", "end"],
        "properties": {
          "enabled": {"type": "boolean"},
          "start": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
          "end": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"}
        }
      }
    },
    "rooms": {
      "type": ["object", "null"],
      "additionalProperties": {
        "type": "object",
        "required": ["name", "enabled"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "enabled": {"type": "boolean"},
          "capacity": {"type": "integer", "minimum": 0}
        }
      }
    },
    "services": {
      "type": ["object", "null"],
      "additionalProperties": {
        "type": ["array", "null"],
        "items": {
          "type": "object",
          "required": ["id", "name", "enabled"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string", "minLength": 1},
            "duration": {"type": "integer", "minimum": 0},
            "price": {"type": "number", "minimum": 0},
            "enabled": {"type": "boolean"}
          }
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, strings.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("settings: load schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaName)
		if compileErr != nil {
			compileErr = fmt.Errorf("settings: compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidationError reports a document rejected by the schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "settings: invalid document: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks doc against the settings schema and the opening hours
// ordering the schema cannot express.
func Validate(doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("settings: marshal document: %w", err)
	}
	return ValidateJSON(raw)
}

// ValidateJSON validates a raw settings payload.
func ValidateJSON(raw []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &ValidationError{Err: err}
	}
	if err := s.Validate(payload); err != nil {
		return &ValidationError{Err: err}
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Err: err}
	}
	for day, hours := range doc.WorkingHours {
		if hours.Enabled && hours.End <= hours.Start {
			return &ValidationError{Err: fmt.Errorf("%s closes at %s before opening at %s", day, hours.End, hours.Start)}
		}
	}
	return nil
}
