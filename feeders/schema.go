package feeders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "https://github.com/GoCodeAlone/rtverify/schema/document.json"

// documentSchema describes Document. Identifier rules mirror what the
// code generator can emit as symbol names.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "resources": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"$ref": "#/$defs/ident"},
          "init": true,
          "late": {"type": "boolean"}
        }
      }
    },
    "init": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"$ref": "#/$defs/ident"},
        "resources": {"$ref": "#/$defs/refs"},
        "late_resources": {"type": "array", "items": {"$ref": "#/$defs/ident"}}
      }
    },
    "idle": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"$ref": "#/$defs/ident"},
        "resources": {"$ref": "#/$defs/refs"}
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"$ref": "#/$defs/ident"},
          "binds": {"type": "array", "items": {"$ref": "#/$defs/ident"}},
          "priority": {"type": "integer", "minimum": 1, "maximum": 255},
          "capacity": {"type": "integer", "minimum": 1},
          "resources": {"$ref": "#/$defs/refs"}
        }
      }
    },
    "extern_interrupts": {"type": "array", "items": {"$ref": "#/$defs/ident"}}
  },
  "$defs": {
    "ident": {"type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$"},
    "refs": {
      "type": "array",
      "items": {"type": "string", "pattern": "^&?[A-Za-z_][A-Za-z0-9_]*$"}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add document schema: %w", err)
	}
	schema, err := c.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}
	return schema, nil
})

// SchemaCheck validates a raw decoded document (plain maps, slices and
// scalars, as returned by a feeder's Raw method) against the document schema.
func SchemaCheck(raw interface{}) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so YAML and TOML scalars take JSON types.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}
	return nil
}
