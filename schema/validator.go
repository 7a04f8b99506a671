package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator validates documents against a compiled JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the given schema document.
func NewValidator(name string, schemaData []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate validates data against the schema.
// It expects data to be any value that can be marshaled to JSON.
func (v *Validator) Validate(data interface{}) error {
	// The schema expects plain JSON-like values, not Go structs.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal document to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" || len(err.Causes) == 0 {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}

// Compose adds extension schemas as top-level properties of base. Each
// extension document becomes the schema of the property with its key, and
// its $defs are hoisted next to the base definitions.
func Compose(base []byte, extensions map[string][]byte) ([]byte, error) {
	var root map[string]interface{}
	if err := json.Unmarshal(base, &root); err != nil {
		return nil, fmt.Errorf("failed to parse base schema: %w", err)
	}

	props, _ := root["properties"].(map[string]interface{})
	if props == nil {
		props = make(map[string]interface{})
		root["properties"] = props
	}
	defs, _ := root["$defs"].(map[string]interface{})

	for key, data := range extensions {
		var ext map[string]interface{}
		if err := json.Unmarshal(data, &ext); err != nil {
			return nil, fmt.Errorf("failed to parse schema for extension '%s': %w", key, err)
		}
		if extDefs, ok := ext["$defs"].(map[string]interface{}); ok {
			if defs == nil {
				defs = make(map[string]interface{})
				root["$defs"] = defs
			}
			for name, def := range extDefs {
				if _, exists := defs[name]; exists {
					return nil, fmt.Errorf("extension '%s' redefines '%s'", key, name)
				}
				defs[name] = def
			}
		}
		delete(ext, "$defs")
		delete(ext, "$schema")
		delete(ext, "$id")
		props[key] = ext
	}

	return json.MarshalIndent(root, "", "  ")
}
