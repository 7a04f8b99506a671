package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/covview/schema"
)

// GenerateSchema generates the JSON Schema for the core covview configuration.
// Extension keys such as `logging` are not part of it; callers add them with
// schema.Compose.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Unknown fields are rejected, extensions are added by composition.
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	s := r.Reflect(&Config{})
	s.Title = "covview Configuration"
	s.Description = "Schema for covview.yml properties."

	return json.MarshalIndent(s, "", "  ")
}

// SchemaValidator validates a Config against the generated schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator generates and compiles the configuration schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	validator, err := schema.NewValidator("covview.json", data)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
