package logging

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema returns the JSON Schema for the `logging` config section.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	s := r.Reflect(&Config{})
	s.Title = "covview Logging Configuration"
	s.Description = "Schema for the 'logging' section of covview.yml."

	return json.MarshalIndent(s, "", "  ")
}
