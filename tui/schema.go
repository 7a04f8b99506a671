package tui

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema returns the JSON Schema for the `tui` config section.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	s := r.Reflect(&Config{})
	s.Title = "covview TUI Configuration"
	s.Description = "Schema for the 'tui' section of covview.yml."

	return json.MarshalIndent(s, "", "  ")
}
