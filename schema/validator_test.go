package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "port": {"type": "integer", "minimum": 0, "maximum": 65535},
    "host": {"$ref": "#/$defs/Host"}
  },
  "$defs": {
    "Host": {"type": "string"}
  }
}`

func TestValidator(t *testing.T) {
	v, err := NewValidator("base.json", []byte(baseSchema))
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]interface{}{"port": 8080, "host": "localhost"}))

	err = v.Validate(map[string]interface{}{"port": 70000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/port")

	assert.Error(t, v.Validate(map[string]interface{}{"unknown": true}))
}

func TestNewValidatorRejectsBadSchema(t *testing.T) {
	_, err := NewValidator("bad.json", []byte(`{"type": 12}`))
	assert.Error(t, err)
}

func TestCompose(t *testing.T) {
	ext := `{
	  "$schema": "https://json-schema.org/draft/2020-12/schema",
	  "$ref": "#/$defs/Logging",
	  "$defs": {
	    "Logging": {"type": "object", "properties": {"level": {"type": "string", "enum": ["debug", "info"]}}, "additionalProperties": false}
	  }
	}`

	composed, err := Compose([]byte(baseSchema), map[string][]byte{"logging": []byte(ext)})
	require.NoError(t, err)

	var root map[string]interface{}
	require.NoError(t, json.Unmarshal(composed, &root))
	assert.Contains(t, root["properties"], "logging")
	assert.Contains(t, root["$defs"], "Logging")

	v, err := NewValidator("composed.json", composed)
	require.NoError(t, err)
	assert.NoError(t, v.Validate(map[string]interface{}{"logging": map[string]interface{}{"level": "debug"}}))
	assert.Error(t, v.Validate(map[string]interface{}{"logging": map[string]interface{}{"level": "loud"}}))
}

func TestComposeRejectsDuplicateDefinitions(t *testing.T) {
	ext := `{"$defs": {"Host": {"type": "integer"}}}`
	_, err := Compose([]byte(baseSchema), map[string][]byte{"dup": []byte(ext)})
	assert.Error(t, err)
}
