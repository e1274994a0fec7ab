package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_SimpleStruct(t *testing.T) {
	type SimpleConfig struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}

	schema, err := GenerateSchema(SimpleConfig{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be a map")
	assert.Contains(t, properties, "host")
	assert.Contains(t, properties, "port")
}

func TestGenerateSchema_EmptyStruct(t *testing.T) {
	type EmptyConfig struct{}

	schema, err := GenerateSchema(EmptyConfig{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))
	assert.NotEmpty(t, decoded)
}

func TestShellConfigSchema(t *testing.T) {
	schema, err := ShellConfigSchema()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	assert.Equal(t, ShellConfigSchemaID, decoded["$id"])
	assert.Equal(t, "JSIL headless shell config", decoded["title"])

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be a map")
	for _, key := range []string{"log_level", "canvas", "ticks", "storage", "metrics", "page_hidden"} {
		assert.Contains(t, properties, key)
	}

	logLevel, ok := properties["log_level"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"debug", "info", "warn", "error"}, logLevel["enum"])

	required, ok := decoded["required"].([]interface{})
	require.True(t, ok, "required should be an array")
	assert.Contains(t, required, "canvas")
	assert.NotContains(t, required, "page_hidden")

	assert.Contains(t, string(schema), "postgres")
}
