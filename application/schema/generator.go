// Package schema provides JSON schema generation for shell config documents.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
)

// ShellConfigSchemaID identifies the generated shell config schema.
const ShellConfigSchemaID = "https://jsil.dev/schemas/shell-config.json"

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	return marshal(reflector.Reflect(v))
}

// ShellConfigSchema returns the JSON schema of the headless shell config file.
func ShellConfigSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(&entities.ShellConfig{})
	s.ID = jsonschema.ID(ShellConfigSchemaID)
	s.Title = "JSIL headless shell config"
	return marshal(s)
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
