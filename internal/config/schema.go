package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for Compadre configuration
func GetSchemaJSON() string {
	return schemaJSON
}

// decodeByExtension parses content into a generic structure based on
// the file extension, so the schema validator sees the same shape
// regardless of the on-disk format.
func decodeByExtension(path string, content []byte) (interface{}, string, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yml", ".yaml":
		var data interface{}
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Sprintf("Invalid YAML syntax: %v", err), nil
		}
		return data, "", nil
	case ".json":
		var data interface{}
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Sprintf("Invalid JSON syntax: %v", err), nil
		}
		return data, "", nil
	case ".toml":
		data, err := toml.Parser().Unmarshal(content)
		if err != nil {
			return nil, fmt.Sprintf("Invalid TOML syntax: %v", err), nil
		}
		return data, "", nil
	default:
		return nil, "", fmt.Errorf("unsupported file format: %s", ext)
	}
}

// ValidateWithSchema validates a config file against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	data, syntaxErr, err := decodeByExtension(path, content)
	if err != nil {
		return nil, err
	}
	if syntaxErr != "" {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: "syntax", Message: syntaxErr})
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, schemaErr := range validationResult.Errors() {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   schemaErr.Field(),
			Message: schemaErr.Description(),
		})
	}

	return result, nil
}
