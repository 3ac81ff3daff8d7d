package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compadre-sh/compadre/internal/config"
)

// findLocalConfig returns the config file in the current directory, if any
func findLocalConfig() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	for _, name := range config.SupportedConfigNames {
		path := filepath.Join(currentDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config file found in current directory")
}

// checkConfig runs schema validation, then the semantic checks when the
// schema is clean. Semantic errors would be noise on a file whose shape
// is already wrong.
func checkConfig(configPath string, content []byte) (*config.ValidationResult, error) {
	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	semantic, err := config.Validate(configPath)
	if err != nil {
		return nil, err
	}
	if !semantic.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, semantic.Errors...)
	}
	return result, nil
}

// Validate checks a configuration file and reports every problem found.
// With an empty path it looks for a config in the current directory.
func Validate(configPath string) error {
	if configPath == "" {
		found, err := findLocalConfig()
		if err != nil {
			return err
		}
		configPath = found
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := checkConfig(configPath, content)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
