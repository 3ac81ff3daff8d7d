package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/compadre-sh/compadre/pkg/complete"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

var sha256Pattern = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)

// Validate validates a config file
func Validate(path string) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Try to load the config
	loader := New()
	cfg, err := loader.Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	// Validate transform names resolve to known transforms
	for _, name := range cfg.Transforms {
		if _, err := complete.TransformByName(name, complete.Environ{}); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "transforms/" + name,
				Message: fmt.Sprintf("Unknown transform: '%s'", name),
			})
		}
	}

	// Validate exclusion patterns compile
	for _, pattern := range cfg.Exclude {
		if _, err := complete.NewExclusions([]string{pattern}).Filter(nil); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "exclude/" + pattern,
				Message: fmt.Sprintf("Invalid exclusion pattern: %v", err),
			})
		}
	}

	// Validate log level
	if cfg.LogLevel != "" {
		switch cfg.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "log_level",
				Message: fmt.Sprintf("Invalid log level: '%s' (must be debug, info, warn or error)", cfg.LogLevel),
			})
		}
	}

	// Validate completion sources
	seen := map[string]int{}
	for i, src := range cfg.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		if src.Name != "" {
			field = "sources/" + src.Name
		}

		if strings.TrimSpace(src.Name) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: "Source name is empty",
			})
		} else if prev, exists := seen[src.Name]; exists {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Duplicate source name: '%s' already defined at sources[%d]", src.Name, prev),
			})
		} else {
			seen[src.Name] = i
		}

		locations := 0
		if src.Path != "" {
			locations++
		}
		if src.Glob != "" {
			locations++
		}
		if src.URL != "" {
			locations++
		}
		switch locations {
		case 0:
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: "Source needs one of: path, glob, url",
			})
		case 1:
		default:
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: "Source must set only one of: path, glob, url",
			})
		}

		if src.SHA256 != "" {
			if src.URL == "" {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   field,
					Message: "sha256 is only valid for url sources",
				})
			} else if !sha256Pattern.MatchString(src.SHA256) {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   field,
					Message: "sha256 must be a 64 character hex digest",
				})
			}
		}
	}

	return result, nil
}
