//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// SchemaConfig represents the root configuration for schema generation
type SchemaConfig struct {
	Transforms   []string `json:"transforms,omitempty" jsonschema:"description=Word transforms applied before matching (tilde, env)"`
	Exclude      []string `json:"exclude,omitempty" jsonschema:"description=Regular expressions matched against the start of each candidate; matching candidates are dropped"`
	Inflect      bool     `json:"inflect,omitempty" jsonschema:"description=Append / to directory matches and a space to everything else,default=true"`
	Sources      []Source `json:"sources,omitempty" jsonschema:"description=Extra completion word sources"`
	LogLevel     string   `json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Log verbosity,default=info"`
	LocalOnly    bool     `json:"local_only,omitempty" jsonschema:"description=If true only use this directory's config (don't merge with parent configs),default=false"`
	IgnoreGlobal bool     `json:"ignore_global,omitempty" jsonschema:"description=If true ignore global config (start fresh from this directory),default=false"`
}

// Source represents an extra completion word source
type Source struct {
	Name   string `json:"name" jsonschema:"required,minLength=1,pattern=^[a-zA-Z_][a-zA-Z0-9_-]*$,description=Unique source name"`
	Path   string `json:"path,omitempty" jsonschema:"minLength=1,description=Wordlist file, relative to the config file"`
	Glob   string `json:"glob,omitempty" jsonschema:"minLength=1,description=Glob pattern for wordlist files (supports ** recursion)"`
	URL    string `json:"url,omitempty" jsonschema:"format=uri,description=Registry URL to fetch the wordlist from"`
	SHA256 string `json:"sha256,omitempty" jsonschema:"pattern=^[a-fA-F0-9]{64}$,description=Expected SHA-256 digest of the fetched wordlist"`
	When   *When  `json:"when,omitempty" jsonschema:"description=Conditions that must be met for the source to load"`
}

// When represents conditions gating a completion source
type When struct {
	File    string `json:"file,omitempty" jsonschema:"description=Path to file that must exist (supports env var expansion like $VAR)"`
	Var     string `json:"var,omitempty" jsonschema:"description=Environment variable that must be set and non-empty"`
	Dir     string `json:"dir,omitempty" jsonschema:"description=Path to directory that must exist (supports env var expansion)"`
	Command string `json:"command,omitempty" jsonschema:"description=Command that must exist in PATH"`
	All     []When `json:"all,omitempty" jsonschema:"minItems=1,description=All conditions must be true (AND logic)"`
	Any     []When `json:"any,omitempty" jsonschema:"minItems=1,description=At least one condition must be true (OR logic)"`
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:             false,
		ExpandedStruct:             false,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&SchemaConfig{})

	// A source names exactly one location: path, glob or url
	if source, ok := schema.Definitions["Source"]; ok {
		source.OneOf = []*jsonschema.Schema{
			{Required: []string{"path"}},
			{Required: []string{"glob"}},
			{Required: []string{"url"}},
		}
	}

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://raw.githubusercontent.com/compadre-sh/compadre/main/schema/compadre.schema.json"
	schema.Title = "Compadre Configuration"
	schema.Description = "Configuration file for Compadre - programmable shell completion"

	// Generate JSON
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	// Write to file
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema generated: %s\n", outputPath)
}
