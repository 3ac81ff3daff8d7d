package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compadre-sh/compadre/internal/config"
	"github.com/compadre-sh/compadre/internal/errors"
)

// sampleConfig is written by init, and by edit when no config exists yet.
// It keeps a couple of keys active so the file is a valid YAML object
// and survives a validate round trip.
const sampleConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/compadre-sh/compadre/main/schema/compadre.schema.json
# Compadre configuration file
# Documentation: https://github.com/compadre-sh/compadre

# Reversible word transforms applied before matching (undone on the way back)
transforms:
  - tilde  # expand ~ to $HOME
  - env    # expand $VAR words

# Regular expressions that drop matching candidates
# exclude:
#   - '\.pyc$'
#   - '^_'

# Append a type hint to candidates: / for directories, a space for everything else
inflect: true

# Extra completion words beyond files and environment variables
# sources:
#   # Words from a file next to this config
#   - name: project-words
#     path: wordlists/project.yml
#
#   # Every wordlist in a directory tree
#   - name: team-lists
#     glob: wordlists/**/*.yml
#
#   # A shared wordlist fetched once and cached, loaded only when relevant
#   - name: k8s
#     url: https://example.com/wordlists/k8s.yml
#     when:
#       var: KUBECONFIG

# Configuration flags
# Set to true to only use this directory's config (don't merge with parents)
# local_only: false

# Set to true to ignore the global config (~/.config/compadre/config.yml)
# ignore_global: false
`

// Init creates a sample .compadre.yml config file in the current directory or global config
func Init(global bool) error {
	var configPath string

	if global {
		globalPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return errors.NewConfigurationError("", "failed to get global config path", err)
		}
		configPath = globalPath

		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return errors.NewConfigurationError(configPath, "failed to create config directory", err)
		}
	} else {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		configPath = filepath.Join(currentDir, ".compadre.yml")
	}

	if _, err := os.Stat(configPath); err == nil {
		return errors.NewAlreadyExistsError(configPath, fmt.Sprintf("config file already exists: %s", configPath))
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
		return errors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	if global {
		fmt.Printf("Created global config: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to suit your needs")
		fmt.Println("  2. The global config applies in every directory")
		fmt.Println("  3. Run 'compadre setup' to install the shell hook")
	} else {
		fmt.Printf("Created sample config: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to suit your needs")
		fmt.Println("  2. Run 'compadre validate' to check it")
		fmt.Println("  3. Run 'compadre setup' to install the shell hook")
	}

	return nil
}
