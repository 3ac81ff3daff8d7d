package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	tmpDir := setupTestEnv(t)

	configContent := `transforms:
  - tilde
  - env
inflect: true
sources:
  - name: project
    path: words.yml
`
	configPath := filepath.Join(tmpDir, ".compadre.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	output := captureOutput(t, func() error {
		return Validate(configPath)
	})

	assert.Contains(t, output, "Validating:")
	assert.Contains(t, output, "Configuration is valid")
}

func TestValidate_SemanticErrors(t *testing.T) {
	tmpDir := setupTestEnv(t)

	// Passes the schema, fails the semantic checks
	configContent := `transforms:
  - uppercase
exclude:
  - "["
`
	configPath := filepath.Join(tmpDir, ".compadre.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	err := Validate(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SchemaErrors(t *testing.T) {
	tmpDir := setupTestEnv(t)

	// A source without path, glob or url violates the schema
	configContent := `sources:
  - name: incomplete
`
	configPath := filepath.Join(tmpDir, ".compadre.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	err := Validate(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_AutodetectsConfigInCurrentDir(t *testing.T) {
	tmpDir := setupTestEnv(t)

	configContent := "inflect: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	output := captureOutput(t, func() error {
		return Validate("")
	})

	assert.Contains(t, output, ".compadre.yml")
	assert.Contains(t, output, "Configuration is valid")
}

func TestValidate_NoConfigFound(t *testing.T) {
	setupTestEnv(t)

	err := Validate("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestValidate_NonexistentPath(t *testing.T) {
	tmpDir := setupTestEnv(t)

	err := Validate(filepath.Join(tmpDir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
