package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/compadre-sh/compadre/pkg/complete"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv moves the test into an isolated directory with its own
// HOME and XDG_CONFIG_HOME so host configuration cannot leak in.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	require.NoError(t, os.Chdir(tmpDir))

	return tmpDir
}

// captureOutput captures stdout during function execution
func captureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "output")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	oldStdout := os.Stdout
	defer func() { os.Stdout = oldStdout }()

	os.Stdout = tmpfile
	err = fn()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("Function failed: %v", err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}

	return string(content)
}

// collectMatches drains the repeated-call protocol into a slice
func collectMatches(c *complete.Completer, word string) []string {
	var matches []string
	for state := 0; ; state++ {
		match, ok := c.Complete(word, state)
		if !ok {
			break
		}
		matches = append(matches, match)
	}
	return matches
}

func TestBuildCompleter_WithWordlistSource(t *testing.T) {
	tmpDir := setupTestEnv(t)

	wordlist := "words:\n  - deploy\n  - destroy\n  - status\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "words.yml"), []byte(wordlist), 0644))
	configContent := "sources:\n  - name: project\n    path: words.yml\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	completer, _, err := buildCompleter(engineParams{
		CacheDir: filepath.Join(tmpDir, "cache"),
		LogLevel: "error",
	})
	require.NoError(t, err)

	matches := collectMatches(completer, "de")
	assert.Contains(t, matches, "deploy ")
	assert.Contains(t, matches, "destroy ")
	assert.NotContains(t, matches, "status ")
}

func TestBuildCompleter_NoConfig(t *testing.T) {
	tmpDir := setupTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "readme.md"), []byte("x"), 0644))

	completer, _, err := buildCompleter(engineParams{
		CacheDir: filepath.Join(tmpDir, "cache"),
		LogLevel: "error",
	})
	require.NoError(t, err)

	// Filesystem completion works with only the built-in defaults
	matches := collectMatches(completer, "read")
	assert.Contains(t, matches, "readme.md ")
}

func TestBuildCompleter_UnknownTransformSkipped(t *testing.T) {
	tmpDir := setupTestEnv(t)

	configContent := "transforms:\n  - uppercase\n  - tilde\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644))

	completer, _, err := buildCompleter(engineParams{
		CacheDir: filepath.Join(tmpDir, "cache"),
		LogLevel: "error",
	})
	require.NoError(t, err)

	matches := collectMatches(completer, "no")
	assert.Contains(t, matches, "notes.txt ")
}

func TestBuildCompleter_BadWordlistSkipped(t *testing.T) {
	tmpDir := setupTestEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.yml"), []byte("{not yaml"), 0644))
	goodList := "words:\n  - alpha\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "good.yml"), []byte(goodList), 0644))
	configContent := `sources:
  - name: broken
    path: bad.yml
  - name: working
    path: good.yml
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	completer, _, err := buildCompleter(engineParams{
		CacheDir: filepath.Join(tmpDir, "cache"),
		LogLevel: "error",
	})
	require.NoError(t, err)

	matches := collectMatches(completer, "alp")
	assert.Contains(t, matches, "alpha ")
}

func TestBuildLogger_FlagWinsOverConfig(t *testing.T) {
	tmpDir := setupTestEnv(t)

	configContent := "log_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	merged, _, err := loadMergedConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", merged.LogLevel)

	// An explicit flag level must not be overridden by the config; the
	// cheapest observable check is that both calls succeed.
	assert.NotNil(t, buildLogger("error", merged))
	assert.NotNil(t, buildLogger("", merged))
}
