package status

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/compadre-sh/compadre/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv creates an isolated working directory with its own HOME
// and XDG_CONFIG_HOME so host configuration cannot leak into the test.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks to handle macOS /var -> /private/var
	tmpDir, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)

	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("SHELL", "/bin/bash")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	require.NoError(t, os.Chdir(tmpDir))

	return tmpDir
}

// TestCollectAll_EmptyDirectory tests status collection in a directory without any config
func TestCollectAll_EmptyDirectory(t *testing.T) {
	tmpDir := setupTestEnv(t)
	cacheDir := filepath.Join(tmpDir, "cache")

	data, err := CollectAll(cacheDir)
	require.NoError(t, err)
	require.NotNil(t, data)

	// Basic info
	assert.Equal(t, tmpDir, data.CurrentDir)
	assert.NotEmpty(t, data.Version)
	assert.Equal(t, "bash", data.Shell)
	assert.False(t, data.HookInstalled)
	assert.Equal(t, filepath.Join(tmpDir, ".bashrc"), data.RCFile)
	assert.Equal(t, cacheDir, data.CacheDir)

	// Built-in defaults apply even without config files
	assert.Equal(t, []string{"tilde", "env"}, data.Transforms)
	assert.True(t, data.Inflect)
	assert.Equal(t, "info", data.LogLevel)

	// Empty collections
	assert.Nil(t, data.GlobalConfig)
	assert.Empty(t, data.LocalConfigs)
	assert.Empty(t, data.Sources)
	assert.Empty(t, data.Flags)
	assert.Empty(t, data.Wordlists)
	assert.Equal(t, int64(0), data.CacheTotalSize)
}

// TestCollectAll_WithConfig tests status with a local config declaring sources
func TestCollectAll_WithConfig(t *testing.T) {
	tmpDir := setupTestEnv(t)
	cacheDir := filepath.Join(tmpDir, "cache")

	wordlist := "words:\n  - alpha\n  - beta\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "words.yml"), []byte(wordlist), 0644))

	configContent := `transforms:
  - tilde
exclude:
  - "^_"
inflect: false
log_level: debug
sources:
  - name: project-words
    path: words.yml
  - name: k8s
    url: https://example.com/k8s.yml
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	data, err := CollectAll(cacheDir)
	require.NoError(t, err)
	require.NotNil(t, data)

	require.Len(t, data.LocalConfigs, 1)
	assert.Equal(t, filepath.Join(tmpDir, ".compadre.yml"), data.LocalConfigs[0].Path)
	assert.True(t, data.LocalConfigs[0].Loaded)

	assert.Equal(t, []string{"tilde"}, data.Transforms)
	assert.Equal(t, []string{"^_"}, data.Exclude)
	assert.False(t, data.Inflect)
	assert.Equal(t, "debug", data.LogLevel)

	require.Len(t, data.Sources, 2)
	assert.Equal(t, "project-words", data.Sources[0].Name)
	assert.Equal(t, "path", data.Sources[0].Kind)
	assert.True(t, data.Sources[0].Active)
	assert.Equal(t, 1, data.Sources[0].FileCount)

	// The url source was never fetched and status never downloads
	assert.Equal(t, "k8s", data.Sources[1].Name)
	assert.Equal(t, "url", data.Sources[1].Kind)
	assert.False(t, data.Sources[1].Active)
	assert.Equal(t, "not fetched yet", data.Sources[1].Reason)
}

// TestCollectAll_WithWordlistCache tests that cached url sources are reported offline
func TestCollectAll_WithWordlistCache(t *testing.T) {
	tmpDir := setupTestEnv(t)
	cacheDir := filepath.Join(tmpDir, "cache")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("words:\n  - get\n  - describe\n"))
	}))

	reg, err := registry.New(cacheDir, nil)
	require.NoError(t, err)
	_, err = reg.Fetch("k8s", server.URL, "")
	require.NoError(t, err)

	configContent := "sources:\n  - name: k8s\n    url: " + server.URL + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	// Status must work from the cache alone
	server.Close()

	data, err := CollectAll(cacheDir)
	require.NoError(t, err)

	require.Len(t, data.Sources, 1)
	assert.True(t, data.Sources[0].Active)
	assert.Equal(t, 1, data.Sources[0].FileCount)

	require.Len(t, data.Wordlists, 1)
	assert.Equal(t, "k8s", data.Wordlists[0].Name)
	assert.Greater(t, data.Wordlists[0].Size, int64(0))
	assert.False(t, data.Wordlists[0].FetchedAt.IsZero())
	assert.Equal(t, data.Wordlists[0].Size, data.CacheTotalSize)
}
