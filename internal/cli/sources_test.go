package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compadre-sh/compadre/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources_NoSourcesConfigured(t *testing.T) {
	tmpDir := setupTestEnv(t)

	output := captureOutput(t, func() error {
		return Sources(SourcesParams{
			CacheDir: filepath.Join(tmpDir, "cache"),
			LogLevel: "error",
		})
	})

	assert.Contains(t, output, "No sources configured")
}

func TestSources_ListsResolution(t *testing.T) {
	tmpDir := setupTestEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "words.yml"), []byte("words:\n  - a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "make.words"), []byte("words:\n  - b\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "task.words"), []byte("words:\n  - c\n"), 0644))

	configContent := `sources:
  - name: project
    path: words.yml
  - name: scripts
    glob: "*.words"
  - name: k8s
    url: https://example.com/k8s.yml
    sha256: ` + strings.Repeat("a", 64) + `
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	output := captureOutput(t, func() error {
		return Sources(SourcesParams{
			CacheDir: filepath.Join(tmpDir, "cache"),
			LogLevel: "error",
		})
	})

	assert.Contains(t, output, "Sources (3):")
	assert.Contains(t, output, "✓ project (path)")
	assert.Contains(t, output, "✓ scripts (glob)")
	assert.Contains(t, output, "[2 files]")
	assert.Contains(t, output, "✗ k8s (url)")
	assert.Contains(t, output, "[pinned]")
	assert.Contains(t, output, "(not fetched yet)")
}

func TestSources_CachedWordlistsListed(t *testing.T) {
	tmpDir := setupTestEnv(t)
	cacheDir := filepath.Join(tmpDir, "cache")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("words:\n  - kubectl\n"))
	}))
	defer server.Close()

	reg, err := registry.New(cacheDir, nil)
	require.NoError(t, err)
	_, err = reg.Fetch("k8s", server.URL, "")
	require.NoError(t, err)

	configContent := "sources:\n  - name: k8s\n    url: " + server.URL + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".compadre.yml"), []byte(configContent), 0644))

	output := captureOutput(t, func() error {
		return Sources(SourcesParams{
			CacheDir: cacheDir,
			LogLevel: "error",
		})
	})

	assert.Contains(t, output, "✓ k8s (url)")
	assert.Contains(t, output, "Cached wordlists (1):")
	assert.Contains(t, output, "fetched")
}

func TestSourcesClean(t *testing.T) {
	tmpDir := setupTestEnv(t)
	cacheDir := filepath.Join(tmpDir, "cache")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("words:\n  - kubectl\n"))
	}))
	defer server.Close()

	reg, err := registry.New(cacheDir, nil)
	require.NoError(t, err)
	_, err = reg.Fetch("k8s", server.URL, "")
	require.NoError(t, err)
	require.NotEmpty(t, reg.Entries())

	output := captureOutput(t, func() error {
		return SourcesClean(SourcesParams{
			CacheDir: cacheDir,
			LogLevel: "error",
		})
	})

	assert.Contains(t, output, "Wordlist cache cleared")

	reg, err = registry.New(cacheDir, nil)
	require.NoError(t, err)
	assert.Empty(t, reg.Entries())
}
