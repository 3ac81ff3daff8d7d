package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetConfigDetails_NilConfig tests GetConfigDetails with nil config
func TestGetConfigDetails_NilConfig(t *testing.T) {
	details := GetConfigDetails(nil)
	require.NotNil(t, details)

	assert.Empty(t, details.Transforms)
	assert.Empty(t, details.Exclude)
	assert.Empty(t, details.Sources)
	assert.Empty(t, details.Flags)
}

// TestGetConfigDetails_WithFlags tests flag extraction
func TestGetConfigDetails_WithFlags(t *testing.T) {
	cfg := &Config{
		LocalOnly: true,
	}
	details := GetConfigDetails(cfg)
	assert.Contains(t, details.Flags, "local_only")
	assert.NotContains(t, details.Flags, "ignore_global")

	cfg = &Config{
		IgnoreGlobal: true,
	}
	details = GetConfigDetails(cfg)
	assert.Contains(t, details.Flags, "ignore_global")
	assert.NotContains(t, details.Flags, "local_only")

	cfg = &Config{
		LocalOnly:    true,
		IgnoreGlobal: true,
	}
	details = GetConfigDetails(cfg)
	assert.Contains(t, details.Flags, "local_only")
	assert.Contains(t, details.Flags, "ignore_global")
}

// TestGetConfigDetails_Settings tests propagation of completion settings
func TestGetConfigDetails_Settings(t *testing.T) {
	cfg := &Config{
		Transforms: []string{"tilde", "env"},
		Exclude:    []string{`\.git/`},
		Inflect:    boolPtr(false),
		LogLevel:   "debug",
	}

	details := GetConfigDetails(cfg)

	assert.Equal(t, []string{"tilde", "env"}, details.Transforms)
	assert.Equal(t, []string{`\.git/`}, details.Exclude)
	assert.False(t, details.Inflect)
	assert.Equal(t, "debug", details.LogLevel)
}

// TestGetConfigDetails_Sources tests source summaries
func TestGetConfigDetails_Sources(t *testing.T) {
	cfg := &Config{
		Sources: []Source{
			{Name: "git", Path: "wordlists/git.yml"},
			{Name: "local", Glob: "wordlists/**/*.yml"},
			{
				Name:   "docker",
				URL:    "https://registry.example.com/docker.yml",
				SHA256: "abc123",
				When:   &When{File: "Dockerfile"},
			},
		},
	}

	details := GetConfigDetails(cfg)
	require.Len(t, details.Sources, 3)

	assert.Equal(t, "git", details.Sources[0].Name)
	assert.Equal(t, "path", details.Sources[0].Kind)
	assert.Equal(t, "wordlists/git.yml", details.Sources[0].Location)
	assert.False(t, details.Sources[0].HasWhen)

	assert.Equal(t, "glob", details.Sources[1].Kind)
	assert.Equal(t, "wordlists/**/*.yml", details.Sources[1].Location)

	assert.Equal(t, "url", details.Sources[2].Kind)
	assert.Equal(t, "https://registry.example.com/docker.yml", details.Sources[2].Location)
	assert.Equal(t, "abc123", details.Sources[2].SHA256)
	assert.True(t, details.Sources[2].HasWhen)
	assert.Equal(t, "file:Dockerfile", details.Sources[2].WhenSummary)
}

// TestSummarizeWhen tests human-readable condition summaries
func TestSummarizeWhen(t *testing.T) {
	tests := []struct {
		name string
		when *When
		want string
	}{
		{
			name: "nil condition",
			when: nil,
			want: "",
		},
		{
			name: "empty condition",
			when: &When{},
			want: "",
		},
		{
			name: "file condition",
			when: &When{File: "Makefile"},
			want: "file:Makefile",
		},
		{
			name: "var condition",
			when: &When{Var: "CI"},
			want: "var:CI",
		},
		{
			name: "multiple atomic conditions",
			when: &When{File: "Makefile", Command: "make"},
			want: "file:Makefile + cmd:make",
		},
		{
			name: "all condition",
			when: &When{All: []When{{File: "go.mod"}, {Command: "go"}}},
			want: "all(file:go.mod, cmd:go)",
		},
		{
			name: "any condition",
			when: &When{Any: []When{{File: "Dockerfile"}, {Dir: ".docker"}}},
			want: "any(file:Dockerfile | dir:.docker)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarizeWhen(tt.when))
		})
	}
}

// TestGetHierarchyInfo tests hierarchy discovery and load status
func TestGetHierarchyInfo(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "project")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	parentConfig := filepath.Join(tmpDir, ".compadre.yml")
	childConfig := filepath.Join(subDir, ".compadre.yml")
	require.NoError(t, os.WriteFile(parentConfig, []byte("exclude:\n  - 'parent_pattern'\n"), 0644))
	require.NoError(t, os.WriteFile(childConfig, []byte("exclude:\n  - 'child_pattern'\n"), 0644))

	info, err := GetHierarchyInfo(subDir)
	require.NoError(t, err)
	require.NotNil(t, info.MergedConfig)

	assert.Nil(t, info.GlobalConfig)
	require.GreaterOrEqual(t, len(info.LocalConfigs), 2)

	byPath := map[string]FileInfo{}
	for _, fi := range info.LocalConfigs {
		byPath[fi.Path] = fi
	}
	require.Contains(t, byPath, parentConfig)
	require.Contains(t, byPath, childConfig)
	assert.True(t, byPath[parentConfig].Loaded)
	assert.True(t, byPath[childConfig].Loaded)
	assert.Equal(t, []string{"parent_pattern", "child_pattern"}, info.MergedConfig.Exclude)
}

// TestGetHierarchyInfo_WithGlobal tests global config reporting
func TestGetHierarchyInfo_WithGlobal(t *testing.T) {
	xdgDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdgDir)

	globalDir := filepath.Join(xdgDir, "compadre")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	globalPath := filepath.Join(globalDir, "config.yml")
	require.NoError(t, os.WriteFile(globalPath, []byte("log_level: debug\n"), 0644))

	tmpDir := t.TempDir()

	info, err := GetHierarchyInfo(tmpDir)
	require.NoError(t, err)

	require.NotNil(t, info.GlobalConfig)
	assert.Equal(t, globalPath, info.GlobalConfig.Path)
	assert.True(t, info.GlobalConfig.Exists)
	assert.True(t, info.GlobalConfig.Loaded)
	assert.Equal(t, "debug", info.MergedConfig.LogLevel)
}

// TestGetHierarchyInfo_LocalOnlyFlag tests local_only marking on the leaf config
func TestGetHierarchyInfo_LocalOnlyFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".compadre.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("local_only: true\n"), 0644))

	info, err := GetHierarchyInfo(tmpDir)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(info.LocalConfigs), 1)
	leaf := info.LocalConfigs[len(info.LocalConfigs)-1]
	assert.Equal(t, configPath, leaf.Path)
	assert.True(t, leaf.LocalOnly)
}
