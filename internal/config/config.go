// Package config handles loading and parsing of Compadre configuration files.
package config

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".compadre.yml",
	".compadre.yaml",
	".compadre.toml",
	".compadre.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "config.yml"
)

//go:embed default.yml
var defaultConfig []byte

// HasLocalConfig checks if a directory has a local configuration file
func HasLocalConfig(dir string) bool {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// When describes conditions gating a completion source
type When struct {
	File    string `koanf:"file"`    // Path to a file that must exist
	Var     string `koanf:"var"`     // Environment variable that must be set and non-empty
	Dir     string `koanf:"dir"`     // Path to a directory that must exist
	Command string `koanf:"command"` // Command that must exist in PATH
	All     []When `koanf:"all"`     // All sub-conditions must hold
	Any     []When `koanf:"any"`     // At least one sub-condition must hold
}

// Source declares a completion wordlist source. Exactly one of Path,
// Glob or URL selects where the words come from.
type Source struct {
	Name   string `koanf:"name"`
	Path   string `koanf:"path"`
	Glob   string `koanf:"glob"`
	URL    string `koanf:"url"`
	SHA256 string `koanf:"sha256"`
	When   *When  `koanf:"when"`

	// Dir is the directory of the config file that declared the
	// source. Relative paths and globs resolve against it.
	Dir string `koanf:"-"`
}

// Config represents a compadre configuration
type Config struct {
	Transforms   []string `koanf:"transforms"`
	Exclude      []string `koanf:"exclude"`
	Inflect      *bool    `koanf:"inflect"`
	Sources      []Source `koanf:"sources"`
	LogLevel     string   `koanf:"log_level"`
	LocalOnly    bool     `koanf:"local_only"`
	IgnoreGlobal bool     `koanf:"ignore_global"`

	// ConfigDir is the directory the config file was loaded from
	ConfigDir string `koanf:"-"`
}

// InflectEnabled reports whether candidates get a type hint suffix.
// Unset means enabled.
func (c *Config) InflectEnabled() bool {
	return c.Inflect == nil || *c.Inflect
}

// Default returns the configuration applied beneath every hierarchy.
func Default() *Config {
	k := koanf.New(".")
	cfg := &Config{}
	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		return cfg
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return &Config{}
	}
	return cfg
}

// cachedConfig stores a parsed config with its modification time and hash
type cachedConfig struct {
	config  *Config
	modTime time.Time
	size    int64
	hash    string
}

// Loader handles loading and parsing configuration files. Parsed
// files are cached and revalidated by modtime and size, so repeated
// hierarchy loads in one process stay cheap.
type Loader struct {
	configCache map[string]*Config
	parsedCache map[string]*cachedConfig
}

// New creates a new config loader
func New() *Loader {
	return &Loader{
		configCache: make(map[string]*Config),
		parsedCache: make(map[string]*cachedConfig),
	}
}

// FindConfigs finds all config directories from root to the given directory
func (l *Loader) FindConfigs(dir string) []string {
	configFiles, _ := FindConfigFiles(dir)
	var dirs []string
	for _, configFile := range configFiles {
		dirs = append(dirs, filepath.Dir(configFile))
	}
	return dirs
}

// IsLocalOnly checks if a directory's config has the local_only flag set
func (l *Loader) IsLocalOnly(dir string) bool {
	var configPath string
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			configPath = path
			break
		}
	}

	if configPath == "" {
		return false
	}

	if cfg, exists := l.configCache[dir]; exists {
		return cfg.LocalOnly
	}

	cfg, err := l.Load(configPath)
	if err != nil {
		return false
	}

	l.configCache[dir] = cfg

	return cfg.LocalOnly
}

// parserForExt maps a file extension to its koanf parser
func parserForExt(ext string) (koanf.Parser, error) {
	switch ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// cacheEntryFor builds the cache record for a freshly parsed config
func cacheEntryFor(path string, cfg *Config) *cachedConfig {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil
	}
	entry := &cachedConfig{
		config:  cfg,
		modTime: fileInfo.ModTime(),
		size:    fileInfo.Size(),
	}
	if data, err := os.ReadFile(path); err == nil {
		sum := sha256.Sum256(data)
		entry.hash = hex.EncodeToString(sum[:])
	}
	return entry
}

// Load reads and parses a configuration file
func (l *Loader) Load(path string) (*Config, error) {
	if cached, exists := l.parsedCache[path]; exists {
		fileInfo, err := os.Stat(path)
		if err == nil && !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size {
			return cached.config, nil
		}
		delete(l.parsedCache, path)
	}

	parser, err := parserForExt(strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}

	// A fresh koanf instance per file keeps loads isolated
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigDir = filepath.Dir(path)
	cfg.expandSourceVars()

	if entry := cacheEntryFor(path, cfg); entry != nil {
		l.parsedCache[path] = entry
	}

	return cfg, nil
}

// Hash computes SHA-256 hash of a config file
func (l *Loader) Hash(path string) (string, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if cached, exists := l.parsedCache[path]; exists {
		if !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size && cached.hash != "" {
			return cached.hash, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	if cached, exists := l.parsedCache[path]; exists {
		cached.hash = hashStr
	} else {
		l.parsedCache[path] = &cachedConfig{
			hash:    hashStr,
			modTime: fileInfo.ModTime(),
			size:    fileInfo.Size(),
		}
	}

	return hashStr, nil
}

// Merge merges parent and child configs, with child taking precedence.
// If child has LocalOnly=true, everything above it is ignored and it
// merges over the defaults alone. Exclusion rules accumulate; a
// declared transform list replaces the parent's; sources override by
// name and append otherwise.
func Merge(parent, child *Config) *Config {
	if child.LocalOnly {
		parent = Default()
	}

	merged := &Config{
		LocalOnly:    child.LocalOnly,
		IgnoreGlobal: child.IgnoreGlobal,
		ConfigDir:    child.ConfigDir,
	}

	if child.Transforms != nil {
		merged.Transforms = child.Transforms
	} else {
		merged.Transforms = parent.Transforms
	}

	merged.Exclude = append(append([]string{}, parent.Exclude...), child.Exclude...)

	if child.Inflect != nil {
		merged.Inflect = child.Inflect
	} else {
		merged.Inflect = parent.Inflect
	}

	if child.LogLevel != "" {
		merged.LogLevel = child.LogLevel
	} else {
		merged.LogLevel = parent.LogLevel
	}

	merged.Sources = mergeSources(parent.Sources, child.Sources)

	return merged
}

// mergeSources overrides parent sources by name in place and appends
// the child's new sources after them.
func mergeSources(parent, child []Source) []Source {
	merged := append([]Source{}, parent...)
	for _, src := range child {
		replaced := false
		for i, existing := range merged {
			if existing.Name != "" && existing.Name == src.Name {
				merged[i] = src
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, src)
		}
	}
	return merged
}

// GetGlobalConfigPath returns the path to the global config file,
// honoring XDG_CONFIG_HOME with ~/.config as the fallback
func GetGlobalConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "compadre", GlobalConfigName), nil
}

// FindConfigFiles walks from startDir up to the filesystem root and
// collects config files along the way, returned in root-to-leaf order
// so callers can merge outer configs first.
func FindConfigFiles(startDir string) ([]string, error) {
	var configs []string

	for currentDir := startDir; ; {
		// The first supported name wins, one config per directory
		for _, name := range SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				configs = append(configs, path)
				break
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	for i, j := 0, len(configs)-1; i < j; i, j = i+1, j-1 {
		configs[i], configs[j] = configs[j], configs[i]
	}
	return configs, nil
}

// LoadHierarchy loads and merges all configs from global to current directory.
// Order: defaults → global config → root → ... → parent → current.
func (l *Loader) LoadHierarchy(dir string) (*Config, []string, error) {
	merged := Default()
	var loaded []string
	globalLoaded := false

	// Global config goes first. An invalid global config is skipped,
	// local configs still work.
	globalPath, err := GetGlobalConfigPath()
	if err == nil {
		if _, statErr := os.Stat(globalPath); statErr == nil {
			if globalCfg, loadErr := l.Load(globalPath); loadErr == nil {
				merged = Merge(merged, globalCfg)
				loaded = append(loaded, globalPath)
				globalLoaded = true
			}
		}
	}

	configFiles, err := FindConfigFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	for _, path := range configFiles {
		cfg, err := l.Load(path)
		if err != nil {
			return nil, append(loaded, configFiles...), err
		}

		// The first local config can drop the global contribution
		if cfg.IgnoreGlobal && globalLoaded && len(loaded) == 1 {
			merged = Default()
			loaded = nil
			globalLoaded = false
		}

		merged = Merge(merged, cfg)
		loaded = append(loaded, path)

		// local_only cuts the hierarchy off here
		if cfg.LocalOnly {
			break
		}
	}

	return merged, loaded, nil
}
