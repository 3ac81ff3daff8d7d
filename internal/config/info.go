package config

import (
	"fmt"
	"os"
	"strings"
)

// FileInfo represents information about a configuration file
type FileInfo struct {
	Path      string
	Loaded    bool
	LocalOnly bool
}

// GlobalInfo represents information about the global configuration
type GlobalInfo struct {
	Path   string
	Exists bool
	Loaded bool
}

// HierarchyInfo contains information about the configuration hierarchy
type HierarchyInfo struct {
	GlobalConfig *GlobalInfo
	LocalConfigs []FileInfo
	MergedConfig *Config
}

// GetHierarchyInfo describes the configuration hierarchy for a
// directory: which config files exist, which of them actually
// contributed to the merge, and the merged result.
func GetHierarchyInfo(currentDir string) (*HierarchyInfo, error) {
	merged, loadedFiles, err := New().LoadHierarchy(currentDir)
	if err != nil {
		return nil, err
	}

	wasLoaded := func(path string) bool {
		for _, loaded := range loadedFiles {
			if loaded == path {
				return true
			}
		}
		return false
	}

	info := &HierarchyInfo{
		LocalConfigs: make([]FileInfo, 0),
		MergedConfig: merged,
	}

	if globalPath, err := GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			info.GlobalConfig = &GlobalInfo{
				Path:   globalPath,
				Exists: true,
				Loaded: wasLoaded(globalPath),
			}
		}
	}

	allConfigFiles, _ := FindConfigFiles(currentDir)
	for i, path := range allConfigFiles {
		// local_only can only come from the innermost config
		isLeaf := i == len(allConfigFiles)-1
		info.LocalConfigs = append(info.LocalConfigs, FileInfo{
			Path:      path,
			Loaded:    wasLoaded(path),
			LocalOnly: merged != nil && merged.LocalOnly && isLeaf,
		})
	}

	return info, nil
}

// SourceInfo contains information about a single completion source
type SourceInfo struct {
	Name        string
	Kind        string
	Location    string
	SHA256      string
	HasWhen     bool
	WhenSummary string
}

// DetailsInfo contains detailed information about the merged configuration
type DetailsInfo struct {
	Transforms []string
	Exclude    []string
	Inflect    bool
	LogLevel   string
	Sources    []SourceInfo
	Flags      []string
}

// GetConfigDetails extracts detailed information from a merged configuration
func GetConfigDetails(merged *Config) *DetailsInfo {
	if merged == nil {
		return &DetailsInfo{
			Transforms: make([]string, 0),
			Exclude:    make([]string, 0),
			Sources:    make([]SourceInfo, 0),
			Flags:      make([]string, 0),
		}
	}

	details := &DetailsInfo{
		Transforms: merged.Transforms,
		Exclude:    merged.Exclude,
		Inflect:    merged.InflectEnabled(),
		LogLevel:   merged.LogLevel,
		Sources:    make([]SourceInfo, 0, len(merged.Sources)),
		Flags:      make([]string, 0),
	}

	for _, src := range merged.Sources {
		info := SourceInfo{
			Name:    src.Name,
			SHA256:  src.SHA256,
			HasWhen: src.When != nil,
		}
		switch {
		case src.Path != "":
			info.Kind = "path"
			info.Location = src.Path
		case src.Glob != "":
			info.Kind = "glob"
			info.Location = src.Glob
		case src.URL != "":
			info.Kind = "url"
			info.Location = src.URL
		}
		if src.When != nil {
			info.WhenSummary = summarizeWhen(src.When)
		}
		details.Sources = append(details.Sources, info)
	}

	if merged.LocalOnly {
		details.Flags = append(details.Flags, "local_only")
	}
	if merged.IgnoreGlobal {
		details.Flags = append(details.Flags, "ignore_global")
	}

	return details
}

// summarizeWhen creates a human-readable summary of a When condition
func summarizeWhen(when *When) string {
	if when == nil {
		return ""
	}

	var parts []string

	// Atomic conditions
	if when.File != "" {
		parts = append(parts, fmt.Sprintf("file:%s", when.File))
	}
	if when.Var != "" {
		parts = append(parts, fmt.Sprintf("var:%s", when.Var))
	}
	if when.Dir != "" {
		parts = append(parts, fmt.Sprintf("dir:%s", when.Dir))
	}
	if when.Command != "" {
		parts = append(parts, fmt.Sprintf("cmd:%s", when.Command))
	}

	// Composite conditions
	if len(when.All) > 0 {
		subParts := make([]string, len(when.All))
		for i, sub := range when.All {
			subParts[i] = summarizeWhen(&sub)
		}
		parts = append(parts, fmt.Sprintf("all(%s)", strings.Join(subParts, ", ")))
	}
	if len(when.Any) > 0 {
		subParts := make([]string, len(when.Any))
		for i, sub := range when.Any {
			subParts[i] = summarizeWhen(&sub)
		}
		parts = append(parts, fmt.Sprintf("any(%s)", strings.Join(subParts, " | ")))
	}

	if len(parts) == 0 {
		return ""
	}

	// Multiple atomic conditions are ANDed together
	if len(parts) > 1 && len(when.All) == 0 && len(when.Any) == 0 {
		return strings.Join(parts, " + ")
	}

	return strings.Join(parts, ", ")
}
