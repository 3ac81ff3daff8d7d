// Package status provides status information collection and display for Compadre.
package status

import (
	"fmt"
	"os"
	"strings"

	"github.com/compadre-sh/compadre/internal/config"
	"github.com/compadre-sh/compadre/internal/registry"
	"github.com/compadre-sh/compadre/internal/setup"
	"github.com/compadre-sh/compadre/internal/shell"
	"github.com/compadre-sh/compadre/internal/sources"
	"github.com/compadre-sh/compadre/pkg/version"
)

// CollectAll gathers all status information from the current directory
func CollectAll(cacheDir string) (*Data, error) {
	data := &Data{
		Transforms:   make([]string, 0),
		Exclude:      make([]string, 0),
		Flags:        make([]string, 0),
		LocalConfigs: make([]config.FileInfo, 0),
		Sources:      make([]SourceStatus, 0),
		Wordlists:    make([]WordlistInfo, 0),
		CacheDir:     cacheDir,
		Version:      version.Version,
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	data.CurrentDir = currentDir

	collectSystemInfo(data)

	hierarchy, err := config.GetHierarchyInfo(currentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get config hierarchy: %w", err)
	}
	data.GlobalConfig = hierarchy.GlobalConfig
	data.LocalConfigs = hierarchy.LocalConfigs

	details := config.GetConfigDetails(hierarchy.MergedConfig)
	data.Transforms = details.Transforms
	data.Exclude = details.Exclude
	data.Inflect = details.Inflect
	data.LogLevel = details.LogLevel
	data.Flags = details.Flags

	// The registry is opened for cache inspection only, never fetching
	reg, regErr := registry.New(cacheDir, nil)
	if regErr != nil {
		reg = nil
	}

	collectSources(data, hierarchy.MergedConfig, details.Sources, currentDir, reg)
	collectWordlistCache(data, reg)

	return data, nil
}

func collectSystemInfo(data *Data) {
	// Detect current shell
	sh := os.Getenv("SHELL")
	shellName := "unknown"
	switch {
	case strings.Contains(sh, shell.Zsh):
		shellName = shell.Zsh
	case strings.Contains(sh, shell.Fish):
		shellName = shell.Fish
	case strings.Contains(sh, shell.Bash):
		shellName = shell.Bash
	}
	data.Shell = shellName

	if !shell.IsSupported(shellName) {
		return
	}

	if rcFile, err := setup.GetRCFilePath(shellName); err == nil {
		data.RCFile = rcFile
	}
	if installed, err := setup.IsHookInstalled(shellName); err == nil {
		data.HookInstalled = installed
	}
}

func collectSources(data *Data, merged *config.Config, infos []config.SourceInfo, currentDir string, reg *registry.Client) {
	if merged == nil || len(merged.Sources) == 0 {
		return
	}

	resolver := sources.NewOfflineResolver(reg, nil)
	resolved := resolver.Resolve(merged.Sources, nil, currentDir)

	for i, res := range resolved {
		data.Sources = append(data.Sources, SourceStatus{
			SourceInfo: infos[i],
			Active:     res.Active,
			Reason:     res.Reason,
			FileCount:  len(res.Files),
		})
	}
}

func collectWordlistCache(data *Data, reg *registry.Client) {
	if reg == nil {
		return
	}

	for _, entry := range reg.Entries() {
		data.Wordlists = append(data.Wordlists, WordlistInfo{
			Name:      entry.Name,
			Size:      entry.Size,
			FetchedAt: entry.FetchedAt,
		})
		data.CacheTotalSize += entry.Size
	}
}
