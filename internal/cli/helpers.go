// Package cli implements the compadre commands.
package cli

import (
	"fmt"
	"os"

	"github.com/compadre-sh/compadre/internal/config"
	"github.com/compadre-sh/compadre/internal/logger"
	"github.com/compadre-sh/compadre/internal/registry"
	"github.com/compadre-sh/compadre/internal/sources"
	"github.com/compadre-sh/compadre/internal/timing"
	"github.com/compadre-sh/compadre/pkg/complete"
)

// engineParams holds everything needed to assemble the completion engine
type engineParams struct {
	CacheDir string
	LogLevel string
	Timer    *timing.Timer
}

// buildLogger resolves the effective log level: an explicit flag wins,
// otherwise the merged config decides.
func buildLogger(flagLevel string, merged *config.Config) *logger.Logger {
	level := flagLevel
	if level == "" && merged != nil {
		level = merged.LogLevel
	}
	return logger.New(level, nil)
}

// loadMergedConfig loads the configuration hierarchy for the current directory
func loadMergedConfig() (*config.Config, string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	merged, _, err := config.New().LoadHierarchy(currentDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return merged, currentDir, nil
}

// buildCompleter assembles the completion engine for the current
// directory: configuration hierarchy, resolved wordlist sources and the
// transform pipeline. Source and wordlist problems degrade to warnings
// so one bad entry cannot disable completion entirely.
func buildCompleter(params engineParams) (*complete.Completer, *logger.Logger, error) {
	merged, currentDir, err := loadMergedConfig()
	if err != nil {
		return nil, nil, err
	}
	log := buildLogger(params.LogLevel, merged)
	mark(params.Timer, "config")

	var reg *registry.Client
	if params.CacheDir != "" {
		reg, err = registry.New(params.CacheDir, log)
		if err != nil {
			log.Warn().Err(err).Msg("Wordlist cache unavailable, url sources disabled")
			reg = nil
		}
	}
	resolver := sources.NewResolver(reg, log)
	resolved := resolver.Resolve(merged.Sources, nil, currentDir)

	var extensions []complete.Generator
	for _, path := range sources.Files(resolved) {
		wl, err := complete.LoadWordlist(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("Skipping unreadable wordlist")
			continue
		}
		extensions = append(extensions, wl)
	}
	mark(params.Timer, "sources")

	env := complete.OSEnviron()
	var transforms complete.Chain
	for _, name := range merged.Transforms {
		tr, err := complete.TransformByName(name, env)
		if err != nil {
			log.Warn().Str("transform", name).Msg("Skipping unknown transform")
			continue
		}
		transforms = append(transforms, tr)
	}

	completer := complete.New(complete.Config{
		Transforms: transforms,
		Extensions: extensions,
		Exclude:    merged.Exclude,
		UseSuffix:  merged.InflectEnabled(),
		Dir:        currentDir,
		Env:        env,
		Logger:     log,
	})
	mark(params.Timer, "engine")

	return completer, log, nil
}

func mark(t *timing.Timer, label string) {
	if t != nil {
		t.Mark(label)
	}
}
