// Package sources resolves configured wordlist sources into local files
// ready for the completion engine to load.
package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/compadre-sh/compadre/internal/condition"
	"github.com/compadre-sh/compadre/internal/config"
	"github.com/compadre-sh/compadre/internal/logger"
	"github.com/compadre-sh/compadre/internal/registry"
)

// Resolved describes the outcome of resolving one configured source
type Resolved struct {
	Source config.Source
	Active bool
	Reason string   // why the source was skipped
	Files  []string // local wordlist files ready to load
}

// Resolver turns configured sources into loadable wordlist files
type Resolver struct {
	registry *registry.Client
	offline  bool
	log      *logger.Logger
}

// NewResolver creates a resolver. The registry client may be nil when
// url sources are not needed (they resolve as inactive).
func NewResolver(reg *registry.Client, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{registry: reg, log: log}
}

// NewOfflineResolver creates a resolver that serves url sources from
// the local cache only, never downloading. Used by status display.
func NewOfflineResolver(reg *registry.Client, log *logger.Logger) *Resolver {
	r := NewResolver(reg, log)
	r.offline = true
	return r
}

// Resolve evaluates condition gates and materializes each source's
// files, in configuration order. Inactive or failing sources are
// skipped, never fatal: completion keeps working with whatever
// sources remain.
func (r *Resolver) Resolve(srcs []config.Source, env map[string]string, workingDir string) []Resolved {
	resolved := make([]Resolved, 0, len(srcs))
	for _, src := range srcs {
		resolved = append(resolved, r.resolveOne(src, env, workingDir))
	}
	return resolved
}

// Files returns the files of all active sources in configuration order
func Files(resolved []Resolved) []string {
	var files []string
	for _, res := range resolved {
		if res.Active {
			files = append(files, res.Files...)
		}
	}
	return files
}

func (r *Resolver) resolveOne(src config.Source, env map[string]string, workingDir string) Resolved {
	res := Resolved{Source: src}

	if src.When != nil {
		ok, reason, err := condition.Allowed(src.When, condition.Context{Env: env, WorkingDir: workingDir})
		if err != nil {
			r.log.Warn().Str("source", src.Name).Err(err).Msg("Invalid when condition, skipping source")
			res.Reason = fmt.Sprintf("invalid condition: %v", err)
			return res
		}
		if !ok {
			r.log.Debug().Str("source", src.Name).Str("reason", reason).Msg("Condition not met, skipping source")
			res.Reason = reason
			return res
		}
	}

	switch {
	case src.Path != "":
		path := resolvePath(src.Path, src.Dir)
		if _, err := os.Stat(path); err != nil {
			r.log.Warn().Str("source", src.Name).Str("path", path).Msg("Wordlist file not found")
			res.Reason = fmt.Sprintf("file not found: %s", path)
			return res
		}
		res.Active = true
		res.Files = []string{path}

	case src.Glob != "":
		pattern := resolvePath(src.Glob, src.Dir)
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			r.log.Warn().Str("source", src.Name).Err(err).Msg("Invalid glob pattern, skipping source")
			res.Reason = fmt.Sprintf("invalid glob: %v", err)
			return res
		}
		sort.Strings(matches)
		res.Active = true
		res.Files = matches

	case src.URL != "":
		if r.registry == nil {
			res.Reason = "no registry configured"
			return res
		}
		if r.offline {
			path := r.registry.WordlistPath(src.Name)
			if _, err := os.Stat(path); err != nil {
				res.Reason = "not fetched yet"
				return res
			}
			res.Active = true
			res.Files = []string{path}
			return res
		}
		path, err := r.registry.Fetch(src.Name, src.URL, src.SHA256)
		if err != nil {
			r.log.Warn().Str("source", src.Name).Err(err).Msg("Failed to fetch wordlist")
			res.Reason = err.Error()
			return res
		}
		res.Active = true
		res.Files = []string{path}

	default:
		res.Reason = "source has no path, glob or url"
	}

	return res
}

// resolvePath resolves a relative path against the declaring config's directory
func resolvePath(path, dir string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
