package complete

import (
	"regexp"
	"sync"

	"github.com/compadre-sh/compadre/internal/errors"
)

// Exclusions drops candidates matching any of an ordered list of
// patterns. A pattern excludes a candidate when it matches at the start
// of the string, so ".*~" drops backup files and "build/" drops
// anything under a build directory.
type Exclusions struct {
	patterns []string

	once     sync.Once
	compiled []*regexp.Regexp
	err      error
}

// NewExclusions creates an exclusion filter. Patterns are compiled
// lazily on first use.
func NewExclusions(patterns []string) *Exclusions {
	return &Exclusions{patterns: patterns}
}

// Patterns returns the configured pattern list.
func (x *Exclusions) Patterns() []string {
	return x.patterns
}

// Filter returns the candidates that match no exclusion pattern,
// preserving order. A malformed pattern makes every call fail with an
// ExclusionError so the caller can disable completion for the request
// instead of dropping rules silently.
func (x *Exclusions) Filter(candidates []string) ([]string, error) {
	x.once.Do(x.compile)
	if x.err != nil {
		return nil, x.err
	}
	if len(x.compiled) == 0 {
		return candidates, nil
	}
	kept := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		excluded := false
		for _, re := range x.compiled {
			if re.MatchString(candidate) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, candidate)
		}
	}
	return kept, nil
}

func (x *Exclusions) compile() {
	x.compiled = make([]*regexp.Regexp, 0, len(x.patterns))
	for _, pattern := range x.patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			x.err = errors.NewExclusionError(pattern, "invalid exclusion pattern", err)
			return
		}
		x.compiled = append(x.compiled, re)
	}
}
