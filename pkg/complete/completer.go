// Package complete implements the interactive word completion engine.
// Given the word under the cursor it produces ordered completion
// candidates through a pipeline of reversible transforms, candidate
// generators, exclusion rules and type-hint inflection, exposed through
// the repeated-call protocol line editors expect.
package complete

import (
	"fmt"

	"github.com/compadre-sh/compadre/internal/logger"
)

// Config assembles a Completer.
type Config struct {
	// Transforms is the ordered transform pipeline. Words are mapped
	// forward before matching and matches are mapped back.
	Transforms Chain
	// Extensions are generators that run after the builtin generators,
	// in registration order, against the original word.
	Extensions []Generator
	// Exclude lists patterns that drop matching candidates.
	Exclude []string
	// UseSuffix toggles inflection of candidates with a type hint.
	UseSuffix bool
	// Dir is the base directory for filesystem completion and type
	// hint checks. Empty means the process working directory.
	Dir string
	// Env is the environment snapshot for variable completion. Nil
	// snapshots the process environment.
	Env Environ
	// Logger receives diagnostics. Nil discards them.
	Logger *logger.Logger
}

// Completer composes generators, exclusion and inflection into the
// completion contract consumed by a line-editing front end. It holds no
// per-request state: every call recomputes the match list, so results
// follow the live filesystem.
type Completer struct {
	transforms Chain
	builtins   []Generator
	extensions []Generator
	exclusions *Exclusions
	inflector  *Inflector
	useSuffix  bool
	log        *logger.Logger
	ruleWarned bool
}

// New creates a Completer from cfg.
func New(cfg Config) *Completer {
	env := cfg.Env
	if env == nil {
		env = OSEnviron()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Completer{
		transforms: cfg.Transforms,
		builtins:   []Generator{NewEnvVars(env), NewFilesystem(cfg.Dir)},
		extensions: cfg.Extensions,
		exclusions: NewExclusions(cfg.Exclude),
		inflector:  NewInflector(cfg.Dir),
		useSuffix:  cfg.UseSuffix,
		log:        log,
	}
}

// GenMatches produces the raw candidate list for word: the first
// builtin generator that supports the word runs, then every extension
// generator in registration order. Candidates are not deduplicated.
func (c *Completer) GenMatches(word string) []string {
	var matches []string
	for _, g := range c.builtins {
		if !g.Supports(word) {
			continue
		}
		found, err := g.Generate(word)
		if err != nil {
			c.log.Debug().Str("generator", g.Name()).Err(err).Msg("Generator failed")
		} else {
			matches = append(matches, found...)
		}
		break
	}
	for _, g := range c.extensions {
		matches = append(matches, c.runExtension(g, word)...)
	}
	return matches
}

// runExtension contains extension failures: an error or panic from one
// generator must not lose candidates already gathered or take down the
// completion request.
func (c *Completer) runExtension(g Generator, word string) (matches []string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn().Str("generator", g.Name()).Str("panic", fmt.Sprint(r)).Msg("Extension generator panicked")
			matches = nil
		}
	}()
	if !g.Supports(word) {
		return nil
	}
	found, err := g.Generate(word)
	if err != nil {
		c.log.Debug().Str("generator", g.Name()).Err(err).Msg("Extension generator failed")
		return nil
	}
	return found
}

// GetMatches computes the ordered match list for word: generation, then
// exclusion, then inflection when suffixing is enabled. A nil slice
// with an error means completion is unavailable for this request (a
// malformed exclusion rule); an empty slice with a nil error means the
// search found nothing.
func (c *Completer) GetMatches(word string) ([]string, error) {
	matches, err := c.exclusions.Filter(c.GenMatches(word))
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []string{}
	}
	if c.useSuffix {
		inflected := make([]string, len(matches))
		for i, match := range matches {
			inflected[i] = c.inflector.Inflect(match)
		}
		matches = inflected
	}
	return matches, nil
}

// Complete returns the completion for word at the given state. Line
// editors call it with state 0, 1, 2, ... until ok is false, which
// signals that no more candidates remain. The word is transformed
// forward before matching and the selected match is transformed back,
// so the returned text fits the syntax the user actually typed.
func (c *Completer) Complete(word string, state int) (string, bool) {
	transformed, err := c.transforms.Apply(word, false)
	if err != nil {
		c.log.Error().Str("word", word).Err(err).Msg("Transform pipeline failed")
		return "", false
	}
	matches, err := c.GetMatches(transformed)
	if err != nil {
		if !c.ruleWarned {
			c.log.Error().Err(err).Msg("Exclusion rules are invalid, completion disabled")
			c.ruleWarned = true
		}
		return "", false
	}
	if state < 0 || state >= len(matches) {
		return "", false
	}
	match, err := c.transforms.Apply(matches[state], true)
	if err != nil {
		c.log.Error().Str("match", matches[state]).Err(err).Msg("Inverse transform failed")
		return "", false
	}
	return match, true
}
