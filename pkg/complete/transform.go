package complete

import (
	"fmt"
	"strings"

	"github.com/compadre-sh/compadre/internal/errors"
)

// Transform rewrites a word before matching and restores the user's
// surface syntax on the way back. Forward and Inverse must round-trip:
// Inverse(Forward(w)) == w for every word the transform supports.
type Transform interface {
	Name() string
	Forward(word string) (string, error)
	Inverse(word string) (string, error)
}

// Chain is an ordered transform pipeline. Forward application walks the
// chain front to back; inverse application walks it back to front.
type Chain []Transform

// Apply maps word through the chain. Transform failures propagate so a
// broken pipeline is visible immediately instead of silently producing
// wrong completions.
func (c Chain) Apply(word string, inverse bool) (string, error) {
	var err error
	if inverse {
		for i := len(c) - 1; i >= 0; i-- {
			word, err = c[i].Inverse(word)
			if err != nil {
				return "", errors.NewTransformError(c[i].Name(), "inverse transform failed", err)
			}
		}
		return word, nil
	}
	for _, t := range c {
		word, err = t.Forward(word)
		if err != nil {
			return "", errors.NewTransformError(t.Name(), "transform failed", err)
		}
	}
	return word, nil
}

// TransformByName returns a built-in transform by its configuration name.
func TransformByName(name string, env Environ) (Transform, error) {
	switch name {
	case "tilde":
		return NewTilde(env), nil
	case "env":
		return NewEnvExpand(env), nil
	default:
		return nil, errors.NewNotFoundError(name, fmt.Sprintf("unknown transform: %s", name))
	}
}

// Tilde expands a leading ~ to the home directory and contracts it back.
type Tilde struct {
	home string
}

// NewTilde creates a tilde transform using HOME from the given environment.
func NewTilde(env Environ) *Tilde {
	return &Tilde{home: env.Get("HOME")}
}

// Name implements Transform.
func (t *Tilde) Name() string { return "tilde" }

// Forward expands "~" or "~/..." to the home directory. Words without a
// leading tilde, and any word when HOME is unset, pass through unchanged.
func (t *Tilde) Forward(word string) (string, error) {
	if t.home == "" {
		return word, nil
	}
	if word == "~" {
		return t.home, nil
	}
	if strings.HasPrefix(word, "~/") {
		return t.home + word[1:], nil
	}
	return word, nil
}

// Inverse contracts a home directory prefix back to ~.
func (t *Tilde) Inverse(word string) (string, error) {
	if t.home == "" {
		return word, nil
	}
	if word == t.home {
		return "~", nil
	}
	if strings.HasPrefix(word, t.home+"/") {
		return "~" + word[len(t.home):], nil
	}
	return word, nil
}

// EnvExpand expands a $NAME word to the variable's value and contracts
// a value prefix back to its variable reference.
type EnvExpand struct {
	env Environ
}

// NewEnvExpand creates an environment expansion transform.
func NewEnvExpand(env Environ) *EnvExpand {
	return &EnvExpand{env: env}
}

// Name implements Transform.
func (t *EnvExpand) Name() string { return "env" }

// Forward replaces a $NAME word with the variable's value. Unset
// variables and words without the sigil pass through unchanged so
// variable-name completion still sees them.
func (t *EnvExpand) Forward(word string) (string, error) {
	if !strings.HasPrefix(word, "$") {
		return word, nil
	}
	if value, ok := t.env.Lookup(word[1:]); ok {
		return value, nil
	}
	return word, nil
}

// Inverse contracts the longest variable value that prefixes word back
// to its $NAME form. Equal-length values resolve to the lexically first
// variable name so the result is deterministic.
func (t *EnvExpand) Inverse(word string) (string, error) {
	bestName := ""
	bestLen := 0
	for _, name := range t.env.Names() {
		value := t.env[name]
		if value == "" || len(value) <= bestLen {
			continue
		}
		if strings.HasPrefix(word, value) {
			bestName = name
			bestLen = len(value)
		}
	}
	if bestName == "" {
		return word, nil
	}
	return "$" + bestName + word[bestLen:], nil
}
