package complete

import (
	"os"
	"path/filepath"
	"strings"
)

// Generator produces raw completion candidates for a word. Builtin
// generators are dispatched on Supports; extension generators run
// unconditionally against the original word.
type Generator interface {
	Name() string
	Supports(word string) bool
	Generate(word string) ([]string, error)
}

// EnvVars completes environment variable references. It matches on the
// prefix following the $ sigil and keeps the sigil on every candidate.
type EnvVars struct {
	env Environ
}

// NewEnvVars creates a variable-name generator over the given environment.
func NewEnvVars(env Environ) *EnvVars {
	return &EnvVars{env: env}
}

// Name implements Generator.
func (g *EnvVars) Name() string { return "env" }

// Supports reports whether word is a variable reference.
func (g *EnvVars) Supports(word string) bool {
	return strings.HasPrefix(word, "$")
}

// Generate yields $NAME for every variable whose name starts with the
// fragment after the sigil, in lexical name order.
func (g *EnvVars) Generate(word string) ([]string, error) {
	fragment := strings.TrimPrefix(word, "$")
	matches := []string{}
	for _, name := range g.env.Names() {
		if strings.HasPrefix(name, fragment) {
			matches = append(matches, "$"+name)
		}
	}
	return matches, nil
}

// Filesystem completes file and directory names. The word is split into
// a directory component and a name fragment; candidates are directory
// entries joined back onto the component the user typed.
type Filesystem struct {
	dir string
}

// NewFilesystem creates a filesystem generator. Relative words are
// resolved against dir; an empty dir means the process working directory.
func NewFilesystem(dir string) *Filesystem {
	return &Filesystem{dir: dir}
}

// Name implements Generator.
func (g *Filesystem) Name() string { return "filesystem" }

// Supports implements Generator. The filesystem generator accepts any word.
func (g *Filesystem) Supports(_ string) bool { return true }

// Generate lists the word's directory and matches its entries in two
// phases. A non-empty fragment selects entries that start with it; an
// empty fragment selects every non-hidden entry. If the first phase
// finds nothing the listing is re-scanned for entries containing the
// fragment anywhere, which rewards partial recall when a strict prefix
// match fails. An unreadable directory yields no candidates.
func (g *Filesystem) Generate(word string) ([]string, error) {
	head, tail := filepath.Split(word)

	names, err := g.list(head)
	if err != nil {
		return nil, nil
	}

	var matches []string
	if tail != "" {
		for _, name := range names {
			if strings.HasPrefix(name, tail) {
				matches = append(matches, head+name)
			}
		}
	} else {
		for _, name := range names {
			if !strings.HasPrefix(name, ".") {
				matches = append(matches, head+name)
			}
		}
	}
	if len(matches) == 0 {
		for _, name := range names {
			if strings.Contains(name, tail) {
				matches = append(matches, head+name)
			}
		}
	}
	return matches, nil
}

func (g *Filesystem) list(head string) ([]string, error) {
	dir := head
	if dir == "" {
		dir = "."
	}
	if g.dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(g.dir, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}
