package complete

import (
	"os"
	"sort"
	"strings"
)

// Environ is a read-only snapshot of environment variables. Generators
// and transforms work against a snapshot instead of the live process
// environment so completion stays deterministic and testable.
type Environ map[string]string

// OSEnviron captures the current process environment.
func OSEnviron() Environ {
	kvs := os.Environ()
	env := make(Environ, len(kvs))
	for _, kv := range kvs {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}
	return env
}

// Names returns all variable names in lexical order.
func (e Environ) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of a variable, or "" if unset.
func (e Environ) Get(name string) string {
	return e[name]
}

// Lookup returns the value of a variable and whether it is set.
func (e Environ) Lookup(name string) (string, bool) {
	value, ok := e[name]
	return value, ok
}
