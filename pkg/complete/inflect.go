package complete

import (
	"os"
	"path/filepath"
	"strings"
)

// Inflector appends a type hint to candidates: the path separator for
// directories, a single space for everything else. The hint speeds
// typing and marks a completion as successful, and the trailing
// separator lets the user immediately complete one level deeper.
type Inflector struct {
	dir string
}

// NewInflector creates an inflector. Relative candidates are stated
// against dir; an empty dir means the process working directory.
func NewInflector(dir string) *Inflector {
	return &Inflector{dir: dir}
}

// Inflect appends the type hint suffix and escapes literal spaces in
// the name portion with a backslash, so the result can be spliced into
// a shell-syntax buffer. Exactly one suffix is appended per call.
func (f *Inflector) Inflect(name string) string {
	suffix := " "
	if f.isDir(name) {
		suffix = string(os.PathSeparator)
	}
	return strings.ReplaceAll(name, " ", `\ `) + suffix
}

func (f *Inflector) isDir(name string) bool {
	path := name
	if f.dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.dir, path)
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
