package complete

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/compadre-sh/compadre/internal/errors"
)

// Wordlist is an extension generator backed by a static list of words,
// typically loaded from a wordlist file in a project or downloaded from
// a registry. It completes on the word as a plain prefix.
type Wordlist struct {
	name  string
	words []string
}

// WordlistEntry is one word in a wordlist file. Entries are written
// either as a bare string or as a mapping with an optional description.
type WordlistEntry struct {
	Word        string `yaml:"word"`
	Description string `yaml:"description,omitempty"`
}

// UnmarshalYAML accepts both scalar and mapping forms.
func (e *WordlistEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Word)
	}
	type plain WordlistEntry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = WordlistEntry(p)
	return nil
}

// WordlistFile is the on-disk wordlist format.
type WordlistFile struct {
	Version     int             `yaml:"version"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Words       []WordlistEntry `yaml:"words"`
}

// NewWordlist creates a wordlist generator from an in-memory word list.
func NewWordlist(name string, words []string) *Wordlist {
	return &Wordlist{name: name, words: words}
}

// ParseWordlist parses wordlist file content. The name identifies the
// source in diagnostics and is overridden by the file's own name field.
func ParseWordlist(name string, data []byte) (*Wordlist, error) {
	var file WordlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewSourceError(name, "failed to parse wordlist", err)
	}
	if file.Version > 1 {
		return nil, errors.NewSourceError(name, fmt.Sprintf("unsupported wordlist version: %d", file.Version), nil)
	}
	if file.Name != "" {
		name = file.Name
	}
	words := make([]string, 0, len(file.Words))
	for _, entry := range file.Words {
		if entry.Word != "" {
			words = append(words, entry.Word)
		}
	}
	return &Wordlist{name: name, words: words}, nil
}

// LoadWordlist reads and parses a wordlist file. The generator name
// defaults to the file's base name without extension.
func LoadWordlist(path string) (*Wordlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceError(path, "failed to read wordlist", err)
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return ParseWordlist(name, data)
}

// Name implements Generator.
func (w *Wordlist) Name() string { return w.name }

// Supports implements Generator. Wordlists consider any word.
func (w *Wordlist) Supports(_ string) bool { return true }

// Generate yields every word starting with the given fragment, in
// wordlist order.
func (w *Wordlist) Generate(word string) ([]string, error) {
	matches := []string{}
	for _, candidate := range w.words {
		if strings.HasPrefix(candidate, word) {
			matches = append(matches, candidate)
		}
	}
	return matches, nil
}

// Words returns the full word list.
func (w *Wordlist) Words() []string {
	return w.words
}
