package lineedit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticCompleter serves prefix matches from a fixed list using the
// same repeated-call contract as the engine.
type staticCompleter struct {
	words []string
}

func (s staticCompleter) Complete(word string, state int) (string, bool) {
	var matches []string
	for _, w := range s.words {
		if strings.HasPrefix(w, word) {
			matches = append(matches, w)
		}
	}
	if state < 0 || state >= len(matches) {
		return "", false
	}
	return matches[state], true
}

func TestWordCompleter(t *testing.T) {
	c := staticCompleter{words: []string{"deploy", "destroy", "my file"}}
	fn := WordCompleter(c)

	tests := []struct {
		name            string
		line            string
		pos             int
		wantHead        string
		wantCompletions []string
		wantTail        string
	}{
		{
			name:            "last word",
			line:            "run de",
			pos:             6,
			wantHead:        "run ",
			wantCompletions: []string{"deploy", "destroy"},
			wantTail:        "",
		},
		{
			name:            "cursor mid line keeps tail",
			line:            "run de --verbose",
			pos:             6,
			wantHead:        "run ",
			wantCompletions: []string{"deploy", "destroy"},
			wantTail:        " --verbose",
		},
		{
			name:            "escaped space stays in word",
			line:            `open my\ fi`,
			pos:             11,
			wantHead:        "open ",
			wantCompletions: []string{"my file"},
			wantTail:        "",
		},
		{
			name:            "empty line completes everything",
			line:            "",
			pos:             0,
			wantHead:        "",
			wantCompletions: []string{"deploy", "destroy", "my file"},
			wantTail:        "",
		},
		{
			name:            "no matches",
			line:            "run zz",
			pos:             6,
			wantHead:        "run ",
			wantCompletions: nil,
			wantTail:        "",
		},
		{
			name:            "position beyond line is clamped",
			line:            "de",
			pos:             99,
			wantHead:        "",
			wantCompletions: []string{"deploy", "destroy"},
			wantTail:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, completions, tail := fn(tt.line, tt.pos)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.wantCompletions, completions)
			assert.Equal(t, tt.wantTail, tail)
		})
	}
}

func TestWordStart(t *testing.T) {
	tests := []struct {
		line string
		pos  int
		want int
	}{
		{"run de", 6, 4},
		{"de", 2, 0},
		{"", 0, 0},
		{"run ", 4, 4},
		{`a\ b`, 4, 0},
		{`a\\ b`, 5, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, wordStart(tt.line, tt.pos), "wordStart(%q, %d)", tt.line, tt.pos)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"plain", "plain"},
		{`my\ file`, "my file"},
		{`a\\b`, `a\b`},
		{`dangling\`, `dangling\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, unescape(tt.word), "unescape(%q)", tt.word)
	}
}

func TestEditor_HistoryRoundTrip(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), "history")

	e := NewEditor(staticCompleter{}, historyFile)
	e.AppendHistory("compadre status")
	e.AppendHistory("ls -la")
	e.Close()

	data, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "compadre status")
	assert.Contains(t, string(data), "ls -la")

	// A fresh editor loads the saved entries and keeps them on close
	e = NewEditor(staticCompleter{}, historyFile)
	e.Close()

	data, err = os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "compadre status")
}

func TestEditor_NoHistoryFile(t *testing.T) {
	e := NewEditor(staticCompleter{}, "")
	e.AppendHistory("transient")
	e.Close()
}
