// Package lineedit adapts the completion engine to liner-driven
// interactive prompts. The engine stays free of terminal concerns; this
// package owns the cursor arithmetic and the liner wiring.
package lineedit

import (
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by Prompt when the user cancels with Ctrl-C.
var ErrAborted = liner.ErrPromptAborted

// Completer is the engine surface the adapter drives: the repeated-call
// protocol of complete.Completer.
type Completer interface {
	Complete(word string, state int) (string, bool)
}

// WordCompleter builds a liner word completer on top of c. It isolates
// the word under the cursor at an unescaped space boundary, strips the
// escapes the engine re-applies on output, and drains the candidate
// list for liner to cycle through.
func WordCompleter(c Completer) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		if pos < 0 {
			pos = 0
		}
		if pos > len(line) {
			pos = len(line)
		}

		start := wordStart(line, pos)
		word := unescape(line[start:pos])

		var completions []string
		for state := 0; ; state++ {
			match, ok := c.Complete(word, state)
			if !ok {
				break
			}
			completions = append(completions, match)
		}

		return line[:start], completions, line[pos:]
	}
}

// wordStart returns the index after the nearest space left of pos that
// is not backslash-escaped.
func wordStart(line string, pos int) int {
	start := pos
	for start > 0 {
		if line[start-1] == ' ' && !escaped(line, start-1) {
			break
		}
		start--
	}
	return start
}

// escaped reports whether the byte at i sits behind an odd number of
// backslashes.
func escaped(line string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// unescape removes backslash escapes. A trailing lone backslash is kept
// as typed.
func unescape(word string) string {
	if !strings.Contains(word, `\`) {
		return word
	}
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); i++ {
		if word[i] == '\\' && i+1 < len(word) {
			i++
		}
		b.WriteByte(word[i])
	}
	return b.String()
}

// Editor is a ready-to-use interactive prompt with engine completion
// and persistent history.
type Editor struct {
	state       *liner.State
	historyFile string
}

// NewEditor creates an Editor completing through c. historyFile names
// the history store; empty disables persistence.
func NewEditor(c Completer, historyFile string) *Editor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetWordCompleter(WordCompleter(c))

	e := &Editor{
		state:       state,
		historyFile: historyFile,
	}
	e.loadHistory()
	return e
}

// Prompt reads one line of input. Non-blank input is appended to the
// in-memory history. Cancelling with Ctrl-C returns ErrAborted.
func (e *Editor) Prompt(prompt string) (string, error) {
	input, err := e.state.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		e.state.AppendHistory(input)
	}

	return input, nil
}

// AppendHistory adds an entry to the in-memory history without
// prompting.
func (e *Editor) AppendHistory(item string) {
	e.state.AppendHistory(item)
}

// Close saves history and restores the terminal.
func (e *Editor) Close() {
	e.saveHistory()
	_ = e.state.Close()
}

func (e *Editor) loadHistory() {
	if e.historyFile == "" {
		return
	}
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.state.ReadHistory(f)
		_ = f.Close()
	}
}

func (e *Editor) saveHistory() {
	if e.historyFile == "" {
		return
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	_, _ = e.state.WriteHistory(f)
}
