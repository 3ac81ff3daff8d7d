package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/compadre-sh/compadre/internal/timing"
	"github.com/compadre-sh/compadre/internal/trace"
)

// BridgeParams holds parameters for the Bridge command
type BridgeParams struct {
	CacheDir string
	LogLevel string
	// Line is COMP_LINE, the full command line being edited.
	Line string
	// Point is COMP_POINT, the cursor byte offset into Line.
	Point string
}

// Bridge implements the shell side of completion: it reads the word
// under the cursor from the COMP_LINE/COMP_POINT protocol, queries the
// engine and prints candidates one per line. It always returns nil. A
// broken completer must never break the user's shell, so every failure
// degrades to printing nothing.
func Bridge(params BridgeParams) error {
	ctx := context.Background()
	defer trace.Region(ctx, "cli.Bridge")()

	timer := timing.NewTimer()

	point, err := strconv.Atoi(params.Point)
	if err != nil || point < 0 {
		point = len(params.Line)
	}
	word := UnescapeWord(WordAtPoint(params.Line, point))

	completer, log, err := buildCompleter(engineParams{
		CacheDir: params.CacheDir,
		LogLevel: params.LogLevel,
		Timer:    timer,
	})
	if err != nil {
		return nil
	}

	count := 0
	trace.WithRegion(ctx, "engine.Complete", func() {
		for state := 0; ; state++ {
			match, ok := completer.Complete(word, state)
			if !ok {
				break
			}
			fmt.Println(match)
			count++
		}
	})
	timer.Mark("matches")

	log.Debug().
		Str("word", word).
		Int("count", count).
		Str("timing", timer.Summary()).
		Msg("Bridge completion")

	return nil
}

// WordAtPoint extracts the word under the cursor. The boundary is the
// nearest space left of the cursor that is not backslash-escaped, so
// escaped spaces stay part of the word.
func WordAtPoint(line string, point int) string {
	if point < 0 {
		point = 0
	}
	if point > len(line) {
		point = len(line)
	}
	start := point
	for start > 0 {
		if line[start-1] == ' ' && !escapedAt(line, start-1) {
			break
		}
		start--
	}
	return line[start:point]
}

// escapedAt reports whether the byte at i is preceded by an odd number
// of backslashes.
func escapedAt(line string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// UnescapeWord strips backslash escapes so the engine sees the text the
// user means. Candidates are re-escaped by the inflector on the way out.
func UnescapeWord(word string) string {
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
