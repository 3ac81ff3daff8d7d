package cli

import (
	"errors"
	"fmt"
)

// ErrNoCompletion reports that the requested state is past the last
// candidate. The caller maps it to a bare exit code 1 so line editors
// can detect termination without parsing output.
var ErrNoCompletion = errors.New("no completion")

// CompleteParams holds parameters for the Complete command
type CompleteParams struct {
	CacheDir string
	LogLevel string
	Word     string
	// State selects a single candidate. Negative means all candidates.
	State int
}

// Complete queries the engine for the word and prints candidates one
// per line. With a non-negative state only that candidate is printed,
// following the repeated-call protocol line editors use.
func Complete(params CompleteParams) error {
	completer, _, err := buildCompleter(engineParams{
		CacheDir: params.CacheDir,
		LogLevel: params.LogLevel,
	})
	if err != nil {
		return err
	}

	if params.State >= 0 {
		match, ok := completer.Complete(params.Word, params.State)
		if !ok {
			return ErrNoCompletion
		}
		fmt.Println(match)
		return nil
	}

	for state := 0; ; state++ {
		match, ok := completer.Complete(params.Word, state)
		if !ok {
			break
		}
		fmt.Println(match)
	}
	return nil
}
