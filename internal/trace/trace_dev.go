//go:build dev

// Package trace wires runtime/trace into development builds so slow
// completions can be profiled end to end.
//
// Usage:
//
//	COMPADRE_TRACE=trace.out compadre complete 'fo'
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

var state struct {
	mu     sync.Mutex
	out    *os.File
	active bool
}

// Init starts tracing when COMPADRE_TRACE names an output file. The
// returned stop function flushes and closes the trace, call it before
// the process exits.
func Init() func() {
	path := os.Getenv("COMPADRE_TRACE")
	if path == "" {
		return func() {}
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compadre: cannot create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(out); err != nil {
		fmt.Fprintf(os.Stderr, "compadre: cannot start trace: %v\n", err)
		out.Close()
		return func() {}
	}

	state.out = out
	state.active = true
	fmt.Fprintf(os.Stderr, "compadre: tracing to %s\n", path)
	return stop
}

func stop() {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.active {
		trace.Stop()
		state.active = false
	}
	if state.out != nil {
		state.out.Close()
		state.out = nil
	}
}

// Region opens a trace region and returns its end function
func Region(ctx context.Context, name string) func() {
	if !state.active {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log attaches a message to the trace under the given category
func Log(ctx context.Context, category, message string) {
	if state.active {
		trace.Log(ctx, category, message)
	}
}

// WithRegion runs f inside a trace region
func WithRegion(ctx context.Context, name string, f func()) {
	if state.active {
		trace.WithRegion(ctx, name, f)
	} else {
		f()
	}
}

// IsEnabled reports whether a trace is being recorded
func IsEnabled() bool {
	return state.active
}
