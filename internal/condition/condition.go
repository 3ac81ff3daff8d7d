// Package condition evaluates the gating rules that decide whether a
// completion source should load in the current directory.
package condition

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Condition represents a testable condition
type Condition interface {
	// Evaluate tests the condition and returns:
	// - bool: true if condition is met, false otherwise
	// - string: user-friendly message if condition fails
	// - error: technical error if evaluation failed (file system error, etc.)
	Evaluate(ctx Context) (bool, string, error)
}

// Context provides the environment for condition evaluation
type Context struct {
	// Env contains environment variables (key-value pairs)
	Env map[string]string
	// WorkingDir is the directory completion runs in
	WorkingDir string
}

// expandEnv expands $VAR references, preferring the context's env map
// over the process environment
func (ctx Context) expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := ctx.Env[key]; ok {
			return val
		}
		return os.Getenv(key)
	})
}

// statPath expands and resolves path against the working directory,
// then stats it. A missing path is reported through the bool, any
// other stat failure through the error.
func (ctx Context) statPath(path string) (os.FileInfo, bool, error) {
	resolved := ctx.expandEnv(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(ctx.WorkingDir, resolved)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return info, true, nil
}

// FileCondition tests if a file exists
type FileCondition struct {
	Path string // Path to file (supports env var expansion)
}

// Evaluate implements Condition
func (c FileCondition) Evaluate(ctx Context) (bool, string, error) {
	info, exists, err := ctx.statPath(c.Path)
	if err != nil {
		return false, "", fmt.Errorf("failed to check file '%s': %w", c.Path, err)
	}
	if !exists {
		return false, fmt.Sprintf("file '%s' does not exist", c.Path), nil
	}
	if info.IsDir() {
		return false, fmt.Sprintf("'%s' is a directory, not a file", c.Path), nil
	}
	return true, "", nil
}

// VarCondition tests if an environment variable is set and non-empty
type VarCondition struct {
	Name string // Variable name
}

// Evaluate implements Condition
func (c VarCondition) Evaluate(ctx Context) (bool, string, error) {
	if val, ok := ctx.Env[c.Name]; ok && val != "" {
		return true, "", nil
	}
	// Fallback to os env
	if os.Getenv(c.Name) != "" {
		return true, "", nil
	}
	return false, fmt.Sprintf("environment variable '%s' is not set or empty", c.Name), nil
}

// DirCondition tests if a directory exists
type DirCondition struct {
	Path string // Path to directory (supports env var expansion)
}

// Evaluate implements Condition
func (c DirCondition) Evaluate(ctx Context) (bool, string, error) {
	info, exists, err := ctx.statPath(c.Path)
	if err != nil {
		return false, "", fmt.Errorf("failed to check directory '%s': %w", c.Path, err)
	}
	if !exists {
		return false, fmt.Sprintf("directory '%s' does not exist", c.Path), nil
	}
	if !info.IsDir() {
		return false, fmt.Sprintf("'%s' is a file, not a directory", c.Path), nil
	}
	return true, "", nil
}

// CommandCondition tests if a command exists in PATH
type CommandCondition struct {
	Name string // Command name
}

// Evaluate implements Condition
func (c CommandCondition) Evaluate(_ Context) (bool, string, error) {
	if _, err := exec.LookPath(c.Name); err != nil {
		return false, fmt.Sprintf("command '%s' not found in PATH", c.Name), nil
	}
	return true, "", nil
}

// AllCondition tests if all sub-conditions are true (AND logic)
type AllCondition struct {
	Conditions []Condition
}

// Evaluate implements Condition
func (c AllCondition) Evaluate(ctx Context) (bool, string, error) {
	var failed []string
	for _, cond := range c.Conditions {
		ok, msg, err := cond.Evaluate(ctx)
		if err != nil {
			return false, "", err
		}
		if !ok {
			failed = append(failed, msg)
		}
	}

	if len(failed) > 0 {
		return false, "  - " + strings.Join(failed, "\n  - "), nil
	}
	return true, "", nil
}

// AnyCondition tests if at least one sub-condition is true (OR logic)
type AnyCondition struct {
	Conditions []Condition
}

// Evaluate implements Condition
func (c AnyCondition) Evaluate(ctx Context) (bool, string, error) {
	var messages []string
	for _, cond := range c.Conditions {
		ok, msg, err := cond.Evaluate(ctx)
		if err != nil {
			return false, "", err
		}
		if ok {
			return true, "", nil
		}
		messages = append(messages, msg)
	}

	return false, "none of the following conditions were met:\n  - " + strings.Join(messages, "\n  - "), nil
}
