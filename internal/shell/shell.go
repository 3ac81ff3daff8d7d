// Package shell detects the user's shell and generates the integration
// code that registers Compadre as its completion engine.
package shell

import (
	"os"
	"strings"
)

const (
	// Bash represents the bash shell
	Bash = "bash"
	// Zsh represents the zsh shell
	Zsh = "zsh"
	// Fish represents the fish shell
	Fish = "fish"
)

// Supported lists the shells Compadre can integrate with
var Supported = []string{Bash, Zsh, Fish}

// IsSupported reports whether shell names a supported shell
func IsSupported(shell string) bool {
	for _, s := range Supported {
		if s == shell {
			return true
		}
	}
	return false
}

// Detect determines the shell type based on the flag or environment.
func Detect(shellFlag string) string {
	if shellFlag != "auto" {
		return shellFlag
	}

	// Detect from SHELL env var
	shell := os.Getenv("SHELL")
	if strings.Contains(shell, "zsh") {
		return Zsh
	}
	if strings.Contains(shell, "fish") {
		return Fish
	}
	if strings.Contains(shell, "bash") {
		return Bash
	}

	// Default to bash
	return Bash
}
