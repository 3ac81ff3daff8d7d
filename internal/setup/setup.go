package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compadre-sh/compadre/internal/shell"
)

// Result represents the result of a setup operation
type Result struct {
	RCFile  string
	Updated bool
	Message string
}

// GetRCFilePath returns the startup file Compadre integrates with for the given shell
func GetRCFilePath(sh string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch sh {
	case shell.Bash:
		return filepath.Join(home, ".bashrc"), nil
	case shell.Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case shell.Fish:
		return filepath.Join(home, ".config", "fish", "conf.d", "compadre.fish"), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (use bash, zsh or fish)", sh)
	}
}

// InstallHook installs or updates the Compadre hook using the best strategy
func InstallHook(sh string) (*Result, error) {
	strategy, err := SelectStrategy(sh)
	if err != nil {
		return nil, err
	}

	// Check if already installed and up to date
	if strategy.IsInstalled() && !strategy.NeedsUpdate() {
		return &Result{
			RCFile:  strategy.GetRCFile(),
			Updated: false,
			Message: strategy.GetMessage() + "\n✓ Shell completion is up to date",
		}, nil
	}

	// Install or update
	if err := strategy.Install(); err != nil {
		return nil, fmt.Errorf("failed to install hook: %w", err)
	}

	return &Result{
		RCFile:  strategy.GetRCFile(),
		Updated: true,
		Message: strategy.GetMessage() + "\n✓ Shell completion is ready, restart your shell or source the file above",
	}, nil
}

// IsHookInstalled checks if the Compadre hook is installed
func IsHookInstalled(sh string) (bool, error) {
	strategy, err := SelectStrategy(sh)
	if err != nil {
		return false, err
	}

	return strategy.IsInstalled(), nil
}

// UninstallHook removes the Compadre hook
func UninstallHook(sh string) (*Result, error) {
	strategy, err := SelectStrategy(sh)
	if err != nil {
		return nil, err
	}

	if !strategy.IsInstalled() {
		return &Result{
			RCFile:  strategy.GetRCFile(),
			Updated: false,
			Message: "✓ Compadre is not installed",
		}, nil
	}

	if err := strategy.Uninstall(); err != nil {
		return nil, fmt.Errorf("failed to uninstall: %w", err)
	}

	return &Result{
		RCFile:  strategy.GetRCFile(),
		Updated: true,
		Message: strategy.GetMessage(),
	}, nil
}
