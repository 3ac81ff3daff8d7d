// Package setup installs the Compadre completion hook into the user's
// shell startup files.
package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compadre-sh/compadre/internal/shell"
)

// InstallStrategy is one way of getting the hook sourced at shell
// startup. Which one applies depends on the shell and on how the
// user's startup files are organized.
type InstallStrategy interface {
	Install() error
	Uninstall() error
	IsInstalled() bool
	// NeedsUpdate reports whether the installed hook differs from the
	// one this binary would write.
	NeedsUpdate() bool
	GetMessage() string
	// GetRCFile returns the startup file the strategy touches
	GetRCFile() string
}

// SelectStrategy selects the best installation strategy for the given shell
func SelectStrategy(sh string) (InstallStrategy, error) {
	// Fish sources conf.d drop-ins natively, no rc editing needed
	if sh == shell.Fish {
		return NewFishConfdStrategy()
	}

	// A .bashrc.d/.zshrc.d directory already sourced by the rc file is
	// the cleanest target. Otherwise fall back to one sourced line in
	// the rc file itself.
	dropIn, err := NewDropInStrategy(sh)
	if err == nil && dropIn.IsSupported() {
		return dropIn, nil
	}
	return NewExternalHookStrategy(sh)
}

// atomicWrite replaces filename via a temp file and rename, so a
// crashed write never leaves a truncated startup file behind.
func atomicWrite(filename string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), ".compadre-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}
