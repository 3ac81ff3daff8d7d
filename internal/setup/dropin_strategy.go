package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/compadre-sh/compadre/internal/shell"
)

// DropInStrategy writes the hook into ~/.<shell>rc.d/compadre.sh.
// Distros like Ubuntu and Debian ship rc files that source that
// directory, so the hook lands without editing the rc file at all.
type DropInStrategy struct {
	shell      string
	dropInDir  string
	dropInFile string
	rcFile     string
	message    string
}

// NewDropInStrategy creates a new drop-in strategy
func NewDropInStrategy(sh string) (*DropInStrategy, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	rcFile, err := GetRCFilePath(sh)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, fmt.Sprintf(".%src.d", sh))
	return &DropInStrategy{
		shell:      sh,
		dropInDir:  dir,
		dropInFile: filepath.Join(dir, "compadre.sh"),
		rcFile:     rcFile,
	}, nil
}

// IsSupported reports whether the rc file references the drop-in
// directory. A drop-in nothing sources would never run.
func (s *DropInStrategy) IsSupported() bool {
	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), fmt.Sprintf(".%src.d", s.shell))
}

// Install writes the hook code into the drop-in file
func (s *DropInStrategy) Install() error {
	if err := os.MkdirAll(s.dropInDir, 0755); err != nil {
		return fmt.Errorf("failed to create drop-in directory: %w", err)
	}
	if err := atomicWrite(s.dropInFile, []byte(shell.HookCode(s.shell))); err != nil {
		return fmt.Errorf("failed to create drop-in file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Hook installed to %s\n✓ No modification to %s needed!",
		s.dropInFile, s.rcFile)
	return nil
}

// Uninstall removes the drop-in file
func (s *DropInStrategy) Uninstall() error {
	if err := os.Remove(s.dropInFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove drop-in file: %w", err)
	}
	s.message = fmt.Sprintf("✓ Removed %s", s.dropInFile)
	return nil
}

// IsInstalled checks if the drop-in file exists
func (s *DropInStrategy) IsInstalled() bool {
	_, err := os.Stat(s.dropInFile)
	return err == nil
}

// NeedsUpdate reports whether the drop-in file differs from the hook
// this binary generates
func (s *DropInStrategy) NeedsUpdate() bool {
	current, err := os.ReadFile(s.dropInFile)
	if err != nil {
		return true
	}
	return string(current) != shell.HookCode(s.shell)
}

// GetMessage returns a user-friendly message
func (s *DropInStrategy) GetMessage() string {
	if s.message == "" {
		return "✓ Compadre hook is up to date"
	}
	return s.message
}

// GetRCFile returns the rc file path
func (s *DropInStrategy) GetRCFile() string {
	return s.rcFile
}
