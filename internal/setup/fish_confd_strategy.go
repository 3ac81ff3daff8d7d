package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compadre-sh/compadre/internal/shell"
)

// FishConfdStrategy implements hook installation for Fish shell.
// Fish sources every file in ~/.config/fish/conf.d at startup, so the
// hook is a single drop-in file and no config editing is required.
type FishConfdStrategy struct {
	confdFile string
	message   string
}

// NewFishConfdStrategy creates a new Fish conf.d strategy
func NewFishConfdStrategy() (*FishConfdStrategy, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	confdFile := filepath.Join(home, ".config", "fish", "conf.d", "compadre.fish")

	return &FishConfdStrategy{confdFile: confdFile}, nil
}

// Install writes the hook drop-in file
func (s *FishConfdStrategy) Install() error {
	if err := os.MkdirAll(filepath.Dir(s.confdFile), 0755); err != nil {
		return fmt.Errorf("failed to create conf.d directory: %w", err)
	}

	hookCode := shell.HookCode(shell.Fish)
	if err := atomicWrite(s.confdFile, []byte(hookCode)); err != nil {
		return fmt.Errorf("failed to create conf.d file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Hook installed to %s\n✓ Fish sources conf.d automatically, no config changes needed", s.confdFile)
	return nil
}

// Uninstall removes the hook drop-in file
func (s *FishConfdStrategy) Uninstall() error {
	if err := os.Remove(s.confdFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove conf.d file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Removed %s", s.confdFile)
	return nil
}

// IsInstalled checks if the drop-in file exists
func (s *FishConfdStrategy) IsInstalled() bool {
	_, err := os.Stat(s.confdFile)
	return err == nil
}

// NeedsUpdate checks if the hook needs to be updated
func (s *FishConfdStrategy) NeedsUpdate() bool {
	currentHook, err := os.ReadFile(s.confdFile)
	if err != nil {
		return true
	}

	expectedHook := shell.HookCode(shell.Fish)
	return string(currentHook) != expectedHook
}

// GetMessage returns a user-friendly message
func (s *FishConfdStrategy) GetMessage() string {
	if s.message == "" {
		return "✓ Compadre hook is up to date"
	}
	return s.message
}

// GetRCFile returns the conf.d file path
func (s *FishConfdStrategy) GetRCFile() string {
	return s.confdFile
}
