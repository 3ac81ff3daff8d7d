package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/compadre-sh/compadre/internal/shell"
)

// CompadreComment marks the line compadre added to an rc file
const CompadreComment = "# Compadre"

// ExternalHookStrategy keeps the hook code in a file under
// ~/.config/compadre and adds one source line to the rc file. Hook
// updates then never touch the rc file again.
type ExternalHookStrategy struct {
	shell    string
	hookPath string
	rcFile   string
	message  string
}

// NewExternalHookStrategy creates a new external hook strategy
func NewExternalHookStrategy(sh string) (*ExternalHookStrategy, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	rcFile, err := GetRCFilePath(sh)
	if err != nil {
		return nil, err
	}

	return &ExternalHookStrategy{
		shell:    sh,
		hookPath: filepath.Join(home, ".config", "compadre", fmt.Sprintf("hook-%s.sh", sh)),
		rcFile:   rcFile,
	}, nil
}

// sourceLine is the single line added to the rc file. The existence
// guard keeps the rc file working after an uninstall that misses it.
func (s *ExternalHookStrategy) sourceLine() string {
	return fmt.Sprintf("[ -f %s ] && source %s", s.hookPath, s.hookPath)
}

// writeHook writes the current hook code to the hook file
func (s *ExternalHookStrategy) writeHook() error {
	if err := os.MkdirAll(filepath.Dir(s.hookPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicWrite(s.hookPath, []byte(shell.HookCode(s.shell))); err != nil {
		return fmt.Errorf("failed to create hook file: %w", err)
	}
	return nil
}

// Install writes the hook file and makes sure the rc file sources it
func (s *ExternalHookStrategy) Install() error {
	if err := s.writeHook(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.rcFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read RC file: %w", err)
	}
	content := string(data)

	if strings.Contains(content, s.sourceLine()) {
		s.message = fmt.Sprintf("✓ Hook file updated at %s\n✓ RC file already configured", s.hookPath)
		return nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += fmt.Sprintf("\n%s\n%s\n", CompadreComment, s.sourceLine())

	if err := atomicWrite(s.rcFile, []byte(content)); err != nil {
		return fmt.Errorf("failed to update RC file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Hook created at %s\n✓ Added single line to %s",
		s.hookPath, s.rcFile)
	return nil
}

// stripHookLines drops the marker comment and the source line from rc
// file content, leaving everything else untouched
func (s *ExternalHookStrategy) stripHookLines(content string) string {
	var kept []string
	afterMarker := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == CompadreComment {
			afterMarker = true
			continue
		}
		if afterMarker && strings.Contains(line, s.hookPath) {
			afterMarker = false
			continue
		}
		afterMarker = false
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Uninstall removes the hook file and the rc file's source line
func (s *ExternalHookStrategy) Uninstall() error {
	if err := os.Remove(s.hookPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove hook file: %w", err)
	}

	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.message = "✓ Nothing to uninstall"
			return nil
		}
		return fmt.Errorf("failed to read RC file: %w", err)
	}

	if err := atomicWrite(s.rcFile, []byte(s.stripHookLines(string(data)))); err != nil {
		return fmt.Errorf("failed to update RC file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Removed hook file: %s\n✓ Removed line from %s", s.hookPath, s.rcFile)
	return nil
}

// IsInstalled reports whether the hook file exists and the rc file
// references it
func (s *ExternalHookStrategy) IsInstalled() bool {
	if _, err := os.Stat(s.hookPath); os.IsNotExist(err) {
		return false
	}
	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), s.hookPath)
}

// NeedsUpdate reports whether the hook file differs from the hook this
// binary generates
func (s *ExternalHookStrategy) NeedsUpdate() bool {
	current, err := os.ReadFile(s.hookPath)
	if err != nil {
		return true
	}
	return string(current) != shell.HookCode(s.shell)
}

// GetMessage returns a user-friendly message
func (s *ExternalHookStrategy) GetMessage() string {
	if s.message == "" {
		return "✓ Compadre hook is up to date"
	}
	return s.message
}

// GetRCFile returns the rc file path
func (s *ExternalHookStrategy) GetRCFile() string {
	return s.rcFile
}
