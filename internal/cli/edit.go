package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/compadre-sh/compadre/internal/config"
)

// editTarget picks the config file to edit. Local edits reuse an
// existing config whatever its extension, falling back to .compadre.yml.
func editTarget(global bool) (string, error) {
	if global {
		globalPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get global config path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(globalPath), 0755); err != nil {
			return "", fmt.Errorf("failed to create config directory: %w", err)
		}
		return globalPath, nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	for _, name := range config.SupportedConfigNames {
		path := filepath.Join(currentDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return filepath.Join(currentDir, ".compadre.yml"), nil
}

// resolveEditor returns the editor command: $EDITOR, then $VISUAL,
// then the first common editor on PATH.
func resolveEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, nil
		}
	}
	for _, candidate := range []string{"nano", "vim", "vi"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no editor found. Set $EDITOR or $VISUAL environment variable")
}

// Edit opens the config file in the user's editor, creating a sample
// config first when none exists yet.
func Edit(global bool) error {
	configPath, err := editTarget(global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Printf("Created new config: %s\n", configPath)
	} else {
		fmt.Printf("Opening config: %s\n", configPath)
	}

	editor, err := resolveEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
