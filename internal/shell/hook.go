package shell

import (
	"fmt"
	"os"
)

// HookCode generates the shell integration code for the specified shell.
// The emitted code registers `compadre bridge` as the shell's completer
// and degrades to the shell's native completion when Compadre is
// disabled or missing.
func HookCode(shell string) string {
	// Get the path to the current binary
	binPath, err := os.Executable()
	if err != nil {
		binPath = "compadre" // Fallback to PATH
	}

	switch shell {
	case Zsh:
		return fmt.Sprintf(`# Compadre shell integration for zsh
if [[ "${COMPADRE_ENABLED:-true}" != "false" ]] && command -v %s &> /dev/null; then
  __compadre_complete() {
    local -a matches
    matches=(${(f)"$(COMP_LINE=$BUFFER COMP_POINT=$CURSOR %s bridge 2>/dev/null)"})
    (( ${#matches[@]} )) && compadd -Q -U -S '' -- "${matches[@]}"
  }

  if (( ! $+functions[compdef] )); then
    autoload -U compinit && compinit -u
  fi
  compdef __compadre_complete -default-
fi`, binPath, binPath)

	case Fish:
		return fmt.Sprintf(`# Compadre shell integration for fish
if status is-interactive; and command -q %s
    function __compadre_complete
        if test "$COMPADRE_ENABLED" = "false"
            commandline -f complete
            return
        end
        set -l matches (COMP_LINE=(commandline -b) COMP_POINT=(commandline -C) %s bridge 2>/dev/null)
        if test (count $matches) -eq 1
            commandline -rt -- $matches[1]
            commandline -f repaint
        else
            # Zero or many matches: let fish's own pager handle it
            commandline -f complete
        end
    end

    bind \t __compadre_complete
end`, binPath, binPath)

	default: // bash
		return fmt.Sprintf(`# Compadre shell integration for bash
if [[ "${COMPADRE_ENABLED:-true}" != "false" ]] && command -v %s &> /dev/null; then
  # -o nospace: candidates carry their own suffix (space or /)
  # -o default: fall back to readline completion when no candidates come back
  complete -o nospace -o default -C '%s bridge' -D 2>/dev/null
fi`, binPath, binPath)
	}
}
