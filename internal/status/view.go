package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	// Header
	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	// System & Installation
	b.WriteString(renderSystemInfo(data))
	b.WriteString("\n")

	// Configuration hierarchy
	b.WriteString(renderConfigHierarchy(data))
	b.WriteString("\n")

	// Engine settings
	if hasEngineSettings(data) {
		b.WriteString(renderEngineInfo(data))
		b.WriteString("\n")
	}

	// Flags
	if len(data.Flags) > 0 {
		b.WriteString(renderFlags(data))
		b.WriteString("\n")
	}

	// Sources
	if len(data.Sources) > 0 {
		b.WriteString(renderSources(data))
		b.WriteString("\n")
	}

	// Wordlist cache
	b.WriteString(renderWordlistCache(data))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderSystemInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  System & Installation:") + "\n")

	b.WriteString("   " + keyStyle.Render("Shell: ") + valueStyle.Render(data.Shell) + "\n")

	if data.HookInstalled {
		b.WriteString("   " + keyStyle.Render("Hook: ") + successStyle.Render("✓ Installed") + "\n")
		if data.RCFile != "" {
			b.WriteString("   " + keyStyle.Render("RC file: ") + subtleStyle.Render(data.RCFile) + "\n")
		}
	} else {
		b.WriteString("   " + keyStyle.Render("Hook: ") + errorStyle.Render("✗ Not installed") + "\n")
		if data.Shell != "unknown" {
			b.WriteString("   " + warningStyle.Render("Run 'compadre setup' to install") + "\n")
		}
	}

	b.WriteString("   " + keyStyle.Render("Cache dir: ") + subtleStyle.Render(data.CacheDir))

	return b.String()
}

func renderConfigHierarchy(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration hierarchy:") + "\n")

	hasGlobal := data.GlobalConfig != nil && data.GlobalConfig.Exists
	if len(data.LocalConfigs) == 0 && !hasGlobal {
		b.WriteString("   " + subtleStyle.Render("No configuration files found"))
		return b.String()
	}

	idx := 1
	if hasGlobal {
		status := successStyle.Render("✓")
		note := ""
		if !data.GlobalConfig.Loaded {
			status = errorStyle.Render("✗")
			note = subtleStyle.Render(" (ignored)")
		}
		b.WriteString(fmt.Sprintf("   %d. %s %s%s\n",
			idx,
			subtleStyle.Render(data.GlobalConfig.Path+" (global)"),
			status,
			note))
		idx++
	}

	for _, cfg := range data.LocalConfigs {
		status := successStyle.Render("✓")
		statusText := ""
		if !cfg.Loaded {
			status = errorStyle.Render("✗")
			statusText = subtleStyle.Render(" (not loaded)")
		} else if cfg.LocalOnly {
			statusText = subtleStyle.Render(" (local only)")
		}

		b.WriteString(fmt.Sprintf("   %d. %s %s%s\n",
			idx,
			valueStyle.Render(cfg.Path),
			status,
			statusText))
		idx++
	}

	// Remove trailing newline
	return strings.TrimSuffix(b.String(), "\n")
}

func hasEngineSettings(data *Data) bool {
	return len(data.Transforms) > 0 || len(data.Exclude) > 0 || data.Inflect || data.LogLevel != ""
}

func renderEngineInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔤 Engine:") + "\n")

	if len(data.Transforms) > 0 {
		b.WriteString("   " + keyStyle.Render("Transforms: ") + valueStyle.Render(strings.Join(data.Transforms, ", ")) + "\n")
	}
	if len(data.Exclude) > 0 {
		b.WriteString("   " + keyStyle.Render("Exclusion rules: ") + valueStyle.Render(fmt.Sprintf("%d", len(data.Exclude))) + "\n")
	}
	inflect := "off"
	if data.Inflect {
		inflect = "on"
	}
	b.WriteString("   " + keyStyle.Render("Inflection: ") + valueStyle.Render(inflect) + "\n")
	if data.LogLevel != "" {
		b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderFlags(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🏴 Flags:") + "\n")
	b.WriteString("   " + valueStyle.Render(strings.Join(data.Flags, ", ")))
	return b.String()
}

func renderSources(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📚 Sources:") + "\n")

	for _, src := range data.Sources {
		b.WriteString(fmt.Sprintf("   %s %s %s",
			keyStyle.Render(src.Name),
			subtleStyle.Render("("+src.Kind+")"),
			valueStyle.Render(truncateString(src.Location, 60))))

		if src.SHA256 != "" {
			b.WriteString(" " + subtleStyle.Render("📌 pinned"))
		}

		if src.Active {
			b.WriteString(" " + successStyle.Render("✓"))
		} else {
			b.WriteString(" " + errorStyle.Render("✗"))
			if src.Reason != "" {
				b.WriteString(" " + subtleStyle.Render("("+src.Reason+")"))
			}
		}
		b.WriteString("\n")

		if src.HasWhen {
			b.WriteString(fmt.Sprintf("      %s %s\n",
				subtleStyle.Render("when:"),
				subtleStyle.Render(src.WhenSummary)))
		}

		if src.Active && src.Kind == "glob" {
			b.WriteString(fmt.Sprintf("      %s %s\n",
				subtleStyle.Render("matched files:"),
				valueStyle.Render(fmt.Sprintf("%d", src.FileCount))))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderWordlistCache(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("💾 Wordlist cache:") + "\n")

	if len(data.Wordlists) == 0 {
		b.WriteString("   " + subtleStyle.Render("No wordlists fetched yet"))
		return b.String()
	}

	for _, wl := range data.Wordlists {
		b.WriteString(fmt.Sprintf("   %s %s %s\n",
			valueStyle.Render(wl.Name),
			subtleStyle.Render("("+humanize.Bytes(uint64(wl.Size))+")"),
			subtleStyle.Render("fetched "+humanize.Time(wl.FetchedAt))))
	}
	b.WriteString("   " + keyStyle.Render("Total size: ") + valueStyle.Render(humanize.Bytes(uint64(data.CacheTotalSize))))

	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
