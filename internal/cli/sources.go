package cli

import (
	"fmt"

	"github.com/compadre-sh/compadre/internal/config"
	"github.com/compadre-sh/compadre/internal/logger"
	"github.com/compadre-sh/compadre/internal/registry"
	"github.com/compadre-sh/compadre/internal/sources"
	"github.com/dustin/go-humanize"
)

// SourcesParams contains parameters for the Sources commands
type SourcesParams struct {
	CacheDir string
	LogLevel string
}

// Sources lists the configured wordlist sources and how they resolve
// from the current directory. Url sources are reported from the local
// cache, nothing is downloaded.
func Sources(params SourcesParams) error {
	merged, currentDir, err := loadMergedConfig()
	if err != nil {
		return err
	}
	log := buildLogger(params.LogLevel, merged)

	var reg *registry.Client
	if params.CacheDir != "" {
		if r, regErr := registry.New(params.CacheDir, log); regErr == nil {
			reg = r
		}
	}

	if len(merged.Sources) == 0 {
		fmt.Println("No sources configured")
	} else {
		details := config.GetConfigDetails(merged)
		resolved := sources.NewOfflineResolver(reg, log).Resolve(merged.Sources, nil, currentDir)

		fmt.Printf("Sources (%d):\n", len(resolved))
		for i, res := range resolved {
			info := details.Sources[i]
			marker := "✓"
			if !res.Active {
				marker = "✗"
			}
			line := fmt.Sprintf("  %s %s (%s) %s", marker, info.Name, info.Kind, info.Location)
			if info.SHA256 != "" {
				line += " [pinned]"
			}
			if res.Active {
				if info.Kind == "glob" {
					line += fmt.Sprintf(" [%d files]", len(res.Files))
				}
			} else if res.Reason != "" {
				line += fmt.Sprintf(" (%s)", res.Reason)
			}
			fmt.Println(line)
		}
	}

	if reg != nil {
		entries := reg.Entries()
		if len(entries) > 0 {
			fmt.Printf("\nCached wordlists (%d):\n", len(entries))
			for _, e := range entries {
				fmt.Printf("  %s (%s, fetched %s)\n", e.Name, humanize.Bytes(uint64(e.Size)), humanize.Time(e.FetchedAt))
			}
		}
	}

	return nil
}

// SourcesClean removes every cached wordlist
func SourcesClean(params SourcesParams) error {
	log := logger.New(params.LogLevel, nil)

	reg, err := registry.New(params.CacheDir, log)
	if err != nil {
		return fmt.Errorf("failed to open wordlist cache: %w", err)
	}

	if err := reg.Clear(); err != nil {
		return fmt.Errorf("failed to clear wordlist cache: %w", err)
	}

	log.Info().Msg("Wordlist cache cleared")
	fmt.Println("✓ Wordlist cache cleared")
	return nil
}
