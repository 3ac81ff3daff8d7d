package cli

import (
	"fmt"

	"github.com/compadre-sh/compadre/internal/registry"
)

// UpdateParams contains parameters for the Update command
type UpdateParams struct {
	CacheDir string
	LogLevel string
}

// Update re-downloads every configured url source, ignoring cache
// freshness. Conditions are not consulted: an explicit update also
// refreshes sources that are currently gated off.
func Update(params UpdateParams) error {
	merged, _, err := loadMergedConfig()
	if err != nil {
		return err
	}
	log := buildLogger(params.LogLevel, merged)

	total := 0
	for _, src := range merged.Sources {
		if src.URL != "" {
			total++
		}
	}
	if total == 0 {
		fmt.Println("No url sources configured")
		return nil
	}

	reg, err := registry.New(params.CacheDir, log)
	if err != nil {
		return fmt.Errorf("failed to open wordlist cache: %w", err)
	}

	failed := 0
	for _, src := range merged.Sources {
		if src.URL == "" {
			continue
		}
		if _, err := reg.Refresh(src.Name, src.URL, src.SHA256); err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", src.Name, err)
			continue
		}
		fmt.Printf("✓ %s updated\n", src.Name)
	}

	if failed > 0 {
		return fmt.Errorf("failed to update %d of %d url source(s)", failed, total)
	}
	return nil
}
