package cli

import (
	"fmt"

	"github.com/compadre-sh/compadre/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	CacheDir string
}

// Status displays the current Compadre configuration status
func Status(params StatusParams) error {
	data, err := status.CollectAll(params.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	fmt.Println(status.Render(data))

	return nil
}
