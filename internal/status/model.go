package status

import (
	"time"

	"github.com/compadre-sh/compadre/internal/config"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// System & Installation
	Shell         string
	HookInstalled bool
	RCFile        string
	CacheDir      string

	// Configuration
	GlobalConfig *config.GlobalInfo
	LocalConfigs []config.FileInfo

	// Engine settings
	Transforms []string
	Exclude    []string
	Inflect    bool
	LogLevel   string
	Flags      []string

	// Sources
	Sources []SourceStatus

	// Wordlist cache
	Wordlists      []WordlistInfo
	CacheTotalSize int64
}

// SourceStatus describes one configured source and its resolution state
type SourceStatus struct {
	config.SourceInfo

	Active    bool
	Reason    string // why the source is inactive
	FileCount int
}

// WordlistInfo describes one cached remote wordlist
type WordlistInfo struct {
	Name      string
	Size      int64
	FetchedAt time.Time
}
