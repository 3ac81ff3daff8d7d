// Package registry fetches remote wordlists for url completion sources
// and keeps verified local copies in the cache directory.
package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	cerrors "github.com/compadre-sh/compadre/internal/errors"
	"github.com/compadre-sh/compadre/internal/logger"
)

const (
	// WordlistTTL is how long a fetched wordlist stays fresh before re-downloading
	WordlistTTL = 7 * 24 * time.Hour
	// MaxWordlistSize is the maximum size for a downloaded wordlist (1MB)
	MaxWordlistSize = 1 * 1024 * 1024
)

// httpClient is the HTTP client used for downloads (can be overridden in tests)
var httpClient = http.DefaultClient

// Client fetches remote wordlists and keeps the local copies fresh
type Client struct {
	cacheDir string
	manifest *Manifest
	log      *logger.Logger
}

// New creates a registry client storing wordlists under cacheDir
func New(cacheDir string, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Discard()
	}

	manifest, err := newManifest(filepath.Join(cacheDir, "sources.json"))
	if err != nil {
		return nil, err
	}

	return &Client{
		cacheDir: cacheDir,
		manifest: manifest,
		log:      log,
	}, nil
}

// WordlistPath returns the local cache path for a named url source
func (c *Client) WordlistPath(name string) string {
	return filepath.Join(c.cacheDir, "wordlists", name+".yml")
}

// Fetch returns the local path of the wordlist for a url source,
// downloading it if the cached copy is missing, expired or no longer
// matches a pinned checksum.
func (c *Client) Fetch(name, rawURL, pinned string) (string, error) {
	path := c.WordlistPath(name)
	if c.isFresh(path, name, pinned) {
		return path, nil
	}
	return c.download(name, rawURL, pinned)
}

// Refresh re-downloads a wordlist regardless of cache freshness
func (c *Client) Refresh(name, rawURL, pinned string) (string, error) {
	return c.download(name, rawURL, pinned)
}

// Entries lists fetched wordlists for status display
func (c *Client) Entries() []*Entry {
	return c.manifest.Entries()
}

// Clear removes all fetched wordlists and their manifest entries
func (c *Client) Clear() error {
	if err := os.RemoveAll(filepath.Join(c.cacheDir, "wordlists")); err != nil {
		return err
	}
	return c.manifest.Clear()
}

// isFresh reports whether the cached copy can be served without a download
func (c *Client) isFresh(path, name, pinned string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if time.Since(info.ModTime()) >= WordlistTTL {
		return false
	}
	return c.pinSatisfied(name, pinned)
}

// pinSatisfied reports whether the manifest entry matches a pinned checksum
func (c *Client) pinSatisfied(name, pinned string) bool {
	if pinned == "" {
		return true
	}
	entry, ok := c.manifest.Get(name)
	return ok && entry.SHA256 == pinned
}

func (c *Client) download(name, rawURL, pinned string) (string, error) {
	path := c.WordlistPath(name)

	if err := validateURL(rawURL); err != nil {
		return "", cerrors.NewRegistryError(rawURL, "invalid wordlist URL", err)
	}

	data, err := downloadWithSizeLimit(rawURL, MaxWordlistSize)
	if err != nil {
		// Serve the stale copy when the registry is unreachable
		if _, statErr := os.Stat(path); statErr == nil && c.pinSatisfied(name, pinned) {
			c.log.Warn().Str("source", name).Err(err).Msg("Download failed, using cached wordlist")
			return path, nil
		}
		return "", cerrors.NewRegistryError(rawURL, "failed to download wordlist", err)
	}

	hash := computeHash(data)
	if pinned != "" && hash != pinned {
		return "", cerrors.NewRegistryError(rawURL, fmt.Sprintf("checksum mismatch: expected %s, got %s", pinned, hash), nil)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	entry := &Entry{
		Name:      name,
		URL:       rawURL,
		SHA256:    hash,
		Size:      int64(len(data)),
		FetchedAt: time.Now(),
	}
	if err := c.manifest.Set(entry); err != nil {
		c.log.Warn().Str("source", name).Err(err).Msg("Failed to update source manifest")
	}

	c.log.Debug().Str("source", name).Str("url", rawURL).Int("bytes", len(data)).Msg("Fetched wordlist")
	return path, nil
}

// validateURL validates that a URL is fetchable
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use HTTP or HTTPS scheme, got: %s", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}

	return nil
}

// downloadWithSizeLimit downloads data with a size limit
func downloadWithSizeLimit(url string, maxSize int64) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download: HTTP %d", resp.StatusCode)
	}

	if resp.ContentLength > maxSize {
		return nil, fmt.Errorf("content too large: %d bytes (max %d)", resp.ContentLength, maxSize)
	}

	limitedReader := io.LimitReader(resp.Body, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("content too large: exceeds %d bytes", maxSize)
	}

	return data, nil
}

// computeHash computes SHA256 hash of data
func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
