// Package cache implements a file-based cache with TTL support, used to
// keep fetched pages between crawl runs so re-runs do not re-hit the
// source site.
package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// PageCache stores fetched HTML documents keyed by ticker.
type PageCache struct {
	cacheDir string
	ttl      time.Duration
	logger   *logrus.Logger
}

// pageEntry is one cached page with its expiry metadata.
type pageEntry struct {
	Ticker    string    `json:"ticker"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewPageCache creates a page cache rooted at cacheDir.
func NewPageCache(cacheDir string, ttl time.Duration) *PageCache {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logger.Errorf("Failed to create cache directory %s: %v", cacheDir, err)
	}

	return &PageCache{
		cacheDir: cacheDir,
		ttl:      ttl,
		logger:   logger,
	}
}

// entryPath returns the cache file for a ticker. The md5 keeps filenames
// uniform regardless of what characters a ticker contains.
func (pc *PageCache) entryPath(ticker string) string {
	hash := md5.Sum([]byte("page_" + ticker))
	return filepath.Join(pc.cacheDir, fmt.Sprintf("page_%x.json", hash))
}

// Set caches a fetched page for the configured TTL.
func (pc *PageCache) Set(ticker, html string) error {
	now := time.Now()
	entry := pageEntry{
		Ticker:    ticker,
		HTML:      html,
		CreatedAt: now,
		ExpiresAt: now.Add(pc.ttl),
	}

	path := pc.entryPath(ticker)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	pc.logger.Debugf("Cached page for %s (expires: %s)", ticker, entry.ExpiresAt.Format(time.RFC3339))
	return nil
}

// Get returns the cached page for a ticker when it exists and has not
// expired. Corrupt and expired entries are removed.
func (pc *PageCache) Get(ticker string) (string, bool, error) {
	path := pc.entryPath(ticker)

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to open cache file %s: %w", path, err)
	}
	defer file.Close()

	var entry pageEntry
	if err := json.NewDecoder(file).Decode(&entry); err != nil {
		pc.logger.Warnf("Failed to decode cache file %s, removing: %v", path, err)
		os.Remove(path)
		return "", false, nil
	}

	if time.Now().After(entry.ExpiresAt) {
		pc.logger.Debugf("Cache expired for %s", ticker)
		os.Remove(path)
		return "", false, nil
	}

	pc.logger.Debugf("Cache hit for %s (created: %s)", ticker, entry.CreatedAt.Format(time.RFC3339))
	return entry.HTML, true, nil
}

// Invalidate removes the cached page for a ticker.
func (pc *PageCache) Invalidate(ticker string) error {
	path := pc.entryPath(ticker)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file %s: %w", path, err)
	}
	return nil
}

// CleanExpired removes every expired entry under the cache directory.
func (pc *PageCache) CleanExpired() error {
	entries, err := os.ReadDir(pc.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	now := time.Now()
	removed := 0

	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(pc.cacheDir, dirEntry.Name())
		file, err := os.Open(path)
		if err != nil {
			continue
		}

		var entry pageEntry
		err = json.NewDecoder(file).Decode(&entry)
		file.Close()

		if err != nil || now.After(entry.ExpiresAt) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		pc.logger.Infof("Cleaned %d expired cache entries", removed)
	}
	return nil
}
