package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uberswe/domainRadar/pkg/util"
)

// URLFetcher is a Fetcher bound to a single address
type URLFetcher interface {
	Fetcher
	URL() string
}

// Entry describes where the text of one list came from
type Entry struct {
	URL        string
	Path       string
	Text       string
	Downloaded bool // fetched during this call
	Stale      bool // download failed, an expired cached copy was used
}

// Cache keeps downloaded lists on disk
type Cache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// NewCache creates a cache rooted at dir. A non-positive maxAge uses util.DefaultCacheMaxAge.
func NewCache(dir string, maxAge time.Duration) *Cache {
	if maxAge <= 0 {
		maxAge = util.DefaultCacheMaxAge
	}
	return &Cache{dir: dir, maxAge: maxAge, now: time.Now}
}

// Path returns the cache file used for url
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, path.Base(url))
}

// Fetch returns the list behind f, downloading it when the cached copy is
// missing, expired, or refresh is set. If the download fails but a cached
// copy exists, the cached copy is returned and marked stale.
func (c *Cache) Fetch(ctx context.Context, f URLFetcher, refresh bool) (Entry, error) {
	url := f.URL()
	entry := Entry{URL: url, Path: c.Path(url)}

	cached, modTime, readErr := readCached(entry.Path)
	if readErr == nil && !refresh && util.CacheFresh(modTime, c.now(), c.maxAge) {
		log.Info().Str("url", url).Str("file", entry.Path).Time("cached_at", modTime).Msg("Using cached domain list")
		entry.Text = cached
		return entry, nil
	}

	log.Info().Str("url", url).Msg("Downloading domain list")
	text, err := f.Fetch(ctx)
	if err != nil {
		if readErr == nil {
			log.Warn().Err(err).Str("url", url).Str("file", entry.Path).Msg("Download failed, using stale cached list")
			entry.Text = cached
			entry.Stale = true
			return entry, nil
		}
		return entry, err
	}

	entry.Text = text
	entry.Downloaded = true

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		log.Error().Err(err).Str("dir", c.dir).Msg("Failed to create cache directory")
		return entry, nil
	}
	if err := os.WriteFile(entry.Path, []byte(text), 0644); err != nil {
		log.Error().Err(err).Str("file", entry.Path).Msg("Failed to save domain list to cache")
		return entry, nil
	}
	log.Info().Str("url", url).Str("file", entry.Path).Msg("Domain list cached")
	return entry, nil
}

func readCached(name string) (string, time.Time, error) {
	info, err := os.Stat(name)
	if err != nil {
		return "", time.Time{}, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read cached list: %w", err)
	}
	return string(data), info.ModTime(), nil
}
