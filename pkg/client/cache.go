package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// Cache keys
const (
	KeyApplications = "applications"
	KeyCountries    = "countries"
)

// CacheManager keeps JSON snapshots of backend responses on disk. Expired
// entries stay on disk so they can be served as a stale fallback until
// CleanExpired or Clear removes them.
type CacheManager struct {
	cacheDir   string
	defaultTTL time.Duration
	now        func() time.Time
}

// CacheEntry represents a cached item with metadata
type CacheEntry struct {
	Key         string          `json:"key"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	AccessCount int             `json:"access_count"`
	LastAccess  time.Time       `json:"last_access"`
}

// CacheStats contains cache statistics
type CacheStats struct {
	TotalEntries   int           `json:"total_entries"`
	TotalSize      int64         `json:"total_size"`
	HitRate        float64       `json:"hit_rate"`
	OldestEntry    time.Time     `json:"oldest_entry"`
	NewestEntry    time.Time     `json:"newest_entry"`
	ExpiredEntries int           `json:"expired_entries"`
	CacheDir       string        `json:"cache_dir"`
	DefaultTTL     time.Duration `json:"default_ttl"`
}

// NewCacheManager creates a new cache manager
func NewCacheManager(cacheDir string, ttl time.Duration) *CacheManager {
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "connhub-cache")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CacheManager{
		cacheDir:   cacheDir,
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// Dir returns the cache directory
func (c *CacheManager) Dir() string { return c.cacheDir }

// Get decodes a fresh entry into target. It reports false for a missing
// or expired entry.
func (c *CacheManager) Get(key string, target interface{}) (bool, error) {
	fresh, found, err := c.load(key, target)
	if err != nil || !found {
		return false, err
	}
	return fresh, nil
}

// GetAllowStale decodes an entry into target even when it expired. The
// second result reports whether the entry was stale.
func (c *CacheManager) GetAllowStale(key string, target interface{}) (found, stale bool, err error) {
	fresh, found, err := c.load(key, target)
	if err != nil || !found {
		return false, false, err
	}
	return true, !fresh, nil
}

func (c *CacheManager) load(key string, target interface{}) (fresh, found bool, err error) {
	cachePath := c.getCachePath(key)
	entry, err := c.loadCacheEntry(cachePath)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	now := c.now()
	fresh = !now.After(entry.ExpiresAt)
	if fresh {
		entry.AccessCount++
		entry.LastAccess = now
		_ = c.saveCacheEntry(cachePath, entry) // best effort
	}

	if err := json.Unmarshal(entry.Data, target); err != nil {
		return false, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return fresh, true, nil
}

// Set stores an item in cache
func (c *CacheManager) Set(key string, data interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	now := c.now()
	return c.saveCacheEntry(c.getCachePath(key), &CacheEntry{
		Key:        key,
		Data:       raw,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		LastAccess: now,
	})
}

// Delete removes an item from cache
func (c *CacheManager) Delete(key string) error {
	err := os.Remove(c.getCachePath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cache entries
func (c *CacheManager) Clear() (int, error) {
	removed := 0
	err := c.eachEntry(func(path string, _ *CacheEntry) error {
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// CleanExpired removes expired cache entries
func (c *CacheManager) CleanExpired() (int, error) {
	now := c.now()
	removed := 0
	err := c.eachEntry(func(path string, e *CacheEntry) error {
		if !now.After(e.ExpiresAt) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// GetStats returns cache statistics
func (c *CacheManager) GetStats() (*CacheStats, error) {
	stats := &CacheStats{
		CacheDir:   c.cacheDir,
		DefaultTTL: c.defaultTTL,
	}
	now := c.now()
	hits, accesses := 0, 0

	err := c.eachEntry(func(path string, e *CacheEntry) error {
		stats.TotalEntries++
		if info, err := os.Stat(path); err == nil {
			stats.TotalSize += info.Size()
		}
		if now.After(e.ExpiresAt) {
			stats.ExpiredEntries++
		}
		if stats.OldestEntry.IsZero() || e.CreatedAt.Before(stats.OldestEntry) {
			stats.OldestEntry = e.CreatedAt
		}
		if e.CreatedAt.After(stats.NewestEntry) {
			stats.NewestEntry = e.CreatedAt
		}
		hits += e.AccessCount
		accesses += e.AccessCount + 1 // +1 for the initial write
		return nil
	})
	if err != nil {
		return nil, err
	}
	if accesses > 0 {
		stats.HitRate = float64(hits) / float64(accesses)
	}
	return stats, nil
}

// WriteStats prints formatted cache statistics
func (c *CacheManager) WriteStats(w io.Writer) error {
	stats, err := c.GetStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Cache Statistics:")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "   Directory: %s\n", stats.CacheDir)
	fmt.Fprintf(w, "   Total entries: %d\n", stats.TotalEntries)
	fmt.Fprintf(w, "   Total size: %s\n", humanize.Bytes(uint64(stats.TotalSize)))
	fmt.Fprintf(w, "   Default TTL: %v\n", stats.DefaultTTL)

	if stats.TotalEntries > 0 {
		fmt.Fprintf(w, "   Hit rate: %.1f%%\n", stats.HitRate*100)
		fmt.Fprintf(w, "   Expired entries: %d\n", stats.ExpiredEntries)
		fmt.Fprintf(w, "   Oldest entry: %s\n", humanize.Time(stats.OldestEntry))
		fmt.Fprintf(w, "   Newest entry: %s\n", humanize.Time(stats.NewestEntry))
	}
	return nil
}

// GetApplications returns the cached catalog. stale reports an expired
// snapshot, returned only when allowStale is set.
func (c *CacheManager) GetApplications(allowStale bool) (apps []models.Application, stale bool, err error) {
	if !allowStale {
		found, err := c.Get(KeyApplications, &apps)
		if err != nil || !found {
			return nil, false, err
		}
		return apps, false, nil
	}
	found, stale, err := c.GetAllowStale(KeyApplications, &apps)
	if err != nil || !found {
		return nil, false, err
	}
	return apps, stale, nil
}

// SetApplications stores the catalog
func (c *CacheManager) SetApplications(apps []models.Application) error {
	return c.Set(KeyApplications, apps, 0)
}

func (c *CacheManager) eachEntry(fn func(path string, e *CacheEntry) error) error {
	entries, err := os.ReadDir(c.cacheDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".cache") {
			continue
		}
		path := filepath.Join(c.cacheDir, de.Name())
		e, err := c.loadCacheEntry(path)
		if err != nil {
			continue
		}
		if err := fn(path, e); err != nil {
			return err
		}
	}
	return nil
}

// getCachePath generates cache file path for a key
func (c *CacheManager) getCachePath(key string) string {
	safeKey := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(c.cacheDir, safeKey+".cache")
}

func (c *CacheManager) loadCacheEntry(cachePath string) (*CacheEntry, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *CacheManager) saveCacheEntry(cachePath string, entry *CacheEntry) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath, data, 0644)
}
