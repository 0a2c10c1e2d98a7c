package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	mdvalidate "github.com/404Wolf/mdvalidate-sub001"
)

// documentInput represents the three ways a markdown document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a markdown file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a markdown document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline markdown content"`
}

// cacheEntry holds a cached document with LRU ordering and TTL expiry.
type cacheEntry struct {
	text      string
	insertAt  time.Time
	expiresAt time.Time
}

// documentCacheStore provides a session-scoped cache for loaded documents.
// File inputs are keyed by (absolutePath, modTime) and URL inputs by URL
// string. Inline content needs no loading and is never cached.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type documentCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var documentCache = &documentCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document. Expired entries are lazily removed.
func (c *documentCacheStore) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return "", false
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.text, true
	}
	return "", false
}

// putWithTTL stores a document with a specific TTL, evicting the oldest entry if at capacity.
func (c *documentCacheStore) putWithTTL(key, text string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{text: text, insertAt: now, expiresAt: now.Add(ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	// Evict oldest if at capacity.
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *documentCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *documentCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *documentCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *documentCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input should not be cached.
func makeCacheKey(d documentInput) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.URL != "":
		return fmt.Sprintf("url:%s", d.URL)
	default:
		return ""
	}
}

// resolve returns the document text from whichever input was provided,
// using the cache for file and URL inputs.
func (d documentInput) resolve(ctx context.Context) (string, error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.URL != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return "", fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	// Enforce inline content size limit.
	if d.Content != "" {
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return "", fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set MDVALIDATE_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return d.Content, nil
	}

	var key string
	ttl := cfg.CacheFileTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(d)
		if d.URL != "" {
			ttl = cfg.CacheURLTTL
		}
	}
	if key != "" {
		if text, ok := documentCache.get(key); ok {
			return text, nil
		}
	}

	var text string
	var err error
	if d.File != "" {
		text, err = readFile(d.File)
	} else {
		text, err = fetchURL(ctx, d.URL)
	}
	if err != nil {
		return "", err
	}

	// Cache the document for future calls (key is empty when caching is disabled).
	if key != "" {
		documentCache.putWithTTL(key, text, ttl)
	}
	return text, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading caller-named documents is the tool's purpose
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}

// fetchURL downloads a document, refusing private addresses unless they are
// explicitly allowed and bodies larger than the inline size limit.
func fetchURL(ctx context.Context, url string) (string, error) {
	client := http.DefaultClient
	if !cfg.AllowPrivateIPs {
		client = newSafeHTTPClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", mdvalidate.UserAgent())
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching url: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching url: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return "", fmt.Errorf("document at url exceeds maximum %d bytes", cfg.MaxInlineSize)
	}
	return string(data), nil
}
