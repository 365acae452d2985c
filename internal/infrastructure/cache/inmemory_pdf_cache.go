package cache

import (
	"context"
	"sync"
	"time"
)

// pdfEntry represents a cached PDF with expiration
type pdfEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryPDFCache implements PDFCache using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemoryPDFCache struct {
	mu        sync.RWMutex
	entries   map[string]pdfEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryPDFCache creates a new in-memory PDF cache
// It starts a background goroutine to clean up expired entries
func NewInMemoryPDFCache() *InMemoryPDFCache {
	c := &InMemoryPDFCache{
		entries:  make(map[string]pdfEntry),
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached PDF bytes for a key, or false when absent
func (c *InMemoryPDFCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, false, nil
	}

	// Check if entry has expired
	if time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	return e.data, true, nil
}

// Set stores the PDF bytes under a key with a TTL
func (c *InMemoryPDFCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = pdfEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate removes a cached entry
func (c *InMemoryPDFCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (c *InMemoryPDFCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryPDFCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryPDFCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryPDFCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryPDFCache implements PDFCache
var _ PDFCache = (*InMemoryPDFCache)(nil)
