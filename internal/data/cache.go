package data

import (
	"sync"
	"time"

	"battery-sizing/internal/backtest"

	"github.com/google/uuid"
)

// CacheEntry is a stored run result.
type CacheEntry struct {
	Result    *backtest.Result
	ExpiresAt time.Time
}

// RunCache keeps API run results in memory so their ledgers and charts can
// be fetched after the run request returned.
type RunCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewRunCache creates a cache whose entries live for ttl. A cleanup
// goroutine runs every interval until Close is called; interval <= 0
// disables it.
func NewRunCache(ttl, interval time.Duration) *RunCache {
	c := &RunCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if interval > 0 {
		go c.cleanup(interval)
	}
	return c
}

// Put stores a result under a fresh id and returns the id.
func (c *RunCache) Put(res *backtest.Result) string {
	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &CacheEntry{
		Result:    res,
		ExpiresAt: c.now().Add(c.ttl),
	}
	return id
}

// Get retrieves a result if present and not expired.
func (c *RunCache) Get(id string) (*backtest.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

func (c *RunCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *RunCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// Close stops the cleanup goroutine.
func (c *RunCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Prune drops expired entries and returns how many were removed.
func (c *RunCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
			n++
		}
	}
	return n
}

func (c *RunCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Prune()
		case <-c.stop:
			return
		}
	}
}
