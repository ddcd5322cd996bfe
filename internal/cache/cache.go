// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package cache provides a thread-safe in-memory cache with TTL support,
// prefix wildcard invalidation and explicit sweeping. Expired entries are
// reclaimed lazily on Get and in bulk by Sweep, which the supervisor
// drives on a timer. The clock is injectable so expiry is deterministic
// under test.
package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry represents a cached item with expiration.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a snapshot of cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
	LastSweep time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	// maxEntries caps the entry count; 0 means unbounded.
	maxEntries int
	now        func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithMaxEntries caps the number of entries. When full, Set evicts the
// entry closest to expiry to make room.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// New creates a cache with the given default TTL. No background goroutine
// is started; callers schedule Sweep themselves.
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.stats.LastSweep = c.now()
	return c
}

// Get retrieves a value by key. Expired entries are removed on access and
// reported as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a Set may have refreshed it.
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEvictions(1)
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL, overwriting any existing
// entry for the key.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	now := c.now()

	c.mu.Lock()
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, replacing := c.entries[key]; !replacing {
			c.evictOneLocked(now)
		}
	}
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: now.Add(ttl),
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}

// evictOneLocked removes one entry to make room: an expired entry when
// one exists, otherwise the entry closest to expiry. Caller holds mu.
func (c *Cache) evictOneLocked(now time.Time) {
	victim := ""
	var victimExpiry time.Time
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			victim = key
			break
		}
		if victim == "" || entry.ExpiresAt.Before(victimExpiry) {
			victim = key
			victimExpiry = entry.ExpiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
		c.recordEvictions(1)
	}
}

// Delete removes a single entry. Safe to call for absent keys.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	if existed {
		c.stats.Evictions++
	}
	c.stats.TotalKeys = total
	c.statsMu.Unlock()
}

// Invalidate removes all entries matching the pattern. A pattern ending
// in '*' matches every key with that prefix; any other pattern matches
// exactly one key. Returns the number of entries removed.
func (c *Cache) Invalidate(pattern string) int {
	prefix, wildcard := strings.CutSuffix(pattern, "*")

	c.mu.Lock()
	removed := 0
	if wildcard {
		for key := range c.entries {
			if strings.HasPrefix(key, prefix) {
				delete(c.entries, key)
				removed++
			}
		}
	} else if _, ok := c.entries[pattern]; ok {
		delete(c.entries, pattern)
		removed = 1
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += int64(removed)
	c.stats.TotalKeys = total
	c.statsMu.Unlock()

	return removed
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.statsMu.Unlock()
}

// Sweep removes all expired entries and returns the number removed.
func (c *Cache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	evictions := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += int64(evictions)
	c.stats.TotalKeys = total
	c.stats.LastSweep = now
	c.statsMu.Unlock()

	return evictions
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns the hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *Cache) recordEvictions(n int64) {
	c.statsMu.Lock()
	c.stats.Evictions += n
	c.statsMu.Unlock()
}

// GenerateKey builds a deterministic cache key from an operation name and
// its parameters. Equal parameters always produce equal keys regardless
// of caller.
func GenerateKey(operation string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fall back to fmt when params cannot be serialized.
		data = []byte(fmt.Sprintf("%+v", params))
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", operation, sum[:16])
}
