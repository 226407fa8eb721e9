package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"grid-dispatch/internal/config"
)

// cacheEntry holds loaded inputs with an expiry.
type cacheEntry struct {
	inputs    *Inputs
	expiresAt time.Time
}

// InputCache keeps parsed CSV inputs in memory so the API server does not
// re-read multi-year demand files on every request. Entries are keyed by the
// input paths, so pointing a scenario at different files misses the cache.
type InputCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

func NewInputCache(ttl time.Duration) *InputCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &InputCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Load returns cached inputs for the config's paths, reading the files on a
// miss.
func (c *InputCache) Load(cfg *config.Config) (*Inputs, error) {
	key := cacheKey(cfg.Paths)

	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.inputs, nil
	}

	inputs, err := LoadInputs(cfg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.store[key] = &cacheEntry{inputs: inputs, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return inputs, nil
}

// Clear removes all entries.
func (c *InputCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// cleanup periodically removes expired entries.
func (c *InputCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

func cacheKey(p config.PathsConfig) string {
	keyStr := fmt.Sprintf("%s:%s:%s:%s:%s",
		p.Demand, p.Plants, p.Lines, p.FuelCosts, p.FuelConstraints)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
