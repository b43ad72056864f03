package fflogs

import (
	"time"

	"github.com/rs/zerolog/log"
)

type cacheEntry struct {
	Value       any
	Expiration  time.Time
	AccessCount int
	OriginalTTL time.Duration
}

func (c *Client) getFromCache(key string) (any, bool) {
	if c.cfg.CacheTTL <= 0 {
		return nil, false
	}

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Trace().Str("key", key).Msg("Cache miss")
		return nil, false
	}

	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		log.Trace().Str("key", key).Msg("Cache entry expired")
		return nil, false
	}
	log.Trace().Str("key", key).Msg("Cache hit")

	// Sliding window extension
	if entry.AccessCount < 6 {
		entry.Expiration = time.Now().Add(entry.OriginalTTL)
		entry.AccessCount++
	}

	return entry.Value, true
}

func (c *Client) addToCache(key string, value any) {
	ttl := c.cfg.CacheTTL
	if ttl <= 0 {
		return
	}

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	now := time.Now()
	for k, entry := range c.cache {
		if now.After(entry.Expiration) {
			delete(c.cache, k)
		}
	}

	c.cache[key] = &cacheEntry{
		Value:       value,
		Expiration:  now.Add(ttl),
		OriginalTTL: ttl,
		AccessCount: 1,
	}
}
