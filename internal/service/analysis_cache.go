package service

import (
	"sync"
	"time"

	"portfoliopulse/internal/domain"
)

// resultCache holds the last completed pass for a given holdings-content +
// provider key. One entry is enough: a new sheet fingerprint or provider
// invalidates the old pass anyway.
type resultCache struct {
	mu        sync.Mutex
	key       string
	result    *domain.AnalysisResult
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl: ttl,
		now: time.Now,
	}
}

func (c *resultCache) get(key string) (*domain.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil || c.key != key || c.now().After(c.expiresAt) {
		return nil, false
	}
	return c.result, true
}

func (c *resultCache) set(key string, result *domain.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.result = result
	c.expiresAt = c.now().Add(c.ttl)
}

func (c *resultCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
}
