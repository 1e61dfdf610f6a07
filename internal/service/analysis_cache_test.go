package service

import (
	"testing"
	"time"

	"portfoliopulse/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_resultCache(t *testing.T) {
	now := time.Now()
	cache := newResultCache(30 * time.Minute)
	cache.now = func() time.Time { return now }

	result := &domain.AnalysisResult{CycleID: "c1", State: domain.StateOK}

	t.Run("miss on empty cache", func(t *testing.T) {
		_, ok := cache.get("key-1")
		require.False(t, ok)
	})

	t.Run("hit within ttl on the same key", func(t *testing.T) {
		cache.set("key-1", result)
		got, ok := cache.get("key-1")
		require.True(t, ok)
		require.Same(t, result, got)
	})

	t.Run("miss on a different key", func(t *testing.T) {
		_, ok := cache.get("key-2")
		require.False(t, ok)
	})

	t.Run("miss after expiry", func(t *testing.T) {
		now = now.Add(31 * time.Minute)
		_, ok := cache.get("key-1")
		require.False(t, ok)
	})

	t.Run("miss after invalidate", func(t *testing.T) {
		now = now.Add(-31 * time.Minute)
		cache.set("key-1", result)
		cache.invalidate()
		_, ok := cache.get("key-1")
		require.False(t, ok)
	})
}
