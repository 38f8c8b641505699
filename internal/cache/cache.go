// Package cache memoizes normalization results. Normalization is
// deterministic over its input, so a cached rewrite is as good as a fresh
// one when the rule table has not changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ezchajim/azilut/internal/model"
)

// Key derives the cache key for a text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "azilut:v1:" + hex.EncodeToString(hash[:])
}

// Normalizer is the rewrite operation being memoized.
type Normalizer interface {
	Normalize(text string) (string, []model.ChangeRecord)
}

type entry struct {
	rewritten string
	changes   []model.ChangeRecord
}

// CachedNormalizer wraps a normalizer with an in-memory TTL cache.
type CachedNormalizer struct {
	inner Normalizer
	cache *gocache.Cache
}

// NewCachedNormalizer creates the caching wrapper.
func NewCachedNormalizer(inner Normalizer, ttl, cleanupInterval time.Duration) *CachedNormalizer {
	return &CachedNormalizer{
		inner: inner,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Normalize returns the cached result when available. Change records are
// copied on the way out so callers cannot mutate the cached audit log.
func (c *CachedNormalizer) Normalize(text string) (string, []model.ChangeRecord) {
	key := Key(text)
	if val, found := c.cache.Get(key); found {
		cached := val.(entry)
		return cached.rewritten, copyChanges(cached.changes)
	}

	rewritten, changes := c.inner.Normalize(text)
	c.cache.Set(key, entry{rewritten: rewritten, changes: copyChanges(changes)}, gocache.DefaultExpiration)
	return rewritten, changes
}

// Flush empties the cache, e.g. after a rule table reload.
func (c *CachedNormalizer) Flush() {
	c.cache.Flush()
}

func copyChanges(changes []model.ChangeRecord) []model.ChangeRecord {
	if changes == nil {
		return nil
	}
	out := make([]model.ChangeRecord, len(changes))
	copy(out, changes)
	return out
}
