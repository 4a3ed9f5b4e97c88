package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached definition shape changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedDefEntry wraps a definition with version metadata for cache invalidation
type cachedDefEntry struct {
	Version string
	Def     *StaticDef
}

// CachedCatalog fronts any Catalog with an in-memory LRU so hot item ids
// (stack merges, repeated factory calls) skip the backing lookup.
type CachedCatalog struct {
	inner Catalog
	lru   *expirable.LRU[string, *cachedDefEntry]
}

// NewCachedCatalog wraps inner with an LRU of the given size and TTL
func NewCachedCatalog(inner Catalog, size int, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner: inner,
		lru:   expirable.NewLRU[string, *cachedDefEntry](size, nil, ttl),
	}
}

// GetDefinition resolves from the cache first, falling back to the inner
// catalog. Lookup failures are not cached; a missing id stays a live query.
func (c *CachedCatalog) GetDefinition(ctx context.Context, id string) (*StaticDef, error) {
	if entry, found := c.lru.Get(id); found {
		if entry.Version == CacheSchemaVersion {
			return entry.Def, nil
		}
		c.lru.Remove(id)
	}

	def, err := c.inner.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	c.lru.Add(id, &cachedDefEntry{Version: CacheSchemaVersion, Def: def})
	return def, nil
}

// Invalidate removes a definition from the cache, used after config reload
func (c *CachedCatalog) Invalidate(id string) {
	c.lru.Remove(id)
}

// Clear removes all cached definitions
func (c *CachedCatalog) Clear() {
	c.lru.Purge()
}
