package catalog

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/goliatone/go-spa-dashboard/components/analytics"
)

const catalogCacheKey = "catalog"

// CachedClient memoizes catalog snapshots for a TTL.
type CachedClient struct {
	next  CatalogClient
	cache *gocache.Cache
}

// NewCachedClient wraps next. A non-positive ttl defaults to one minute.
func NewCachedClient(next CatalogClient, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedClient{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// FetchCatalog returns the cached snapshot or loads a fresh one. Failed
// loads are not cached.
func (c *CachedClient) FetchCatalog(ctx context.Context) (analytics.Catalog, error) {
	if cached, ok := c.cache.Get(catalogCacheKey); ok {
		if data, ok := cached.(analytics.Catalog); ok {
			return cloneCatalog(data), nil
		}
	}
	data, err := c.next.FetchCatalog(ctx)
	if err != nil {
		return analytics.Catalog{}, err
	}
	c.cache.Set(catalogCacheKey, cloneCatalog(data), gocache.DefaultExpiration)
	return data, nil
}

// Invalidate drops the cached snapshot.
func (c *CachedClient) Invalidate() {
	c.cache.Delete(catalogCacheKey)
}
