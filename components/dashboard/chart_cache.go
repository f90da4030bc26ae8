package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RenderCache memoizes rendered chart HTML.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is a TTL cache for rendered charts backed by go-cache.
type ChartCache struct {
	ttl   time.Duration
	store *gocache.Cache
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	c := &ChartCache{ttl: ttl}
	if ttl > 0 {
		c.store = gocache.New(ttl, 2*ttl)
	}
	return c
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c != nil && c.store != nil {
		if html, ok := c.store.Get(key); ok {
			return html.(string), nil
		}
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	if c != nil && c.store != nil {
		c.store.SetDefault(key, html)
	}
	return html, nil
}

// Flush drops every cached chart.
func (c *ChartCache) Flush() {
	if c != nil && c.store != nil {
		c.store.Flush()
	}
}

// hashOf returns a deterministic hash for any JSON encodable value.
func hashOf(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
