package store

import (
	"strconv"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/yussufhh/Novella/internal/model"
)

// PropertyCache is an in-process read cache for public property-detail
// projections. Entries expire after the configured TTL and are dropped
// eagerly whenever the listing mutates.
type PropertyCache struct {
	cache *ccache.Cache[*model.PropertyDetail]
	ttl   time.Duration
}

// NewPropertyCache builds a cache holding at most maxSize projections.
func NewPropertyCache(maxSize int64, ttl time.Duration) *PropertyCache {
	return &PropertyCache{
		cache: ccache.New(ccache.Configure[*model.PropertyDetail]().MaxSize(maxSize)),
		ttl:   ttl,
	}
}

func cacheKey(id uint) string {
	return "property:" + strconv.FormatUint(uint64(id), 10)
}

func (c *PropertyCache) Get(id uint) *model.PropertyDetail {
	item := c.cache.Get(cacheKey(id))
	if item == nil || item.Expired() {
		return nil
	}
	return item.Value()
}

func (c *PropertyCache) Set(id uint, detail *model.PropertyDetail) {
	c.cache.Set(cacheKey(id), detail, c.ttl)
}

func (c *PropertyCache) Delete(id uint) {
	c.cache.Delete(cacheKey(id))
}
