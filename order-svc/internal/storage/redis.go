package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SiteCacheInvalidator deletes dispatch cache entries written by site-svc.
// Both services share one Redis, so dropping the key here makes a
// re-submitted site visible on the subdomain immediately instead of after
// the cache TTL.
type SiteCacheInvalidator struct {
	Client *redis.Client
}

func NewSiteCacheInvalidator(client *redis.Client) *SiteCacheInvalidator {
	return &SiteCacheInvalidator{Client: client}
}

// Invalidate removes the cached row for a qr name. The key layout must stay
// in sync with the SiteKey format used by site-svc.
func (c *SiteCacheInvalidator) Invalidate(ctx context.Context, qrName string) error {
	return c.Client.Del(ctx, "site:"+qrName).Err()
}
