package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"loveplanet/site-svc/internal/domain"
)

// SiteCache keeps resolved site rows in Redis so the dispatch hot path does
// not hit Postgres for every asset request. order-svc deletes the entry when
// a name is re-submitted; the TTL bounds staleness if that delete is missed.
type SiteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSiteCache(client *redis.Client, ttl time.Duration) *SiteCache {
	return &SiteCache{Client: client, TTL: ttl}
}

func (c *SiteCache) SiteKey(name string) string {
	return "site:" + name
}

func (c *SiteCache) Get(ctx context.Context, name string) (*domain.Site, error) {
	raw, err := c.Client.Get(ctx, c.SiteKey(name)).Bytes()
	if err != nil {
		return nil, err
	}
	var site domain.Site
	if err := json.Unmarshal(raw, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (c *SiteCache) Set(ctx context.Context, site *domain.Site) error {
	raw, err := json.Marshal(site)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.SiteKey(site.QRName), raw, c.TTL).Err()
}
