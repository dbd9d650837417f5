package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loveplanet/site-svc/internal/domain"
)

var ErrSiteNotFound = errors.New("site not found")

type SiteRepository interface {
	GetSiteByName(ctx context.Context, name string) (*domain.Site, error)
}

type SiteCache interface {
	Get(ctx context.Context, name string) (*domain.Site, error)
	Set(ctx context.Context, site *domain.Site) error
}

type SiteServiceInterface interface {
	Load(ctx context.Context, name string) (*domain.Site, error)
}

// SiteService loads site records cache-aside: Redis first, Postgres on miss.
// Cache failures are non-fatal; the database is the source of truth.
type SiteService struct {
	repo  SiteRepository
	cache SiteCache
}

func NewSiteService(repo SiteRepository, cache SiteCache) *SiteService {
	return &SiteService{repo: repo, cache: cache}
}

func (s *SiteService) Load(ctx context.Context, name string) (*domain.Site, error) {
	if s.cache != nil {
		if site, err := s.cache.Get(ctx, name); err == nil && site != nil {
			return site, nil
		}
	}

	site, err := s.repo.GetSiteByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("load site %q: %w", name, err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, site)
	}
	return site, nil
}

var _ SiteServiceInterface = (*SiteService)(nil)
