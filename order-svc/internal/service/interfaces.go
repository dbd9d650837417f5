package service

import (
	"context"

	"loveplanet/order-svc/internal/domain"
)

type TemplateRepository interface {
	ListActiveTemplates(ctx context.Context) ([]domain.Template, error)
	GetTemplate(ctx context.Context, id int) (*domain.Template, error)
}

type VoucherRepository interface {
	// FindApplicableVoucher returns the voucher only if it is active,
	// unexpired and under its usage cap.
	FindApplicableVoucher(ctx context.Context, code string) (*domain.Voucher, error)
}

type OrderRepository interface {
	SiteNameExists(ctx context.Context, name string) (bool, error)
	// CreateOrder runs the whole order pipeline in one transaction:
	// voucher redemption, site upsert keyed by qr_name, order insert.
	CreateOrder(ctx context.Context, params domain.CreateOrderParams) (*domain.Order, *domain.Site, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	GetSiteByName(ctx context.Context, name string) (*domain.Site, *domain.Template, error)
}

// SiteCacheInvalidator drops the dispatch cache entry for a site so that a
// re-submitted order is visible on the subdomain without waiting out the TTL.
type SiteCacheInvalidator interface {
	Invalidate(ctx context.Context, qrName string) error
}

type TemplateServiceInterface interface {
	List(ctx context.Context) ([]domain.Template, error)
	Get(ctx context.Context, id int) (*domain.Template, error)
}

type VoucherServiceInterface interface {
	Validate(ctx context.Context, code string) (*domain.Voucher, error)
}

type OrderServiceInterface interface {
	CheckName(ctx context.Context, name string) (*NameAvailability, error)
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, *domain.Site, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	GetSite(ctx context.Context, name string) (*domain.Site, *domain.Template, error)
}

var _ TemplateServiceInterface = (*TemplateService)(nil)
var _ VoucherServiceInterface = (*VoucherService)(nil)
var _ OrderServiceInterface = (*OrderService)(nil)
