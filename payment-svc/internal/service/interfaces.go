package service

import (
	"context"

	"loveplanet/payment-svc/internal/domain"
)

type OrderStore interface {
	GetOrderByCode(ctx context.Context, orderCode int64) (*domain.Order, error)
	ApplyStatus(ctx context.Context, orderCode int64, status string) (applied bool, current string, err error)
}

type SessionStore interface {
	Save(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, orderCode int64) (*domain.Session, error)
	FindByUID(ctx context.Context, uid string) (*domain.Session, error)
	Delete(ctx context.Context, orderCode int64, uid string) error
}

type StatusPublisher interface {
	PublishStatus(ctx context.Context, ev domain.StatusEvent) error
}

// Notifier pushes a status event to the clients watching an order room.
type Notifier interface {
	Broadcast(room string, event string, payload interface{})
}

type CoordinatorInterface interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResult, error)
	Resolve(ctx context.Context, orderCode int64, uid string)
}

var _ CoordinatorInterface = (*Coordinator)(nil)
