package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"loveplanet/payment-svc/internal/domain"
	"loveplanet/payment-svc/internal/gateway"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPending    = errors.New("order is not awaiting payment")
	ErrAmountMismatch     = errors.New("amount does not match the order total")
	ErrUnknownMethod      = errors.New("unknown payment method")
	ErrGatewayUnavailable = gateway.ErrUnavailable
)

// DefaultPaymentWindow is how long a checkout may stay unresolved before the
// coordinator independently resolves it to TIMEOUT.
const DefaultPaymentWindow = 5 * time.Minute

type CreateSessionRequest struct {
	OrderCode int64  `json:"orderCode"`
	Amount    int64  `json:"amount"`
	TipUSD    int64  `json:"tipUsd"`
	UID       string `json:"uid"`
	Method    string `json:"paymentMethod"`
	Email     string `json:"customerEmail"`
}

type SessionResult struct {
	CheckoutURL     string
	OrderCode       int64
	IsExistingOrder bool
}

// Coordinator owns the checkout lifecycle: it creates gateway sessions,
// reuses live ones for retried attempts, and arms a per-order timeout that
// fires the TIMEOUT transition through the same event pipeline the gateway
// callbacks use.
type Coordinator struct {
	orders    OrderStore
	sessions  SessionStore
	gateways  map[string]gateway.Gateway
	publisher StatusPublisher
	window    time.Duration

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func NewCoordinator(orders OrderStore, sessions SessionStore, gateways map[string]gateway.Gateway, publisher StatusPublisher, window time.Duration) *Coordinator {
	if window <= 0 {
		window = DefaultPaymentWindow
	}
	return &Coordinator{
		orders:    orders,
		sessions:  sessions,
		gateways:  gateways,
		publisher: publisher,
		window:    window,
		timers:    make(map[int64]*time.Timer),
	}
}

func (c *Coordinator) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResult, error) {
	order, err := c.orders.GetOrderByCode(ctx, req.OrderCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetch order %d: %w", req.OrderCode, err)
	}
	if order.Status != "pending" {
		return nil, ErrOrderNotPending
	}

	// A retried attempt for the same order reuses the live checkout page
	// instead of opening a duplicate gateway session. A leftover session for
	// a different order the customer abandoned is ignored.
	if existing, err := c.sessions.FindByUID(ctx, req.UID); err == nil && existing != nil && existing.OrderCode == req.OrderCode {
		return &SessionResult{
			CheckoutURL:     existing.CheckoutURL,
			OrderCode:       existing.OrderCode,
			IsExistingOrder: true,
		}, nil
	}

	gw, ok := c.gateways[req.Method]
	if !ok {
		return nil, ErrUnknownMethod
	}

	amount, currency, err := c.chargeAmount(order, req)
	if err != nil {
		return nil, err
	}

	resp, err := gw.CreateCheckout(ctx, gateway.CheckoutRequest{
		OrderCode:   order.OrderCode,
		Amount:      amount,
		Currency:    currency,
		Description: "LovePlanet",
		BuyerEmail:  req.Email,
	})
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		SessionID:   uuid.New().String(),
		OrderCode:   order.OrderCode,
		UID:         req.UID,
		Method:      req.Method,
		Amount:      amount,
		Currency:    currency,
		CheckoutURL: resp.CheckoutURL,
		CreatedAt:   time.Now(),
	}
	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Printf("[payment-svc] save session for order %d: %v", order.OrderCode, err)
	}

	c.armTimeout(order.OrderCode)

	return &SessionResult{
		CheckoutURL: resp.CheckoutURL,
		OrderCode:   order.OrderCode,
	}, nil
}

// chargeAmount picks the gateway-facing amount. Domestic checkout charges
// the full VND total and rejects a client-submitted amount that disagrees
// with the stored order. International checkout charges the flat USD base
// fee plus the tip interpreted as USD.
func (c *Coordinator) chargeAmount(order *domain.Order, req CreateSessionRequest) (int64, string, error) {
	switch req.Method {
	case domain.MethodPayOS:
		if req.Amount != 0 && req.Amount != order.TotalAmount {
			return 0, "", ErrAmountMismatch
		}
		return order.TotalAmount, "VND", nil
	case domain.MethodPayPal:
		tip := req.TipUSD
		if tip < 0 {
			tip = 0
		}
		return domain.PayPalBasePriceUSD + tip, "USD", nil
	default:
		return 0, "", ErrUnknownMethod
	}
}

// Resolve is called when an order reaches a terminal state: disarm the
// timeout and drop the in-flight session.
func (c *Coordinator) Resolve(ctx context.Context, orderCode int64, uid string) {
	c.mu.Lock()
	if t, ok := c.timers[orderCode]; ok {
		t.Stop()
		delete(c.timers, orderCode)
	}
	c.mu.Unlock()

	if err := c.sessions.Delete(ctx, orderCode, uid); err != nil {
		log.Printf("[payment-svc] drop session for order %d: %v", orderCode, err)
	}
}

func (c *Coordinator) armTimeout(orderCode int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.timers[orderCode]; ok {
		return
	}
	c.timers[orderCode] = time.AfterFunc(c.window, func() {
		c.fireTimeout(orderCode)
	})
}

func (c *Coordinator) fireTimeout(orderCode int64) {
	c.mu.Lock()
	delete(c.timers, orderCode)
	c.mu.Unlock()

	log.Printf("[payment-svc] payment window expired for order %d", orderCode)
	err := c.publisher.PublishStatus(context.Background(), domain.StatusEvent{
		Type:      domain.EventPaymentStatus,
		OrderCode: orderCode,
		Status:    string(domain.StatusTimeout),
		Message:   "payment status not received in time",
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("[payment-svc] publish timeout for order %d: %v", orderCode, err)
	}
}
