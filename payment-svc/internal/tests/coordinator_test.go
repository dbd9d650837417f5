package tests

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loveplanet/payment-svc/internal/domain"
	"loveplanet/payment-svc/internal/gateway"
	"loveplanet/payment-svc/internal/mocks"
	"loveplanet/payment-svc/internal/service"
)

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:          7,
		OrderCode:   1755500000000,
		TotalAmount: 59000,
		TipAmount:   0,
		Status:      "pending",
	}
}

func newCoordinator(orders *mocks.OrderStore, sessions *mocks.SessionStore, gw *mocks.Gateway, publisher *mocks.StatusPublisher, window time.Duration) *service.Coordinator {
	gateways := map[string]gateway.Gateway{
		domain.MethodPayOS:  gw,
		domain.MethodPayPal: gw,
	}
	return service.NewCoordinator(orders, sessions, gateways, publisher, window)
}

func TestCoordinator_CreateSession_PayOS(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, int64(1755500000000)).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, "uid-1").Return(nil, nil).Once()
	sessions.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Once()

	gw := new(mocks.Gateway)
	gw.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(req gateway.CheckoutRequest) bool {
		return req.Amount == 59000 && req.Currency == "VND" && req.OrderCode == 1755500000000
	})).Return(&gateway.CheckoutResponse{CheckoutURL: "https://pay.example.com/x"}, nil).Once()

	coordinator := newCoordinator(orders, sessions, gw, new(mocks.StatusPublisher), time.Hour)

	result, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    59000,
		UID:       "uid-1",
		Method:    domain.MethodPayOS,
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/x", result.CheckoutURL)
	assert.False(t, result.IsExistingOrder)
	orders.AssertExpectations(t)
	gw.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestCoordinator_CreateSession_PayOSAmountMismatch(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, int64(1755500000000)).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, "uid-1").Return(nil, nil).Once()

	coordinator := newCoordinator(orders, sessions, new(mocks.Gateway), new(mocks.StatusPublisher), time.Hour)

	_, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    1000, // tampered client-side
		UID:       "uid-1",
		Method:    domain.MethodPayOS,
	})

	assert.ErrorIs(t, err, service.ErrAmountMismatch)
}

func TestCoordinator_CreateSession_PayPalChargesBasePlusTip(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, int64(1755500000000)).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, "uid-1").Return(nil, nil).Once()
	sessions.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	gw := new(mocks.Gateway)
	gw.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(req gateway.CheckoutRequest) bool {
		return req.Amount == 15 && req.Currency == "USD"
	})).Return(&gateway.CheckoutResponse{CheckoutURL: "https://paypal.example.com/x"}, nil).Once()

	coordinator := newCoordinator(orders, sessions, gw, new(mocks.StatusPublisher), time.Hour)

	result, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		TipUSD:    10,
		UID:       "uid-1",
		Method:    domain.MethodPayPal,
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://paypal.example.com/x", result.CheckoutURL)
	gw.AssertExpectations(t)
}

func TestCoordinator_CreateSession_ReusesExistingSession(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, int64(1755500000000)).Return(pendingOrder(), nil).Once()

	existing := &domain.Session{
		SessionID:   "sess-1",
		OrderCode:   1755500000000,
		UID:         "uid-1",
		CheckoutURL: "https://pay.example.com/old",
	}
	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, "uid-1").Return(existing, nil).Once()

	gw := new(mocks.Gateway)

	coordinator := newCoordinator(orders, sessions, gw, new(mocks.StatusPublisher), time.Hour)

	result, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    59000,
		UID:       "uid-1",
		Method:    domain.MethodPayOS,
	})

	assert.NoError(t, err)
	assert.True(t, result.IsExistingOrder)
	assert.Equal(t, "https://pay.example.com/old", result.CheckoutURL)
	assert.Equal(t, int64(1755500000000), result.OrderCode)
	gw.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
}

func TestCoordinator_CreateSession_IgnoresOtherOrderSession(t *testing.T) {
	// The customer abandoned an earlier order, ordered again and pays the
	// new one within the session TTL. The stale session must not hand them
	// the old order's checkout page.
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, int64(1755500000000)).Return(pendingOrder(), nil).Once()

	stale := &domain.Session{
		SessionID:   "sess-0",
		OrderCode:   1755400000000,
		UID:         "uid-1",
		CheckoutURL: "https://pay.example.com/abandoned",
	}
	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, "uid-1").Return(stale, nil).Once()
	sessions.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Once()

	gw := new(mocks.Gateway)
	gw.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(req gateway.CheckoutRequest) bool {
		return req.OrderCode == 1755500000000
	})).Return(&gateway.CheckoutResponse{CheckoutURL: "https://pay.example.com/fresh"}, nil).Once()

	coordinator := newCoordinator(orders, sessions, gw, new(mocks.StatusPublisher), time.Hour)

	result, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    59000,
		UID:       "uid-1",
		Method:    domain.MethodPayOS,
	})

	assert.NoError(t, err)
	assert.False(t, result.IsExistingOrder)
	assert.Equal(t, "https://pay.example.com/fresh", result.CheckoutURL)
	assert.Equal(t, int64(1755500000000), result.OrderCode)
	gw.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestCoordinator_CreateSession_OrderErrors(t *testing.T) {
	tests := []struct {
		name      string
		mockOrder *domain.Order
		mockError error
		wantErr   error
	}{
		{
			name:      "unknown order",
			mockError: sql.ErrNoRows,
			wantErr:   service.ErrOrderNotFound,
		},
		{
			name:      "order already paid",
			mockOrder: &domain.Order{OrderCode: 1755500000000, Status: "paid"},
			wantErr:   service.ErrOrderNotPending,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := new(mocks.OrderStore)
			orders.On("GetOrderByCode", mock.Anything, mock.Anything).
				Return(testCase.mockOrder, testCase.mockError).Once()

			coordinator := newCoordinator(orders, new(mocks.SessionStore), new(mocks.Gateway), new(mocks.StatusPublisher), time.Hour)

			_, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
				OrderCode: 1755500000000,
				Method:    domain.MethodPayOS,
			})

			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestCoordinator_CreateSession_UnknownMethod(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, mock.Anything).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, mock.Anything).Return(nil, nil).Once()

	coordinator := newCoordinator(orders, sessions, new(mocks.Gateway), new(mocks.StatusPublisher), time.Hour)

	_, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Method:    "BITCOIN",
	})

	assert.ErrorIs(t, err, service.ErrUnknownMethod)
}

func TestCoordinator_TimeoutPublishesEvent(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, mock.Anything).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, mock.Anything).Return(nil, nil).Once()
	sessions.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	gw := new(mocks.Gateway)
	gw.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&gateway.CheckoutResponse{CheckoutURL: "https://pay.example.com/x"}, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	publisher := new(mocks.StatusPublisher)
	publisher.On("PublishStatus", mock.Anything, mock.MatchedBy(func(ev domain.StatusEvent) bool {
		return ev.OrderCode == 1755500000000 && ev.Status == string(domain.StatusTimeout)
	})).Run(func(mock.Arguments) { wg.Done() }).Return(nil).Once()

	coordinator := newCoordinator(orders, sessions, gw, publisher, 10*time.Millisecond)

	_, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    59000,
		Method:    domain.MethodPayOS,
	})
	assert.NoError(t, err)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout event never published")
	}
	publisher.AssertExpectations(t)
}

func TestCoordinator_ResolveCancelsTimeout(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, mock.Anything).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, mock.Anything).Return(nil, nil).Once()
	sessions.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	sessions.On("Delete", mock.Anything, int64(1755500000000), "").Return(nil).Once()

	gw := new(mocks.Gateway)
	gw.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&gateway.CheckoutResponse{CheckoutURL: "https://pay.example.com/x"}, nil).Once()

	publisher := new(mocks.StatusPublisher)

	coordinator := newCoordinator(orders, sessions, gw, publisher, 50*time.Millisecond)

	_, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    59000,
		Method:    domain.MethodPayOS,
	})
	assert.NoError(t, err)

	coordinator.Resolve(context.Background(), 1755500000000, "")

	time.Sleep(100 * time.Millisecond)
	publisher.AssertNotCalled(t, "PublishStatus", mock.Anything, mock.Anything)
	sessions.AssertExpectations(t)
}

func TestCoordinator_GatewayFailure(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("GetOrderByCode", mock.Anything, mock.Anything).Return(pendingOrder(), nil).Once()

	sessions := new(mocks.SessionStore)
	sessions.On("FindByUID", mock.Anything, mock.Anything).Return(nil, nil).Once()

	gw := new(mocks.Gateway)
	gw.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil, gateway.ErrUnavailable).Once()

	coordinator := newCoordinator(orders, sessions, gw, new(mocks.StatusPublisher), time.Hour)

	_, err := coordinator.CreateSession(context.Background(), service.CreateSessionRequest{
		OrderCode: 1755500000000,
		Amount:    59000,
		Method:    domain.MethodPayOS,
	})

	assert.ErrorIs(t, err, gateway.ErrUnavailable)
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
