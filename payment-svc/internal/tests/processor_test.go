package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loveplanet/payment-svc/internal/domain"
	"loveplanet/payment-svc/internal/mocks"
	"loveplanet/payment-svc/internal/service"
)

func statusEvent(status string) domain.StatusEvent {
	return domain.StatusEvent{
		Type:      domain.EventPaymentStatus,
		OrderCode: 1755500000000,
		Status:    status,
		Timestamp: time.Now(),
	}
}

func TestStatusProcessor_AppliesTerminalStatus(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("ApplyStatus", mock.Anything, int64(1755500000000), "paid").
		Return(true, "paid", nil).Once()

	notifier := new(mocks.Notifier)
	notifier.On("Broadcast", "1755500000000", domain.EventPaymentStatus, mock.Anything).Once()

	coordinator := new(mocks.CoordinatorInterface)
	coordinator.On("Resolve", mock.Anything, int64(1755500000000), "").Once()

	processor := service.NewStatusProcessor(orders, notifier, coordinator)
	processor.Apply(context.Background(), statusEvent("PAID"))

	orders.AssertExpectations(t)
	notifier.AssertExpectations(t)
	coordinator.AssertExpectations(t)
}

func TestStatusProcessor_DuplicateEventIsNoOp(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("ApplyStatus", mock.Anything, int64(1755500000000), "paid").
		Return(false, "paid", nil).Once()

	notifier := new(mocks.Notifier)
	coordinator := new(mocks.CoordinatorInterface)

	processor := service.NewStatusProcessor(orders, notifier, coordinator)
	processor.Apply(context.Background(), statusEvent("PAID"))

	notifier.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything, mock.Anything)
	coordinator.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusProcessor_LatePaidAfterTimeout(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("ApplyStatus", mock.Anything, int64(1755500000000), "paid").
		Return(false, "timeout", nil).Once()

	// The room is still told money arrived, even though the row stays timeout.
	notifier := new(mocks.Notifier)
	notifier.On("Broadcast", "1755500000000", domain.EventPaymentStatus, mock.Anything).Once()

	processor := service.NewStatusProcessor(orders, notifier, new(mocks.CoordinatorInterface))
	processor.Apply(context.Background(), statusEvent("PAID"))

	orders.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestStatusProcessor_NonTerminalStatusIgnored(t *testing.T) {
	orders := new(mocks.OrderStore)
	notifier := new(mocks.Notifier)

	processor := service.NewStatusProcessor(orders, notifier, new(mocks.CoordinatorInterface))
	processor.Apply(context.Background(), statusEvent("PROCESSING"))

	orders.AssertNotCalled(t, "ApplyStatus", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusProcessor_GatewayCasingNormalized(t *testing.T) {
	orders := new(mocks.OrderStore)
	orders.On("ApplyStatus", mock.Anything, int64(1755500000000), "cancelled").
		Return(true, "cancelled", nil).Once()

	notifier := new(mocks.Notifier)
	notifier.On("Broadcast", mock.Anything, mock.Anything, mock.Anything).Once()

	coordinator := new(mocks.CoordinatorInterface)
	coordinator.On("Resolve", mock.Anything, mock.Anything, mock.Anything).Once()

	processor := service.NewStatusProcessor(orders, notifier, coordinator)
	processor.Apply(context.Background(), statusEvent("cancelled"))

	orders.AssertExpectations(t)
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   domain.PaymentStatus
		wantOK bool
	}{
		{"PAID", domain.StatusPaid, true},
		{"paid", domain.StatusPaid, true},
		{" Cancelled ", domain.StatusCancelled, true},
		{"FAILED", domain.StatusFailed, true},
		{"TIMEOUT", domain.StatusTimeout, true},
		{"PROCESSING", "", false},
		{"CREATED", "", false},
		{"", "", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.raw, func(t *testing.T) {
			got, ok := domain.NormalizeStatus(testCase.raw)
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}
