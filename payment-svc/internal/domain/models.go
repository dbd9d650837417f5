package domain

import (
	"strings"
	"time"
)

// PaymentStatus models the per-order checkout lifecycle:
// CREATED → AWAITING_PAYMENT → {PAID | CANCELLED | FAILED | TIMEOUT}.
// Terminal states admit no further transition.
type PaymentStatus string

const (
	StatusCreated         PaymentStatus = "CREATED"
	StatusAwaitingPayment PaymentStatus = "AWAITING_PAYMENT"
	StatusPaid            PaymentStatus = "PAID"
	StatusCancelled       PaymentStatus = "CANCELLED"
	StatusFailed          PaymentStatus = "FAILED"
	StatusTimeout         PaymentStatus = "TIMEOUT"
)

func (s PaymentStatus) Terminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusFailed, StatusTimeout:
		return true
	}
	return false
}

// OrderStatus is the value written to orders.status for a terminal
// payment status.
func (s PaymentStatus) OrderStatus() string {
	return strings.ToLower(string(s))
}

// NormalizeStatus maps a gateway-reported status string onto the state enum.
// Gateways are inconsistent about casing ("PAID" vs "failed").
func NormalizeStatus(raw string) (PaymentStatus, bool) {
	s := PaymentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if s.Terminal() {
		return s, true
	}
	return "", false
}

const (
	MethodPayOS  = "PAYOS"
	MethodPayPal = "PAYPAL"
)

// PayPalBasePriceUSD is the flat base fee charged on the international path,
// plus the tip interpreted in USD. The VND catalog price does not convert.
const PayPalBasePriceUSD = 5

// StatusEvent travels over the payment-events topic from webhook intake to
// the consumer that applies the transition and notifies the room.
type StatusEvent struct {
	Type      string    `json:"type"`
	OrderCode int64     `json:"order_code"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const EventPaymentStatus = "payment_status_update"

// Order is the slice of the order row this service needs.
type Order struct {
	ID          int
	OrderCode   int64
	TotalAmount int64
	TipAmount   int64
	Status      string
}

// Session is an in-flight checkout: created against a gateway, not yet
// resolved. Kept in Redis so a retried payment attempt reuses the live
// checkout page instead of minting a duplicate.
type Session struct {
	SessionID   string    `json:"session_id"`
	OrderCode   int64     `json:"order_code"`
	UID         string    `json:"uid,omitempty"`
	Method      string    `json:"method"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	CheckoutURL string    `json:"checkout_url"`
	CreatedAt   time.Time `json:"created_at"`
}
