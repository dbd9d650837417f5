package gateway

import (
	"context"
	"errors"
)

// ErrUnavailable covers a gateway that cannot be reached or answers with a
// non-success envelope. The order stays pending; the client may retry.
var ErrUnavailable = errors.New("payment gateway unavailable")

// CheckoutRequest asks an external gateway for a hosted checkout page.
type CheckoutRequest struct {
	OrderCode   int64
	Amount      int64
	Currency    string
	Description string
	BuyerEmail  string
}

type CheckoutResponse struct {
	CheckoutURL string
	Reference   string
}

// Gateway is one external payment backend. Implementations must not mutate
// local state; the coordinator owns session bookkeeping.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
}
