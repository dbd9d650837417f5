package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PayOSClient drives the domestic bank/e-wallet flow. Amounts are the full
// order total in VND; no currency conversion happens on this path.
type PayOSClient struct {
	Endpoint    string
	ClientID    string
	APIKey      string
	ChecksumKey string
	ReturnURL   string
	CancelURL   string
	HTTPClient  *http.Client
}

func NewPayOSClient(endpoint, clientID, apiKey, checksumKey, returnURL, cancelURL string) *PayOSClient {
	return &PayOSClient{
		Endpoint:    endpoint,
		ClientID:    clientID,
		APIKey:      apiKey,
		ChecksumKey: checksumKey,
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type payosCreateRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature"`
}

type payosCreateResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		CheckoutURL   string `json:"checkoutUrl"`
		PaymentLinkID string `json:"paymentLinkId"`
	} `json:"data"`
}

func (c *PayOSClient) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	body := payosCreateRequest{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: req.Description,
		ReturnURL:   c.ReturnURL,
		CancelURL:   c.CancelURL,
	}
	body.Signature = c.sign(body)

	payload, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Endpoint+"/v2/payment-requests", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.ClientID)
	httpReq.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var result payosCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if result.Code != "00" || result.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("%w: code=%s desc=%s", ErrUnavailable, result.Code, result.Desc)
	}

	return &CheckoutResponse{
		CheckoutURL: result.Data.CheckoutURL,
		Reference:   result.Data.PaymentLinkID,
	}, nil
}

// sign computes the HMAC-SHA256 the gateway requires, over the request
// fields in fixed alphabetical order.
func (c *PayOSClient) sign(r payosCreateRequest) string {
	data := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		r.Amount, r.CancelURL, r.Description, r.OrderCode, r.ReturnURL)
	mac := hmac.New(sha256.New, []byte(c.ChecksumKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
