package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PayPalClient drives the international-card flow. Amounts are USD: a flat
// base fee plus the tip, independent of the VND catalog price.
type PayPalClient struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	ReturnURL    string
	CancelURL    string
	HTTPClient   *http.Client
}

func NewPayPalClient(endpoint, clientID, clientSecret, returnURL, cancelURL string) *PayPalClient {
	return &PayPalClient{
		Endpoint:     endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		ReturnURL:    returnURL,
		CancelURL:    cancelURL,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *PayPalClient) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{{
			"reference_id": fmt.Sprintf("%d", req.OrderCode),
			"description":  req.Description,
			"amount": map[string]string{
				"currency_code": "USD",
				"value":         fmt.Sprintf("%d.00", req.Amount),
			},
		}},
		"application_context": map[string]string{
			"return_url": c.ReturnURL,
			"cancel_url": c.CancelURL,
		},
	}
	payload, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Endpoint+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var result struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	for _, link := range result.Links {
		if link.Rel == "approve" || link.Rel == "payer-action" {
			return &CheckoutResponse{CheckoutURL: link.Href, Reference: result.ID}, nil
		}
	}
	return nil, fmt.Errorf("%w: no approval link in response", ErrUnavailable)
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Endpoint+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(c.ClientID, c.ClientSecret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", ErrUnavailable, err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrUnavailable)
	}
	return result.AccessToken, nil
}
