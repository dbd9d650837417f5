package domain

import "encoding/json"

// CreateOrderParams is the validated, normalized input handed to the order
// repository. Name and voucher code are already lowercased/uppercased, the
// template type resolved, and the config blob assembled.
type CreateOrderParams struct {
	QRName       string
	FullURL      string
	Content      string
	TemplateID   int
	TemplateType TemplateType
	TemplateData json.RawMessage

	OrderCode     int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	MusicLink         string
	MusicAdded        bool
	MusicPrice        int64
	KeychainPurchased bool
	KeychainPrice     int64
	TipAmount         int64
	VoucherCode       string
}
