package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNameConflict reports that the unique constraint on qr_codes.qr_name
// rejected an insert that raced past the availability pre-check.
var ErrNameConflict = errors.New("qr name was just taken, pick another")

// TemplateType selects which static visual experience a site renders.
type TemplateType string

const (
	TemplateGalaxy     TemplateType = "galaxy"
	TemplateChristmas  TemplateType = "christmas"
	TemplateLoveLetter TemplateType = "loveletter"
)

func (t TemplateType) Valid() bool {
	switch t {
	case TemplateGalaxy, TemplateChristmas, TemplateLoveLetter:
		return true
	}
	return false
}

// LegacyTemplateTypes maps frontend template ids (both the legacy string ids
// and the seeded catalog ids) to template_type folder names.
var LegacyTemplateTypes = map[string]TemplateType{
	"letterinspace": TemplateGalaxy,
	"christmastree": TemplateChristmas,
	"loveletter":    TemplateLoveLetter,
	"1":             TemplateGalaxy,
	"2":             TemplateChristmas,
	"3":             TemplateLoveLetter,
}

// LegacyTemplateIDs maps legacy string ids to the seeded catalog rows.
var LegacyTemplateIDs = map[string]int{
	"letterinspace": 1,
	"christmastree": 2,
	"loveletter":    3,
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
	OrderStatusFailed    = "failed"
	OrderStatusTimeout   = "timeout"
)

type Template struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	TemplateType TemplateType `json:"template_type"`
	ImageURL     string       `json:"image_url"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Site is the delivered artifact: a personalized page keyed by a unique
// subdomain-safe name. Re-submitting an order with the same name overwrites
// its content and config (the "update my gift" path).
type Site struct {
	ID           int             `json:"id"`
	QRName       string          `json:"qr_name"`
	FullURL      string          `json:"full_url"`
	Content      string          `json:"content"`
	TemplateID   int             `json:"template_id"`
	TemplateType TemplateType    `json:"template_type"`
	TemplateData json.RawMessage `json:"template_data"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Order struct {
	ID                int       `json:"id"`
	OrderCode         int64     `json:"order_code"`
	QRCodeID          int       `json:"qr_code_id"`
	CustomerName      string    `json:"customer_name,omitempty"`
	CustomerEmail     string    `json:"customer_email,omitempty"`
	CustomerPhone     string    `json:"customer_phone,omitempty"`
	TemplateID        int       `json:"template_id"`
	QRName            string    `json:"qr_name"`
	Content           string    `json:"content"`
	MusicLink         string    `json:"music_link,omitempty"`
	MusicAdded        bool      `json:"music_added"`
	KeychainPurchased bool      `json:"keychain_purchased"`
	KeychainPrice     int64     `json:"keychain_price"`
	TipAmount         int64     `json:"tip_amount"`
	VoucherCode       string    `json:"voucher_code,omitempty"`
	VoucherDiscount   int64     `json:"voucher_discount"`
	Subtotal          int64     `json:"subtotal"`
	TotalAmount       int64     `json:"total_amount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Voucher struct {
	ID            int        `json:"id"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue int64      `json:"discount_value"`
	IsActive      bool       `json:"is_active"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	MaxUses       *int       `json:"max_uses,omitempty"`
	UsedCount     int        `json:"used_count"`
}
