package domain

import (
	"encoding/json"
	"time"
)

// Site is the persisted personalized page, keyed by its subdomain label.
type Site struct {
	ID           int             `json:"id"`
	QRName       string          `json:"qr_name"`
	FullURL      string          `json:"full_url"`
	Content      string          `json:"content"`
	TemplateID   int             `json:"template_id"`
	TemplateType string          `json:"template_type"`
	TemplateData json.RawMessage `json:"template_data"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Config returns the stored template_data, falling back to an empty object
// when the blob is missing or corrupt. Template bundles treat absent fields
// as "use defaults", so a broken blob must not fail the page load.
func (s *Site) Config() json.RawMessage {
	if len(s.TemplateData) == 0 || !json.Valid(s.TemplateData) {
		return json.RawMessage("{}")
	}
	return s.TemplateData
}
