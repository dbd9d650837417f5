package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"loveplanet/order-svc/internal/domain"
)

var (
	ErrInvalidName         = errors.New("qr name must be lowercase letters, numbers, dashes, or underscores only")
	ErrMissingField        = errors.New("qrName and templateId are required")
	ErrUnknownTemplateType = errors.New("unknown template type")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrSiteNotFound        = errors.New("qr code not found")
	ErrVoucherNotFound     = errors.New("invalid or expired voucher code")

	// ErrNameConflict is the storage-level race on the qr_name unique
	// constraint, surfaced so handlers can answer with a retryable 409.
	ErrNameConflict = domain.ErrNameConflict
)

const (
	MusicPrice    = 10000
	KeychainPrice = 0
)

var nameRe = regexp.MustCompile(`^[a-z0-9_-]+$`)

type TemplateService struct {
	repo TemplateRepository
}

func NewTemplateService(repo TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	return s.repo.ListActiveTemplates(ctx)
}

func (s *TemplateService) Get(ctx context.Context, id int) (*domain.Template, error) {
	tpl, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

type VoucherService struct {
	repo VoucherRepository
}

func NewVoucherService(repo VoucherRepository) *VoucherService {
	return &VoucherService{repo: repo}
}

func (s *VoucherService) Validate(ctx context.Context, code string) (*domain.Voucher, error) {
	if code == "" {
		return nil, ErrVoucherNotFound
	}
	voucher, err := s.repo.FindApplicableVoucher(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return voucher, nil
}

type NameAvailability struct {
	Available bool
	FullURL   string
}

type CreateOrderInput struct {
	QRName            string   `json:"qrName"`
	TemplateID        string   `json:"templateId"`
	TemplateType      string   `json:"templateType,omitempty"`
	Content           string   `json:"content,omitempty"`
	ImageURLs         []string `json:"imageUrls,omitempty"`
	MusicURL          string   `json:"musicUrl,omitempty"`
	MusicLink         string   `json:"musicLink,omitempty"` // legacy field
	MusicAdded        bool     `json:"musicAdded,omitempty"`
	KeychainPurchased bool     `json:"keychainPurchased,omitempty"`
	TipAmount         int64    `json:"tipAmount,omitempty"`
	VoucherCode       string   `json:"voucherCode,omitempty"`
	CustomerName      string   `json:"customerName,omitempty"`
	CustomerEmail     string   `json:"customerEmail,omitempty"`
	CustomerPhone     string   `json:"customerPhone,omitempty"`
}

type OrderService struct {
	repo       OrderRepository
	cache      SiteCacheInvalidator
	baseDomain string
	now        func() time.Time
}

func NewOrderService(repo OrderRepository, cache SiteCacheInvalidator, baseDomain string) *OrderService {
	return &OrderService{repo: repo, cache: cache, baseDomain: baseDomain, now: time.Now}
}

// CheckName reports whether a qr name is free. The check is advisory: the
// unique constraint on qr_codes.qr_name is what actually guards the race.
func (s *OrderService) CheckName(ctx context.Context, name string) (*NameAvailability, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || !nameRe.MatchString(name) {
		return nil, ErrInvalidName
	}
	exists, err := s.repo.SiteNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check qr name %q: %w", name, err)
	}
	return &NameAvailability{
		Available: !exists,
		FullURL:   name + "." + s.baseDomain,
	}, nil
}

func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*domain.Order, *domain.Site, error) {
	if input.QRName == "" || input.TemplateID == "" {
		return nil, nil, ErrMissingField
	}

	name := strings.ToLower(strings.TrimSpace(input.QRName))
	if !nameRe.MatchString(name) {
		return nil, nil, ErrInvalidName
	}

	templateType, err := resolveTemplateType(input.TemplateID, input.TemplateType)
	if err != nil {
		return nil, nil, err
	}

	templateID, err := strconv.Atoi(input.TemplateID)
	if err != nil {
		id, ok := domain.LegacyTemplateIDs[input.TemplateID]
		if !ok {
			return nil, nil, ErrTemplateNotFound
		}
		templateID = id
	}

	musicLink := input.MusicURL
	if musicLink == "" {
		musicLink = input.MusicLink
	}

	templateData, err := buildTemplateData(input.Content, input.ImageURLs, musicLink)
	if err != nil {
		return nil, nil, fmt.Errorf("build template data: %w", err)
	}

	tip := input.TipAmount
	if tip < 0 {
		tip = 0
	}

	var musicPrice, keychainPrice int64
	if input.MusicAdded {
		musicPrice = MusicPrice
	}
	if input.KeychainPurchased {
		keychainPrice = KeychainPrice
	}

	params := domain.CreateOrderParams{
		QRName:            name,
		FullURL:           name + "." + s.baseDomain,
		Content:           input.Content,
		TemplateID:        templateID,
		TemplateType:      templateType,
		TemplateData:      templateData,
		OrderCode:         s.newOrderCode(),
		CustomerName:      input.CustomerName,
		CustomerEmail:     input.CustomerEmail,
		CustomerPhone:     input.CustomerPhone,
		MusicLink:         musicLink,
		MusicAdded:        input.MusicAdded,
		MusicPrice:        musicPrice,
		KeychainPurchased: input.KeychainPurchased,
		KeychainPrice:     keychainPrice,
		TipAmount:         tip,
		VoucherCode:       strings.ToUpper(input.VoucherCode),
	}

	order, site, err := s.repo.CreateOrder(ctx, params)
	if err != nil {
		// The repository reports a missing or inactive template as no rows.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrTemplateNotFound
		}
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, name); err != nil {
			log.Printf("[order-svc] invalidate site cache %s: %v", name, err)
		}
	}
	return order, site, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetSite(ctx context.Context, name string) (*domain.Site, *domain.Template, error) {
	site, tpl, err := s.repo.GetSiteByName(ctx, strings.ToLower(name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrSiteNotFound
		}
		return nil, nil, err
	}
	return site, tpl, nil
}

// newOrderCode mints the public payment reference. Millisecond timestamps are
// unique enough at this volume; the orders.order_code unique index backs it up.
func (s *OrderService) newOrderCode() int64 {
	return s.now().UnixMilli()
}

func resolveTemplateType(templateID, explicit string) (domain.TemplateType, error) {
	if explicit != "" {
		t := domain.TemplateType(explicit)
		if t.Valid() {
			return t, nil
		}
	}
	if t, ok := domain.LegacyTemplateTypes[templateID]; ok {
		return t, nil
	}
	return "", ErrUnknownTemplateType
}

func buildTemplateData(content string, imageURLs []string, musicURL string) (json.RawMessage, error) {
	data := map[string]interface{}{"content": content}
	if len(imageURLs) > 0 {
		data["imageUrls"] = imageURLs
	}
	if musicURL != "" {
		data["musicUrl"] = musicURL
	}
	return json.Marshal(data)
}
