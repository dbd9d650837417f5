package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"loveplanet/order-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) ListActiveTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price, template_type, COALESCE(image_url, ''), is_active, created_at
		FROM templates
		WHERE is_active = true
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var tpl domain.Template
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Price, &tpl.TemplateType, &tpl.ImageURL, &tpl.IsActive, &tpl.CreatedAt); err != nil {
			continue
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

func (r *PostgresRepository) GetTemplate(ctx context.Context, id int) (*domain.Template, error) {
	var tpl domain.Template
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price, template_type, COALESCE(image_url, ''), is_active, created_at
		FROM templates
		WHERE id = $1`, id).
		Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Price, &tpl.TemplateType, &tpl.ImageURL, &tpl.IsActive, &tpl.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *PostgresRepository) FindApplicableVoucher(ctx context.Context, code string) (*domain.Voucher, error) {
	var v domain.Voucher
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, code, discount_type, discount_value, is_active, expires_at, max_uses, used_count
		FROM vouchers
		WHERE code = $1 AND is_active = true
		AND (expires_at IS NULL OR expires_at > NOW())
		AND (max_uses IS NULL OR used_count < max_uses)`, code).
		Scan(&v.ID, &v.Code, &v.DiscountType, &v.DiscountValue, &v.IsActive, &v.ExpiresAt, &v.MaxUses, &v.UsedCount)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) SiteNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM qr_codes WHERE qr_name = $1)", name).Scan(&exists)
	return exists, err
}

// CreateOrder runs voucher redemption, the site upsert and the order insert
// as a single transaction, so a failed commit cannot leave a voucher
// redeemed with no order behind it. The conditional increment enforces the
// usage cap atomically under concurrent submissions.
func (r *PostgresRepository) CreateOrder(ctx context.Context, p domain.CreateOrderParams) (*domain.Order, *domain.Site, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var templatePrice int64
	err = tx.QueryRowContext(ctx,
		"SELECT price FROM templates WHERE id = $1 AND is_active = true", p.TemplateID).
		Scan(&templatePrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, sql.ErrNoRows
		}
		return nil, nil, fmt.Errorf("fetch template price: %w", err)
	}

	// Voucher failure is non-fatal: an inapplicable code means full price.
	var discount *domain.Discount
	var appliedVoucher string
	if p.VoucherCode != "" {
		var discountType string
		var discountValue float64
		err = tx.QueryRowContext(ctx, `
			UPDATE vouchers
			SET used_count = used_count + 1
			WHERE code = $1 AND is_active = true
			AND (expires_at IS NULL OR expires_at > NOW())
			AND (max_uses IS NULL OR used_count < max_uses)
			RETURNING discount_type, discount_value`, p.VoucherCode).
			Scan(&discountType, &discountValue)
		switch {
		case err == nil:
			discount = &domain.Discount{Type: discountType, Value: discountValue}
			appliedVoucher = p.VoucherCode
		case errors.Is(err, sql.ErrNoRows):
			// not applicable, proceed without discount
		default:
			return nil, nil, fmt.Errorf("redeem voucher %s: %w", p.VoucherCode, err)
		}
	}

	quote := domain.ComputeTotal(float64(templatePrice),
		[]float64{float64(p.MusicPrice), float64(p.KeychainPrice)},
		float64(p.TipAmount), discount)

	site := &domain.Site{
		QRName:       p.QRName,
		FullURL:      p.FullURL,
		Content:      p.Content,
		TemplateID:   p.TemplateID,
		TemplateType: p.TemplateType,
		TemplateData: p.TemplateData,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO qr_codes (qr_name, full_url, content, template_id, template_type, template_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (qr_name) DO UPDATE
			SET full_url      = EXCLUDED.full_url,
			    content       = EXCLUDED.content,
			    template_id   = EXCLUDED.template_id,
			    template_type = EXCLUDED.template_type,
			    template_data = EXCLUDED.template_data,
			    updated_at    = NOW()
		RETURNING id, created_at, updated_at`,
		p.QRName, p.FullURL, p.Content, p.TemplateID, p.TemplateType, []byte(p.TemplateData)).
		Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.ErrNameConflict
		}
		return nil, nil, fmt.Errorf("upsert site %s: %w", p.QRName, err)
	}

	order := &domain.Order{
		OrderCode:         p.OrderCode,
		QRCodeID:          site.ID,
		CustomerName:      p.CustomerName,
		CustomerEmail:     p.CustomerEmail,
		CustomerPhone:     p.CustomerPhone,
		TemplateID:        p.TemplateID,
		QRName:            p.QRName,
		Content:           p.Content,
		MusicLink:         p.MusicLink,
		MusicAdded:        p.MusicAdded,
		KeychainPurchased: p.KeychainPurchased,
		KeychainPrice:     p.KeychainPrice,
		TipAmount:         p.TipAmount,
		VoucherCode:       appliedVoucher,
		VoucherDiscount:   quote.Discount,
		Subtotal:          quote.Subtotal,
		TotalAmount:       quote.Total,
		Status:            domain.OrderStatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_code, qr_code_id, customer_name, customer_email, customer_phone,
			template_id, qr_name, content, music_link, music_added,
			keychain_purchased, keychain_price, tip_amount, voucher_code, voucher_discount,
			subtotal, total_amount, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, created_at`,
		order.OrderCode, order.QRCodeID,
		nullString(order.CustomerName), nullString(order.CustomerEmail), nullString(order.CustomerPhone),
		order.TemplateID, order.QRName, order.Content, nullString(order.MusicLink), order.MusicAdded,
		order.KeychainPurchased, order.KeychainPrice, order.TipAmount,
		nullString(order.VoucherCode), order.VoucherDiscount,
		order.Subtotal, order.TotalAmount, order.Status).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert order for site %s: %w", p.QRName, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return order, site, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var o domain.Order
	var customerName, customerEmail, customerPhone, musicLink, voucherCode sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, order_code, qr_code_id, customer_name, customer_email, customer_phone,
		       template_id, qr_name, content, music_link, music_added,
		       keychain_purchased, keychain_price, tip_amount, voucher_code, voucher_discount,
		       subtotal, total_amount, status, created_at
		FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.OrderCode, &o.QRCodeID, &customerName, &customerEmail, &customerPhone,
			&o.TemplateID, &o.QRName, &o.Content, &musicLink, &o.MusicAdded,
			&o.KeychainPurchased, &o.KeychainPrice, &o.TipAmount, &voucherCode, &o.VoucherDiscount,
			&o.Subtotal, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.CustomerName = customerName.String
	o.CustomerEmail = customerEmail.String
	o.CustomerPhone = customerPhone.String
	o.MusicLink = musicLink.String
	o.VoucherCode = voucherCode.String
	return &o, nil
}

func (r *PostgresRepository) GetSiteByName(ctx context.Context, name string) (*domain.Site, *domain.Template, error) {
	var site domain.Site
	var tpl domain.Template
	var data []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT qr.id, qr.qr_name, qr.full_url, qr.content, qr.template_id, qr.template_type,
		       COALESCE(qr.template_data, '{}'), qr.created_at, qr.updated_at,
		       t.id, t.name, COALESCE(t.description, ''), t.price, t.template_type, COALESCE(t.image_url, '')
		FROM qr_codes qr
		LEFT JOIN templates t ON qr.template_id = t.id
		WHERE qr.qr_name = $1`, name).
		Scan(&site.ID, &site.QRName, &site.FullURL, &site.Content, &site.TemplateID, &site.TemplateType,
			&data, &site.CreatedAt, &site.UpdatedAt,
			&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Price, &tpl.TemplateType, &tpl.ImageURL)
	if err != nil {
		return nil, nil, err
	}
	site.TemplateData = data
	return &site, &tpl, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS templates (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price BIGINT NOT NULL DEFAULT 0,
			template_type TEXT NOT NULL,
			image_url TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS qr_codes (
			id SERIAL PRIMARY KEY,
			qr_name TEXT NOT NULL UNIQUE,
			full_url TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			template_id INTEGER REFERENCES templates(id),
			template_type TEXT NOT NULL,
			template_data JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_code BIGINT NOT NULL UNIQUE,
			qr_code_id INTEGER NOT NULL REFERENCES qr_codes(id),
			customer_name TEXT,
			customer_email TEXT,
			customer_phone TEXT,
			template_id INTEGER REFERENCES templates(id),
			qr_name TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			music_link TEXT,
			music_added BOOLEAN NOT NULL DEFAULT false,
			keychain_purchased BOOLEAN NOT NULL DEFAULT false,
			keychain_price BIGINT NOT NULL DEFAULT 0,
			tip_amount BIGINT NOT NULL DEFAULT 0,
			voucher_code TEXT,
			voucher_discount BIGINT NOT NULL DEFAULT 0,
			subtotal BIGINT NOT NULL DEFAULT 0,
			total_amount BIGINT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS vouchers (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_type TEXT NOT NULL,
			discount_value BIGINT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			expires_at TIMESTAMPTZ,
			max_uses INTEGER,
			used_count INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt[:40], err)
		}
	}
	return nil
}
