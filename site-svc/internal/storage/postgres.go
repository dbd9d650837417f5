package storage

import (
	"context"
	"database/sql"

	"loveplanet/site-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetSiteByName(ctx context.Context, name string) (*domain.Site, error) {
	var site domain.Site
	var data []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, qr_name, full_url, content, template_id, template_type,
		       COALESCE(template_data, '{}'), created_at, updated_at
		FROM qr_codes
		WHERE qr_name = $1`, name).
		Scan(&site.ID, &site.QRName, &site.FullURL, &site.Content, &site.TemplateID,
			&site.TemplateType, &data, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		return nil, err
	}
	site.TemplateData = data
	return &site, nil
}
