package storage

import (
	"context"
	"database/sql"

	"loveplanet/payment-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetOrderByCode(ctx context.Context, orderCode int64) (*domain.Order, error) {
	var o domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, order_code, total_amount, tip_amount, status
		FROM orders WHERE order_code = $1`, orderCode).
		Scan(&o.ID, &o.OrderCode, &o.TotalAmount, &o.TipAmount, &o.Status)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ApplyStatus performs the terminal transition exactly once: the UPDATE only
// matches while the order is still pending, so duplicate events and
// late-vs-timeout races collapse to a no-op. Returns whether the transition
// was applied and the status the row holds afterwards.
func (r *PostgresRepository) ApplyStatus(ctx context.Context, orderCode int64, status string) (bool, string, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE order_code = $2 AND status = 'pending'`, status, orderCode)
	if err != nil {
		return false, "", err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, "", err
	}
	if rows > 0 {
		return true, status, nil
	}

	var current string
	err = r.DB.QueryRowContext(ctx,
		"SELECT status FROM orders WHERE order_code = $1", orderCode).Scan(&current)
	if err != nil {
		return false, "", err
	}
	return false, current, nil
}
