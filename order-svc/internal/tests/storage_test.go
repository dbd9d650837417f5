package tests

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loveplanet/order-svc/internal/domain"
	"loveplanet/order-svc/internal/storage"
)

func orderParams() domain.CreateOrderParams {
	return domain.CreateOrderParams{
		QRName:       "gift",
		FullURL:      "gift.inanhxink.com",
		Content:      "happy birthday",
		TemplateID:   1,
		TemplateType: domain.TemplateGalaxy,
		TemplateData: json.RawMessage(`{"content":"happy birthday"}`),
		OrderCode:    1755500000000,
		MusicAdded:   true,
		MusicPrice:   10000,
		TipAmount:    5000,
	}
}

func TestCreateOrder_VoucherRedeemedInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	params := orderParams()
	params.VoucherCode = "LOVE10"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM templates").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(49000))
	mock.ExpectQuery("UPDATE vouchers").
		WithArgs("LOVE10").
		WillReturnRows(sqlmock.NewRows([]string{"discount_type", "discount_value"}).
			AddRow("percentage", 10.0))
	mock.ExpectQuery("INSERT INTO qr_codes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(3, time.Now(), time.Now()))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(7, time.Now()))
	mock.ExpectCommit()

	repo := storage.NewPostgresRepository(db)
	order, site, err := repo.CreateOrder(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 3, site.ID)
	assert.Equal(t, 7, order.ID)
	// 49000 + 10000 music + 5000 tip, minus 10%
	assert.Equal(t, int64(64000), order.Subtotal)
	assert.Equal(t, int64(57600), order.TotalAmount)
	assert.Equal(t, int64(6400), order.VoucherDiscount)
	assert.Equal(t, "LOVE10", order.VoucherCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_InapplicableVoucherIsNonFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	params := orderParams()
	params.VoucherCode = "USEDUP"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM templates").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(49000))
	mock.ExpectQuery("UPDATE vouchers").
		WithArgs("USEDUP").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO qr_codes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(3, time.Now(), time.Now()))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(7, time.Now()))
	mock.ExpectCommit()

	repo := storage.NewPostgresRepository(db)
	order, _, err := repo.CreateOrder(context.Background(), params)

	require.NoError(t, err)
	assert.Empty(t, order.VoucherCode)
	assert.Zero(t, order.VoucherDiscount)
	assert.Equal(t, int64(64000), order.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_InactiveTemplate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM templates").
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := storage.NewPostgresRepository(db)
	_, _, err = repo.CreateOrder(context.Background(), orderParams())

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_FailureRollsBackVoucher(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	params := orderParams()
	params.VoucherCode = "LOVE10"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price FROM templates").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(49000))
	mock.ExpectQuery("UPDATE vouchers").
		WithArgs("LOVE10").
		WillReturnRows(sqlmock.NewRows([]string{"discount_type", "discount_value"}).
			AddRow("fixed", 20000.0))
	mock.ExpectQuery("INSERT INTO qr_codes").
		WillReturnError(errors.New("connection reset"))
	// No commit: the increment rolls back with the rest of the order.
	mock.ExpectRollback()

	repo := storage.NewPostgresRepository(db)
	_, _, err = repo.CreateOrder(context.Background(), params)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
