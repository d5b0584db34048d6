package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

func TestOrderRepository_ReservedQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Sums active overlapping orders", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(oi.quantity\), 0\)`).
			WithArgs(int32(1), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(7))

		reserved, err := repo.ReservedQuantity(ctx, 1, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), reserved)
	})

	t.Run("No reservations yields zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(oi.quantity\), 0\)`).
			WithArgs(int32(1), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))

		reserved, err := repo.ReservedQuantity(ctx, 1, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), reserved)
	})
}

func TestOrderRepository_CreateWithStockCheck(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	newOrder := func() *domain.Order {
		return &domain.Order{
			OrderNumber:     "RA-20260901-ABCDEF",
			UserID:          7,
			Status:          domain.OrderStatusConfirmed,
			RentalStartDate: start,
			RentalEndDate:   end,
			Subtotal:        9000,
			Total:           9000,
			PaymentMethod:   domain.PaymentMethodCash,
			PaymentStatus:   domain.PaymentStatusPending,
			AddressLine:     "ул. Навои 15",
			AddressCity:     "Ташкент",
			ContactPhone:    "+998901234567",
			Items: []domain.OrderItem{
				{ProductID: 1, ProductName: "Стол", DailyPrice: 1000, EffectivePrice: 900, Quantity: 3, TotalPrice: 8100, Savings: 900},
			},
		}
	}

	t.Run("Insufficient stock aborts the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT total_stock FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"total_stock"}).AddRow(4))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(oi.quantity\), 0\)`).
			WithArgs(int32(1), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(2))
		mock.ExpectRollback()

		err = repo.CreateWithStockCheck(ctx, newOrder())
		var stockErr *repository.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int32(3), stockErr.Requested)
		assert.Equal(t, int32(2), stockErr.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success inserts order, items and history", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT total_stock FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"total_stock"}).AddRow(10))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(oi.quantity\), 0\)`).
			WithArgs(int32(1), start, end).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(2))
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(55))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
		mock.ExpectExec(`INSERT INTO order_status_history`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		order := newOrder()
		require.NoError(t, repo.CreateWithStockCheck(ctx, order))
		assert.Equal(t, int32(55), order.ID)
		assert.Equal(t, int32(77), order.Items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_CreateWithStockCheck_LockOrder(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewOrderRepository(db)

	// Items arrive with product 5 first; the locks must still be taken in
	// ascending product id.
	order := &domain.Order{
		OrderNumber:     "RA-20260901-FEDCBA",
		UserID:          7,
		Status:          domain.OrderStatusConfirmed,
		RentalStartDate: start,
		RentalEndDate:   end,
		PaymentMethod:   domain.PaymentMethodCash,
		PaymentStatus:   domain.PaymentStatusPending,
		AddressLine:     "ул. Навои 15",
		AddressCity:     "Ташкент",
		ContactPhone:    "+998901234567",
		Items: []domain.OrderItem{
			{ProductID: 5, ProductName: "Стул", DailyPrice: 500, EffectivePrice: 500, Quantity: 1, TotalPrice: 1500},
			{ProductID: 2, ProductName: "Стол", DailyPrice: 1000, EffectivePrice: 1000, Quantity: 1, TotalPrice: 3000},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT total_stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"total_stock"}).AddRow(10))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(oi.quantity\), 0\)`).
		WithArgs(int32(2), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
	mock.ExpectQuery(`SELECT total_stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"total_stock"}).AddRow(10))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(oi.quantity\), 0\)`).
		WithArgs(int32(5), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(60))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(81))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(82))
	mock.ExpectExec(`INSERT INTO order_status_history`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateWithStockCheck(ctx, order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	t.Run("Updates row and appends history", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders SET status=`).
			WithArgs(domain.OrderStatusPreparing, sqlmock.AnyArg(), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_status_history`).
			WithArgs(int32(5), domain.OrderStatusPreparing, "admin", "packing", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.UpdateStatus(ctx, 5, domain.OrderStatusPreparing, "admin", "packing"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing order returns not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders SET status=`).
			WithArgs(domain.OrderStatusPreparing, sqlmock.AnyArg(), int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.UpdateStatus(ctx, 9, domain.OrderStatusPreparing, "admin", ""), repository.ErrNotFound)
	})
}
