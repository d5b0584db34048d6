package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// reservedQuery sums reserved units for one product over a date range.
// Overlap test: order.start <= end AND order.end >= start, all inclusive.
const reservedQuery = `SELECT COALESCE(SUM(oi.quantity), 0)
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE oi.product_id = $1
	  AND o.status IN ('CONFIRMED', 'PREPARING', 'DELIVERED')
	  AND o.rental_start_date <= $3
	  AND o.rental_end_date >= $2`

func (r *orderRepository) ReservedQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	var reserved int32
	err := r.db.QueryRowContext(ctx, reservedQuery, productID, start, end).Scan(&reserved)
	return reserved, err
}

func (r *orderRepository) CreateWithStockCheck(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock each product row, then re-check reserved stock under the lock.
	// This closes the check-then-insert race between concurrent checkouts.
	// Rows are locked in ascending product id so two overlapping checkouts
	// cannot deadlock on each other.
	requested := map[int32]int32{}
	for _, item := range o.Items {
		requested[item.ProductID] += item.Quantity
	}
	productIDs := make([]int32, 0, len(requested))
	for productID := range requested {
		productIDs = append(productIDs, productID)
	}
	slices.Sort(productIDs)
	for _, productID := range productIDs {
		qty := requested[productID]
		var stock int32
		err := tx.QueryRowContext(ctx, `SELECT total_stock FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&stock)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}

		var reserved int32
		if err := tx.QueryRowContext(ctx, reservedQuery, productID, o.RentalStartDate, o.RentalEndDate).Scan(&reserved); err != nil {
			return err
		}

		available := stock - reserved
		if available < 0 {
			available = 0
		}
		if qty > available {
			return &repository.InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
		}
	}

	now := time.Now()
	query := `INSERT INTO orders (order_number, user_id, status, rental_start_date, rental_end_date, subtotal, delivery_fee, total, total_savings, payment_method, payment_status, address_line, address_city, contact_phone, delivery_note, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	err = tx.QueryRowContext(ctx, query, o.OrderNumber, o.UserID, o.Status, o.RentalStartDate, o.RentalEndDate,
		o.Subtotal, o.DeliveryFee, o.Total, o.TotalSavings, o.PaymentMethod, o.PaymentStatus,
		o.AddressLine, o.AddressCity, o.ContactPhone, o.DeliveryNote, now, now).Scan(&o.ID)
	if err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, product_photo, daily_price, effective_price, quantity, total_price, savings)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			o.ID, item.ProductID, item.ProductName, item.ProductPhoto, item.DailyPrice,
			item.EffectivePrice, item.Quantity, item.TotalPrice, item.Savings).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO order_status_history (order_id, status, actor, note, created_on) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Status, "customer", "order placed", now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const orderColumns = `id, order_number, user_id, status, rental_start_date, rental_end_date, subtotal, delivery_fee, total, total_savings, payment_method, payment_status, address_line, address_city, contact_phone, delivery_note, created_on, updated_on`

func scanOrder(row interface{ Scan(...any) error }, o *domain.Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.RentalStartDate, &o.RentalEndDate,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.TotalSavings, &o.PaymentMethod, &o.PaymentStatus,
		&o.AddressLine, &o.AddressCity, &o.ContactPhone, &o.DeliveryNote, &o.CreatedOn, &o.UpdatedOn)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, status, actor, note, created_on FROM order_status_history WHERE order_id = $1 ORDER BY created_on`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.OrderStatusEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Actor, &e.Note, &e.CreatedOn); err != nil {
			return nil, err
		}
		o.History = append(o.History, e)
	}
	return o, rows.Err()
}

func (r *orderRepository) loadItems(ctx context.Context, o *domain.Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, product_name, product_photo, daily_price, effective_price, quantity, total_price, savings FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductPhoto,
			&item.DailyPrice, &item.EffectivePrice, &item.Quantity, &item.TotalPrice, &item.Savings); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int32, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM orders"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf("SELECT "+orderColumns+" FROM orders%s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", where, argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus, actor, note string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `UPDATE orders SET status=$1, updated_on=$2 WHERE id=$3`, status, now, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO order_status_history (order_id, status, actor, note, created_on) VALUES ($1, $2, $3, $4, $5)`,
		orderID, status, actor, note, now)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *orderRepository) SetPaymentStatus(ctx context.Context, orderID int32, status domain.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orderRepository) DashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}

	err := r.db.QueryRowContext(ctx, `SELECT
		(SELECT count(*) FROM orders),
		(SELECT count(*) FROM orders WHERE status IN ('CONFIRMED', 'PREPARING', 'DELIVERED')),
		(SELECT count(*) FROM users),
		(SELECT count(*) FROM products),
		(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'CANCELLED')`).
		Scan(&stats.TotalOrders, &stats.ActiveOrders, &stats.TotalCustomers, &stats.TotalProducts, &stats.Revenue)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_on DESC LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		stats.RecentOrders = append(stats.RecentOrders, o)
	}
	return stats, rows.Err()
}
