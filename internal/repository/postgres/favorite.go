package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, productID int32) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, product_id, created_on) VALUES ($1, $2, $3) ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, time.Now())
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, productID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id=$1 AND product_id=$2`, userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, productID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id=$1 AND product_id=$2)`, userID, productID).Scan(&exists)
	return exists, err
}

func (r *favoriteRepository) ListProducts(ctx context.Context, userID int32) ([]domain.Product, error) {
	query := `SELECT p.id, p.category_id, p.name_ru, p.name_en, p.name_uz, p.description_ru, p.description_en, p.description_uz, p.photos, p.daily_price, p.total_stock, p.is_active, p.created_on, p.updated_on
	          FROM products p
	          JOIN favorites f ON f.product_id = p.id
	          WHERE f.user_id = $1
	          ORDER BY f.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
