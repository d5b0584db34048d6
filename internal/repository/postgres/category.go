package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (name_ru, name_en, name_uz, slug, photo_url, sort_order, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.NameRu, c.NameEn, c.NameUz, c.Slug, c.PhotoURL, c.SortOrder, c.IsActive, time.Now()).Scan(&c.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	c := &domain.Category{}
	query := `SELECT id, name_ru, name_en, name_uz, slug, photo_url, sort_order, is_active, created_on FROM categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.NameRu, &c.NameEn, &c.NameUz, &c.Slug, &c.PhotoURL, &c.SortOrder, &c.IsActive, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	query := `SELECT id, name_ru, name_en, name_uz, slug, photo_url, sort_order, is_active, created_on FROM categories`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.NameRu, &c.NameEn, &c.NameUz, &c.Slug, &c.PhotoURL, &c.SortOrder, &c.IsActive, &c.CreatedOn); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name_ru=$1, name_en=$2, name_uz=$3, slug=$4, photo_url=$5, sort_order=$6, is_active=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.NameRu, c.NameEn, c.NameUz, c.Slug, c.PhotoURL, c.SortOrder, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) DeleteCascade(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pricing_tiers WHERE product_id IN (SELECT id FROM products WHERE category_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quantity_pricing WHERE product_id IN (SELECT id FROM products WHERE category_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE product_id IN (SELECT id FROM products WHERE category_id=$1)`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE category_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit()
}
