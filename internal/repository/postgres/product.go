package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"

	"github.com/lib/pq"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, category_id, name_ru, name_en, name_uz, description_ru, description_en, description_uz, photos, daily_price, total_stock, is_active, created_on, updated_on`

func scanProduct(row interface{ Scan(...any) error }, p *domain.Product) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.NameRu, &p.NameEn, &p.NameUz,
		&p.DescriptionRu, &p.DescriptionEn, &p.DescriptionUz, pq.Array(&p.Photos),
		&p.DailyPrice, &p.TotalStock, &p.IsActive, &p.CreatedOn, &p.UpdatedOn)
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO products (category_id, name_ru, name_en, name_uz, description_ru, description_en, description_uz, photos, daily_price, total_stock, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err = tx.QueryRowContext(ctx, query, p.CategoryID, p.NameRu, p.NameEn, p.NameUz,
		p.DescriptionRu, p.DescriptionEn, p.DescriptionUz, pq.Array(p.Photos),
		p.DailyPrice, p.TotalStock, p.IsActive, now, now).Scan(&p.ID)
	if err != nil {
		return err
	}

	if err := insertBrackets(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func insertBrackets(ctx context.Context, tx *sql.Tx, p *domain.Product) error {
	for i := range p.PricingTiers {
		t := &p.PricingTiers[i]
		t.ProductID = p.ID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO pricing_tiers (product_id, min_days, max_days, daily_price) VALUES ($1, $2, $3, $4) RETURNING id`,
			p.ID, t.MinDays, t.MaxDays, t.DailyPrice).Scan(&t.ID)
		if err != nil {
			return err
		}
	}
	for i := range p.QuantityPricing {
		b := &p.QuantityPricing[i]
		b.ProductID = p.ID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO quantity_pricing (product_id, min_quantity, max_quantity, price_per_unit) VALUES ($1, $2, $3, $4) RETURNING id`,
			p.ID, b.MinQuantity, b.MaxQuantity, b.PricePerUnit).Scan(&b.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadBrackets(ctx, p); err != nil {
		return nil, err
	}

	c := &domain.Category{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, name_ru, name_en, name_uz, slug, photo_url, sort_order, is_active, created_on FROM categories WHERE id = $1`,
		p.CategoryID).Scan(&c.ID, &c.NameRu, &c.NameEn, &c.NameUz, &c.Slug, &c.PhotoURL, &c.SortOrder, &c.IsActive, &c.CreatedOn)
	if err == nil {
		p.Category = c
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return p, nil
}

func (r *productRepository) loadBrackets(ctx context.Context, p *domain.Product) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, min_days, max_days, daily_price FROM pricing_tiers WHERE product_id = $1 ORDER BY min_days`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.PricingTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.MinDays, &t.MaxDays, &t.DailyPrice); err != nil {
			return err
		}
		p.PricingTiers = append(p.PricingTiers, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	qrows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, min_quantity, max_quantity, price_per_unit FROM quantity_pricing WHERE product_id = $1 ORDER BY min_quantity`, p.ID)
	if err != nil {
		return err
	}
	defer qrows.Close()
	for qrows.Next() {
		var b domain.QuantityPricing
		if err := qrows.Scan(&b.ID, &b.ProductID, &b.MinQuantity, &b.MaxQuantity, &b.PricePerUnit); err != nil {
			return err
		}
		p.QuantityPricing = append(p.QuantityPricing, b)
	}
	return qrows.Err()
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE products SET category_id=$1, name_ru=$2, name_en=$3, name_uz=$4, description_ru=$5, description_en=$6, description_uz=$7, photos=$8, daily_price=$9, total_stock=$10, is_active=$11, updated_on=$12 WHERE id=$13`
	res, err := tx.ExecContext(ctx, query, p.CategoryID, p.NameRu, p.NameEn, p.NameUz,
		p.DescriptionRu, p.DescriptionEn, p.DescriptionUz, pq.Array(p.Photos),
		p.DailyPrice, p.TotalStock, p.IsActive, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	// Pricing brackets are rewritten wholesale on every update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM pricing_tiers WHERE product_id=$1`, p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quantity_pricing WHERE product_id=$1`, p.ID); err != nil {
		return err
	}
	if err := insertBrackets(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pricing_tiers WHERE product_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quantity_pricing WHERE product_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE product_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit()
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int32, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.ActiveOnly {
		where += " AND is_active = true"
	}
	if filter.CategoryID != nil {
		where += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, *filter.CategoryID)
		argIdx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name_ru ILIKE $%d OR name_en ILIKE $%d OR name_uz ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM products"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf("SELECT "+productColumns+" FROM products%s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", where, argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range products {
		if err := r.loadBrackets(ctx, &products[i]); err != nil {
			return nil, 0, err
		}
	}
	return products, count, nil
}
