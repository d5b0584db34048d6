package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type addressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

const addressColumns = `id, user_id, label, line, city, latitude, longitude, is_default, created_on`

func (r *addressRepository) Create(ctx context.Context, a *domain.Address) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE addresses SET is_default=false WHERE user_id=$1`, a.UserID); err != nil {
			return err
		}
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO addresses (user_id, label, line, city, latitude, longitude, is_default, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		a.UserID, a.Label, a.Line, a.City, a.Latitude, a.Longitude, a.IsDefault, time.Now()).Scan(&a.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *addressRepository) GetByID(ctx context.Context, id int32) (*domain.Address, error) {
	a := &domain.Address{}
	err := r.db.QueryRowContext(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id).
		Scan(&a.ID, &a.UserID, &a.Label, &a.Line, &a.City, &a.Latitude, &a.Longitude, &a.IsDefault, &a.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_on DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Line, &a.City, &a.Latitude, &a.Longitude, &a.IsDefault, &a.CreatedOn); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *addressRepository) CountByUser(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM addresses WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *addressRepository) Update(ctx context.Context, a *domain.Address) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE addresses SET is_default=false WHERE user_id=$1 AND id<>$2`, a.UserID, a.ID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE addresses SET label=$1, line=$2, city=$3, latitude=$4, longitude=$5, is_default=$6 WHERE id=$7 AND user_id=$8`,
		a.Label, a.Line, a.City, a.Latitude, a.Longitude, a.IsDefault, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	// Never leave the user without a default while addresses remain.
	if !a.IsDefault {
		if err := promoteDefault(ctx, tx, "addresses", a.UserID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *addressRepository) Delete(ctx context.Context, id, userID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM addresses WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := promoteDefault(ctx, tx, "addresses", userID); err != nil {
		return err
	}
	return tx.Commit()
}

// promoteDefault marks the newest row as default when the user has rows but
// no default left. Shared by the address and card repositories.
func promoteDefault(ctx context.Context, tx *sql.Tx, table string, userID int32) error {
	var hasDefault bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE user_id=$1 AND is_default=true)`, userID).Scan(&hasDefault); err != nil {
		return err
	}
	if hasDefault {
		return nil
	}
	_, err := tx.ExecContext(ctx, `UPDATE `+table+` SET is_default=true WHERE id = (SELECT id FROM `+table+` WHERE user_id=$1 ORDER BY created_on DESC, id DESC LIMIT 1)`, userID)
	return err
}
