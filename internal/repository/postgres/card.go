package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, user_id, masked_pan, expiry_month, expiry_year, is_default, created_on`

func (r *cardRepository) Create(ctx context.Context, c *domain.Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if c.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE cards SET is_default=false WHERE user_id=$1`, c.UserID); err != nil {
			return err
		}
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO cards (user_id, masked_pan, expiry_month, expiry_year, is_default, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.UserID, c.MaskedPAN, c.ExpiryMonth, c.ExpiryYear, c.IsDefault, time.Now()).Scan(&c.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cardRepository) GetByID(ctx context.Context, id int32) (*domain.Card, error) {
	c := &domain.Card{}
	err := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id).
		Scan(&c.ID, &c.UserID, &c.MaskedPAN, &c.ExpiryMonth, &c.ExpiryYear, &c.IsDefault, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cardRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE user_id = $1 ORDER BY is_default DESC, created_on DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.UserID, &c.MaskedPAN, &c.ExpiryMonth, &c.ExpiryYear, &c.IsDefault, &c.CreatedOn); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Update(ctx context.Context, c *domain.Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if c.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE cards SET is_default=false WHERE user_id=$1 AND id<>$2`, c.UserID, c.ID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE cards SET masked_pan=$1, expiry_month=$2, expiry_year=$3, is_default=$4 WHERE id=$5 AND user_id=$6`,
		c.MaskedPAN, c.ExpiryMonth, c.ExpiryYear, c.IsDefault, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if !c.IsDefault {
		if err := promoteDefault(ctx, tx, "cards", c.UserID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *cardRepository) Delete(ctx context.Context, id, userID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := promoteDefault(ctx, tx, "cards", userID); err != nil {
		return err
	}
	return tx.Commit()
}
