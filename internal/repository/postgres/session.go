package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// One live session per (user, device): the old one goes first.
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id=$1 AND device_id=$2`, s.UserID, s.DeviceID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, device_id, expires_on, created_on) VALUES ($1, $2, $3, $4, $5)`,
		s.Token, s.UserID, s.DeviceID, s.ExpiresOn, time.Now())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	s := &domain.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, device_id, expires_on, created_on FROM sessions WHERE token = $1`, token).
		Scan(&s.Token, &s.UserID, &s.DeviceID, &s.ExpiresOn, &s.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_on < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
