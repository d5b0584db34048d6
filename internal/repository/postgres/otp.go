package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type otpRepository struct {
	db *sql.DB
}

func NewOTPRepository(db *sql.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, o *domain.OTP) error {
	o.CreatedOn = time.Now()
	query := `INSERT INTO otps (phone, code, expires_on, attempts, verified, created_on) VALUES ($1, $2, $3, 0, false, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, o.Phone, o.Code, o.ExpiresOn, o.CreatedOn).Scan(&o.ID)
}

func (r *otpRepository) GetLatest(ctx context.Context, phone string, now time.Time) (*domain.OTP, error) {
	o := &domain.OTP{}
	query := `SELECT id, phone, code, expires_on, attempts, verified, created_on FROM otps
	          WHERE phone = $1 AND verified = false AND expires_on > $2
	          ORDER BY created_on DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, phone, now).
		Scan(&o.ID, &o.Phone, &o.Code, &o.ExpiresOn, &o.Attempts, &o.Verified, &o.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE otps SET attempts = attempts + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE otps SET verified = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE expires_on < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
