package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, phone, name, language, created_on, last_seen_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Language == "" {
		u.Language = "ru"
	}
	query := `INSERT INTO users (phone, name, language, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Phone, u.Name, u.Language, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Phone, &u.Name, &u.Language, &u.CreatedOn, &u.LastSeenOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone).
		Scan(&u.ID, &u.Phone, &u.Name, &u.Language, &u.CreatedOn, &u.LastSeenOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name=$1, language=$2 WHERE id=$3`, u.Name, u.Language, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) TouchLastSeen(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen_on=$1 WHERE id=$2`, time.Now(), id)
	return err
}

func (r *userRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.User, int32, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (phone ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM users"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf("SELECT "+userColumns+" FROM users%s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", where, argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Phone, &u.Name, &u.Language, &u.CreatedOn, &u.LastSeenOn); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, count, rows.Err()
}
