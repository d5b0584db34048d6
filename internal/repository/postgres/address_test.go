package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

func TestAddressRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Deleting the default promotes the newest remaining address", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAddressRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM addresses WHERE id=\$1 AND user_id=\$2`).
			WithArgs(int32(3), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM addresses WHERE user_id=\$1 AND is_default=true\)`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`UPDATE addresses SET is_default=true WHERE id = \(SELECT id FROM addresses WHERE user_id=\$1 ORDER BY created_on DESC, id DESC LIMIT 1\)`).
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, 3, 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deleting a non-default leaves the default untouched", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAddressRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM addresses WHERE id=\$1 AND user_id=\$2`).
			WithArgs(int32(4), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM addresses WHERE user_id=\$1 AND is_default=true\)`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, 4, 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing address returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAddressRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM addresses WHERE id=\$1 AND user_id=\$2`).
			WithArgs(int32(9), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Delete(ctx, 9, 7), repository.ErrNotFound)
	})
}

func TestAddressRepository_Update(t *testing.T) {
	ctx := context.Background()
	address := func(isDefault bool) *domain.Address {
		return &domain.Address{
			ID:        3,
			UserID:    7,
			Label:     "Дом",
			Line:      "ул. Навои 15",
			City:      "Ташкент",
			IsDefault: isDefault,
		}
	}

	t.Run("Marking default demotes the others", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAddressRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE addresses SET is_default=false WHERE user_id=\$1 AND id<>\$2`).
			WithArgs(int32(7), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE addresses SET label=`).
			WithArgs("Дом", "ул. Навои 15", "Ташкент", nil, nil, true, int32(3), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(ctx, address(true)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Clearing the only default promotes the newest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAddressRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE addresses SET label=`).
			WithArgs("Дом", "ул. Навои 15", "Ташкент", nil, nil, false, int32(3), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM addresses WHERE user_id=\$1 AND is_default=true\)`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`UPDATE addresses SET is_default=true WHERE id = \(SELECT id FROM addresses WHERE user_id=\$1 ORDER BY created_on DESC, id DESC LIMIT 1\)`).
			WithArgs(int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(ctx, address(false)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
