package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
)

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	session := &domain.Session{
		Token:     "fresh-token",
		UserID:    7,
		DeviceID:  "device-a",
		ExpiresOn: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Replaces the existing session for the same device", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewSessionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM sessions WHERE user_id=\$1 AND device_id=\$2`).
			WithArgs(int32(7), "device-a").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO sessions`).
			WithArgs("fresh-token", int32(7), "device-a", session.ExpiresOn, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(ctx, session))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed insert rolls back the delete", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewSessionRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM sessions WHERE user_id=\$1 AND device_id=\$2`).
			WithArgs(int32(7), "device-a").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO sessions`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		assert.Error(t, repo.Create(ctx, session))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
