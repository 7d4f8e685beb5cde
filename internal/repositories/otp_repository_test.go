package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/models"
)

func TestOTPCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOTPRepository(db)
	created := time.Now().UTC()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+otps\s*\(email,\s*code_hash,\s*created_at\).*RETURNING\s+id`).
		WithArgs("a@b.c", "hash", created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	otp := &models.OTP{Email: "a@b.c", CodeHash: "hash", CreatedAt: created}
	require.NoError(t, repo.Create(context.Background(), otp))
	assert.Equal(t, int64(7), otp.ID)
}

func TestOTPGetLatestByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOTPRepository(db)
	created := time.Now().UTC()

	mock.ExpectQuery(`(?s)FROM\s+otps\s+WHERE\s+email\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+1`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "code_hash", "created_at"}).
			AddRow(int64(3), "a@b.c", "hash", created))

	otp, err := repo.GetLatestByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), otp.ID)
	assert.Equal(t, "hash", otp.CodeHash)
}

func TestOTPGetLatestByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOTPRepository(db)
	mock.ExpectQuery(`FROM\s+otps`).WithArgs("a@b.c").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetLatestByEmail(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOTPDeleteByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOTPRepository(db)
	mock.ExpectExec(`DELETE\s+FROM\s+otps\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("a@b.c").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestOTPDeleteByEmail_Error(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOTPRepository(db)
	mock.ExpectExec(`DELETE\s+FROM\s+otps`).WillReturnError(errors.New("boom"))

	_, err := repo.DeleteByEmail(context.Background(), "a@b.c")
	assert.ErrorContains(t, err, "otp delete: boom")
}
