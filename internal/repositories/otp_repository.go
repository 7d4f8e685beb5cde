package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quicknotes/internal/models"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) error
	GetLatestByEmail(ctx context.Context, email string) (*models.OTP, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

// Create: каждая отправка кода это новая строка; created_at задаёт сервис.
func (r *otpRepository) Create(ctx context.Context, otp *models.OTP) error {
	const q = `
		INSERT INTO otps (email, code_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.DB.QueryRowContext(ctx, q, otp.Email, otp.CodeHash, otp.CreatedAt).Scan(&otp.ID); err != nil {
		return fmt.Errorf("otp create: %w", err)
	}
	return nil
}

// GetLatestByEmail: берём последнюю отправку (по created_at DESC).
func (r *otpRepository) GetLatestByEmail(ctx context.Context, email string) (*models.OTP, error) {
	const q = `
		SELECT id, email, code_hash, created_at
		FROM otps
		WHERE email = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var o models.OTP
	if err := r.DB.QueryRowContext(ctx, q, email).Scan(&o.ID, &o.Email, &o.CodeHash, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("otp latest: %w", err)
	}
	return &o, nil
}

func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM otps WHERE email = $1`, email)
	if err != nil {
		return 0, fmt.Errorf("otp delete: %w", err)
	}
	return res.RowsAffected()
}
