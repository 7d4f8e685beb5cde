package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quicknotes/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar models.Avatar) error
	VerifyUser(ctx context.Context, id string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, name, email, avatar_public_id, avatar_url, auth_provider, is_verified, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (id, name, email, avatar_public_id, avatar_url, auth_provider, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		user.ID,
		user.Name,
		user.Email,
		user.Avatar.PublicID,
		user.Avatar.URL,
		user.AuthProvider,
		user.IsVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, id), "user get by id")
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, q, email), "user get by email")
}

func (r *userRepository) scanOne(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var (
		publicID sql.NullString
		url      sql.NullString
		provider string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &publicID, &url,
		&provider, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if publicID.Valid {
		u.Avatar.PublicID = publicID.String
	}
	if url.Valid {
		u.Avatar.URL = url.String
	}
	u.AuthProvider = models.AuthProvider(provider)
	return u, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id string, avatar models.Avatar) error {
	const q = `
		UPDATE users
		SET avatar_public_id=$1, avatar_url=$2, updated_at=NOW()
		WHERE id=$3
	`
	res, err := r.DB.ExecContext(ctx, q, avatar.PublicID, avatar.URL, id)
	if err != nil {
		return fmt.Errorf("user update avatar: %w", err)
	}
	return expectOneRow(res)
}

func (r *userRepository) VerifyUser(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET is_verified=TRUE, updated_at=NOW()
		WHERE id=$1
	`, id)
	if err != nil {
		return fmt.Errorf("user verify: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
