package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quicknotes/internal/models"
)

type NoteRepository interface {
	Store(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id string) (*models.Note, error)
	FindAllByUser(ctx context.Context, userID string) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Store(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, content, color, is_pinned, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Color, note.IsPinned,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("note store: %w", err)
	}
	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	query := `SELECT id, user_id, title, content, color, is_pinned, created_at, updated_at
       FROM notes WHERE id = $1`
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content, &note.Color, &note.IsPinned,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("note find: %w", err)
	}
	return note, nil
}

// FindAllByUser: только заметки владельца, новые сверху.
func (r *noteRepository) FindAllByUser(ctx context.Context, userID string) ([]models.Note, error) {
	query := `SELECT id, user_id, title, content, color, is_pinned, created_at, updated_at
       FROM notes WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("note list: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Content, &n.Color, &n.IsPinned,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("note list scan: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes SET
			title=$1, content=$2, color=$3, is_pinned=$4, updated_at=$5
		WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query,
		note.Title, note.Content, note.Color, note.IsPinned, note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("note update: %w", err)
	}
	return expectOneRow(res)
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("note delete: %w", err)
	}
	return expectOneRow(res)
}
