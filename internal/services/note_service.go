package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"quicknotes/internal/authz"
	"quicknotes/internal/models"
	"quicknotes/internal/pdf"
	"quicknotes/internal/repositories"
)

// NoteService: CRUD заметок; все изменения проходят проверку владельца.
type NoteService interface {
	List(ctx context.Context, userID string) ([]models.Note, error)
	Create(ctx context.Context, userID string, req models.CreateNoteRequest) (*models.Note, error)
	Update(ctx context.Context, userID, id string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
	Export(ctx context.Context, user *models.User, w io.Writer) error
}

type noteService struct {
	repo     repositories.NoteRepository
	renderer pdf.Renderer
	now      func() time.Time
}

func NewNoteService(repo repositories.NoteRepository, renderer pdf.Renderer) NoteService {
	return &noteService{repo: repo, renderer: renderer, now: time.Now}
}

func (s *noteService) List(ctx context.Context, userID string) ([]models.Note, error) {
	return s.repo.FindAllByUser(ctx, userID)
}

func (s *noteService) Create(ctx context.Context, userID string, req models.CreateNoteRequest) (*models.Note, error) {
	if req.Title == "" || req.Content == "" {
		return nil, invalid("Please provide title and content")
	}
	if err := validateNoteTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateNoteContent(req.Content); err != nil {
		return nil, err
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = models.DefaultNoteColor
	}
	if err := validateNoteColor(color); err != nil {
		return nil, err
	}

	now := s.now()
	note := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Store(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update: 404 -> владелец -> валидация полей -> частичное обновление.
func (s *noteService) Update(ctx context.Context, userID, id string, patch models.NotePatch) (*models.Note, error) {
	note, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateNoteTitle(*patch.Title); err != nil {
			return nil, err
		}
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		if err := validateNoteContent(*patch.Content); err != nil {
			return nil, err
		}
		note.Content = *patch.Content
	}
	if patch.Color != nil {
		if c := strings.TrimSpace(*patch.Color); c != "" {
			if err := validateNoteColor(c); err != nil {
				return nil, err
			}
			note.Color = c
		}
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}
	note.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Export пишет PDF со всеми заметками пользователя, закреплённые первыми.
func (s *noteService) Export(ctx context.Context, user *models.User, w io.Writer) error {
	notes, err := s.repo.FindAllByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].IsPinned && !notes[j].IsPinned
	})
	return s.renderer.RenderNotes(w, user.Email, notes)
}

func (s *noteService) findOwned(ctx context.Context, userID, id string) (*models.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		// некорректный id ведёт себя как неизвестный
		return nil, ErrNotFound
	}
	note, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyNote(userID, note); err != nil {
		return nil, err
	}
	return note, nil
}
