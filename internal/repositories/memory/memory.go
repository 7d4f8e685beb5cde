// Package memory содержит in-process реализации репозиториев.
// Используется при database.driver=memory (локальная разработка) и в тестах.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"quicknotes/internal/models"
	"quicknotes/internal/repositories"
)

// Store: общее хранилище для всех трёх репозиториев.
type Store struct {
	mu      sync.RWMutex
	users   map[string]models.User
	otps    []models.OTP
	notes   map[string]models.Note
	otpSeq  int64
	nowFunc func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   map[string]models.User{},
		notes:   map[string]models.Note{},
		nowFunc: time.Now,
	}
}

func (s *Store) Users() repositories.UserRepository { return &userRepo{s: s} }
func (s *Store) OTPs() repositories.OTPRepository   { return &otpRepo{s: s} }
func (s *Store) Notes() repositories.NoteRepository { return &noteRepo{s: s} }

// ===== users =====

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrAlreadyExists
		}
	}
	now := r.s.nowFunc()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) UpdateAvatar(_ context.Context, id string, avatar models.Avatar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Avatar = avatar
	u.UpdatedAt = r.s.nowFunc()
	r.s.users[id] = u
	return nil
}

func (r *userRepo) VerifyUser(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.IsVerified = true
	u.UpdatedAt = r.s.nowFunc()
	r.s.users[id] = u
	return nil
}

// ===== otps =====

type otpRepo struct{ s *Store }

func (r *otpRepo) Create(_ context.Context, otp *models.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.otpSeq++
	otp.ID = r.s.otpSeq
	r.s.otps = append(r.s.otps, *otp)
	return nil
}

func (r *otpRepo) GetLatestByEmail(_ context.Context, email string) (*models.OTP, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *models.OTP
	for i := range r.s.otps {
		o := r.s.otps[i]
		if o.Email != email {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) ||
			(o.CreatedAt.Equal(latest.CreatedAt) && o.ID > latest.ID) {
			latest = &o
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	return latest, nil
}

func (r *otpRepo) DeleteByEmail(_ context.Context, email string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.otps[:0]
	var deleted int64
	for _, o := range r.s.otps {
		if o.Email == email {
			deleted++
			continue
		}
		kept = append(kept, o)
	}
	r.s.otps = kept
	return deleted, nil
}

// CountOTPs: сколько кодов хранится для email. Нужен тестам, в интерфейс репозитория не входит.
func (s *Store) CountOTPs(email string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := 0
	for _, o := range s.otps {
		if o.Email == email {
			c++
		}
	}
	return c
}

// ===== notes =====

type noteRepo struct{ s *Store }

func (r *noteRepo) Store(_ context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notes[note.ID] = *note
	return nil
}

func (r *noteRepo) FindByID(_ context.Context, id string) (*models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &n, nil
}

func (r *noteRepo) FindAllByUser(_ context.Context, userID string) ([]models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	notes := []models.Note{}
	for _, n := range r.s.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	// как в SQL: created_at DESC, id DESC
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})
	return notes, nil
}

func (r *noteRepo) Update(_ context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notes[note.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.s.notes[note.ID] = *note
	return nil
}

func (r *noteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.notes, id)
	return nil
}
