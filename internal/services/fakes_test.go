package services

import (
	"context"
	"io"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"quicknotes/internal/models"
)

type fakeMailer struct {
	mu    sync.Mutex
	codes map[string][]string
	err   error
}

func newFakeMailer() *fakeMailer { return &fakeMailer{codes: map[string][]string{}} }

func (m *fakeMailer) SendOTPEmail(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = append(m.codes[email], code)
	return m.err
}

func (m *fakeMailer) last(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.codes[email]
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

type fakeVerifier struct {
	claim *IdentityClaim
	err   error
	calls int
}

func (v *fakeVerifier) Verify(_ context.Context, _ string) (*IdentityClaim, error) {
	v.calls++
	return v.claim, v.err
}

type fakeNotifier struct {
	users []string
	err   error
}

func (n *fakeNotifier) NotifySignup(_ context.Context, u *models.User) error {
	n.users = append(n.users, u.Email)
	return n.err
}

type fakeRenderer struct {
	owner string
	notes []models.Note
}

func (r *fakeRenderer) RenderNotes(w io.Writer, owner string, notes []models.Note) error {
	r.owner = owner
	r.notes = notes
	_, err := w.Write([]byte("%PDF-fake"))
	return err
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, s.err
}
