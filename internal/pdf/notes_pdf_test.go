package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/models"
)

func TestRenderNotes_ProducesPDF(t *testing.T) {
	r := NewNotesRenderer("")
	r.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC) }

	notes := []models.Note{
		{ID: "1", Title: "Pinned", Content: "first line\nsecond line", IsPinned: true, UpdatedAt: time.Now()},
		{ID: "2", Title: "Café", Content: "accents survive cp1252", UpdatedAt: time.Now()},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderNotes(&buf, "alice@example.com", notes))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "missing PDF header")
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderNotes_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewNotesRenderer("").RenderNotes(&buf, "bob", nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderNotes_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := NewNotesRenderer("/does/not/exist.ttf").RenderNotes(&buf, "bob", []models.Note{{Title: "x", Content: "y"}})
	require.Error(t, err)
}
