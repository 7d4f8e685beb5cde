package authz

import (
	"errors"

	"quicknotes/internal/models"
)

var ErrNotOwner = errors.New("not the owner of the resource")

// CanModifyNote: изменять и удалять заметку может только её владелец.
func CanModifyNote(userID string, note *models.Note) error {
	if note == nil || userID == "" || note.UserID != userID {
		return ErrNotOwner
	}
	return nil
}
