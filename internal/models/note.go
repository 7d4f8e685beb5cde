package models

import "time"

const DefaultNoteColor = "#ffffff"

// Note: заметка, принадлежащая ровно одному пользователю.
type Note struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Color   string `json:"color"`
}

// NotePatch: частичное обновление: nil означает "не трогать".
type NotePatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Color    *string `json:"color"`
	IsPinned *bool   `json:"isPinned"`
}
