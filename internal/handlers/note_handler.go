package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quicknotes/internal/middleware"
	"quicknotes/internal/models"
	"quicknotes/internal/services"
)

type NoteHandler struct {
	service services.NoteService
}

func NewNoteHandler(service services.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) respond(c *gin.Context, tag string, err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
		return
	}
	respondError(c, tag, err)
}

// @Summary   List own notes
// @Tags      Notes
// @Produce   json
// @Success   200  {object}  map[string]interface{}
// @Failure   401  {object}  map[string]string
// @Router    /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	notes, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		h.respond(c, "[notes][list]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(notes), "data": notes})
}

// @Summary   Create a note
// @Tags      Notes
// @Accept    json
// @Produce   json
// @Param     body  body      models.CreateNoteRequest  true  "Note"
// @Success   201   {object}  map[string]interface{}
// @Failure   400   {object}  map[string]string
// @Router    /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide title and content"})
		return
	}
	note, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		h.respond(c, "[notes][create]", err)
		return
	}
	log.Printf("[notes][create] user_id=%s note_id=%s", user.ID, note.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Note created successfully", "data": note})
}

// @Summary   Update a note
// @Tags      Notes
// @Accept    json
// @Produce   json
// @Param     id    path      string            true  "Note ID"
// @Param     body  body      models.NotePatch  true  "Fields to change"
// @Success   200   {object}  map[string]interface{}
// @Failure   400   {object}  map[string]string
// @Failure   401   {object}  map[string]string
// @Failure   404   {object}  map[string]string
// @Router    /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	var patch models.NotePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	note, err := h.service.Update(c.Request.Context(), user.ID, c.Param("id"), patch)
	if err != nil {
		h.respond(c, "[notes][update]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully", "data": note})
}

// @Summary   Delete a note
// @Tags      Notes
// @Produce   json
// @Param     id   path      string  true  "Note ID"
// @Success   200  {object}  map[string]string
// @Failure   401  {object}  map[string]string
// @Failure   404  {object}  map[string]string
// @Router    /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respond(c, "[notes][delete]", err)
		return
	}
	log.Printf("[notes][delete] user_id=%s note_id=%s", user.ID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

// @Summary   Export own notes as PDF
// @Tags      Notes
// @Produce   application/pdf
// @Success   200  {file}    binary
// @Failure   401  {object}  map[string]string
// @Router    /notes/export.pdf [get]
func (h *NoteHandler) Export(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	// буферизуем, чтобы при ошибке рендера ещё можно было ответить JSON
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), user, &buf); err != nil {
		h.respond(c, "[notes][export]", err)
		return
	}
	filename := fmt.Sprintf("notes-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
