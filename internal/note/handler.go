package note

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type NoteRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Category string `json:"category" binding:"omitempty,oneof=general task reminder idea"`
	IsPinned bool   `json:"is_pinned"`
}

// List returns the user's notes, pinned first then newest
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	category := c.Query("category")

	query := h.db.Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var notes []database.Note
	if err := query.Order("is_pinned DESC, created_at DESC").Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notes})
}

// Create adds a new note
func (h *Handler) Create(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := uuid.Parse(c.GetString("user_id"))

	category := req.Category
	if category == "" {
		category = "general"
	}

	note := database.Note{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
		IsPinned: req.IsPinned,
	}

	if err := h.db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": note})
}

// Get returns a single note
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var note database.Note
	if err := h.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": note})
}

// Update modifies a note
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var note database.Note
	if err := h.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note.Title = req.Title
	note.Content = req.Content
	if req.Category != "" {
		note.Category = req.Category
	}
	note.IsPinned = req.IsPinned

	if err := h.db.Save(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": note})
}

// Delete removes a note
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var note database.Note
	if err := h.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	if err := h.db.Delete(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

// TogglePin flips a note's pinned flag
func (h *Handler) TogglePin(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var note database.Note
	if err := h.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}

	note.IsPinned = !note.IsPinned
	if err := h.db.Save(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": note})
}
