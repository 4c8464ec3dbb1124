package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/pkg/activitylog"
	"gorm.io/gorm"
)

type Handler struct {
	logger *activitylog.Logger
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{logger: activitylog.NewLogger(db)}
}

// List returns the user's recent audit trail entries
func (h *Handler) List(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.logger.List(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
