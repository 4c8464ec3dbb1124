package debt

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/report"
	"github.com/hanifauzan/bisnisku-backend/pkg/activitylog"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
	logger  *activitylog.Logger
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: NewService(db),
		logger:  activitylog.NewLogger(db),
	}
}

type DebtorView struct {
	database.Debtor
	Urgency      string `json:"urgency"`
	DaysUntilDue int    `json:"days_until_due"`
}

// ListOpen returns unresolved debtors, soonest due first, with urgency grading
func (h *Handler) ListOpen(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	debtors, err := h.service.ListOpen(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debtors"})
		return
	}

	now := time.Now()
	views := make([]DebtorView, 0, len(debtors))
	for _, d := range debtors {
		views = append(views, DebtorView{
			Debtor:       d,
			Urgency:      Classify(d.DueDate, now),
			DaysUntilDue: DaysUntilDue(d.DueDate, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

// MarkPaid settles a debt: the debtor resolves and its sale becomes paid
func (h *Handler) MarkPaid(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))
	debtorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid debtor id"})
		return
	}

	debtor, err := h.service.MarkPaid(userID, debtorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Debtor not found"})
		case errors.Is(err, ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "Debtor already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.logger.Log(c, "debt_paid", "debtor", &debtor.ID, map[string]interface{}{
		"amount_owed": debtor.AmountOwed,
		"sale_id":     debtor.SaleID,
	})

	c.JSON(http.StatusOK, gin.H{"data": debtor})
}

// GetSummary returns the debt headline numbers
func (h *Handler) GetSummary(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	debtors, err := h.service.ListAll(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debtors"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"outstanding_total": report.OutstandingTotal(debtors),
		"resolved_total":    report.ResolvedTotal(debtors),
		"overdue_count":     report.OverdueCount(debtors, now),
	}})
}
