package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/report"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type DashboardStats struct {
	Today            report.Summary `json:"today"`
	Week             report.Summary `json:"week"`
	Month            report.Summary `json:"month"`
	OutstandingTotal float64        `json:"outstanding_total"`
	OverdueCount     int            `json:"overdue_count"`
	TotalProducts    int            `json:"total_products"`
	LowStockProducts int            `json:"low_stock_products"`
}

// statsWindow holds the three dashboard intervals anchored at now.
// In the first days of a month the rolling week reaches into the
// previous month, so the fetch lower bound is the earlier of the two.
type statsWindow struct {
	todayStart time.Time
	weekStart  time.Time
	monthStart time.Time
	end        time.Time
}

func newStatsWindow(now time.Time) statsWindow {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return statsWindow{
		todayStart: todayStart,
		weekStart:  todayStart.AddDate(0, 0, -7),
		monthStart: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		end:        todayStart.AddDate(0, 0, 1),
	}
}

func (w statsWindow) fetchStart() time.Time {
	if w.weekStart.Before(w.monthStart) {
		return w.weekStart
	}
	return w.monthStart
}

func (w statsWindow) summarize(sales []database.Sale) (today, week, month report.Summary) {
	today = report.Summarize(report.WindowSales(sales, w.todayStart, w.end))
	week = report.Summarize(report.WindowSales(sales, w.weekStart, w.end))
	month = report.Summarize(report.WindowSales(sales, w.monthStart, w.end))
	return
}

// GetStats returns dashboard statistics
func (h *Handler) GetStats(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	now := time.Now()
	win := newStatsWindow(now)

	var sales []database.Sale
	if err := h.db.Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, win.fetchStart(), win.end).
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	var debtors []database.Debtor
	if err := h.db.Where("user_id = ?", userID).Find(&debtors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debtors"})
		return
	}

	var stats DashboardStats
	stats.Today, stats.Week, stats.Month = win.summarize(sales)
	stats.OutstandingTotal = report.OutstandingTotal(debtors)
	stats.OverdueCount = report.OverdueCount(debtors, now)

	var totalProducts int64
	h.db.Model(&database.Product{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&totalProducts)
	stats.TotalProducts = int(totalProducts)

	var lowStockProducts int64
	h.db.Model(&database.Product{}).
		Where("user_id = ? AND is_active = ? AND stock_qty < ?", userID, true, 10).
		Count(&lowStockProducts)
	stats.LowStockProducts = int(lowStockProducts)

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetTopProducts returns this month's best performers by profit
func (h *Handler) GetTopProducts(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := monthStart.AddDate(0, 1, 0)

	var sales []database.Sale
	if err := h.db.Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, monthStart, end).
		Preload("Items").
		Preload("Items.Product").
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report.TopProducts(sales, 5)})
}

// GetRecentSales returns the latest sales
func (h *Handler) GetRecentSales(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	var sales []database.Sale
	h.db.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Customer").
		Order("sale_date DESC").
		Limit(5).
		Find(&sales)

	c.JSON(http.StatusOK, gin.H{"data": sales})
}
