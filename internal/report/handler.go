package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const topProductLimit = 10

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type ReportRequest struct {
	StartDate string `form:"start_date"` // Format: 2024-01-01
	EndDate   string `form:"end_date"`   // Format: 2024-01-31
	Range     string `form:"range"`      // daily, weekly, monthly, yearly
}

// window resolves the request to a half-open [start, end) interval,
// defaulting to the current month
func (r ReportRequest) window(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	if r.StartDate != "" {
		if parsed, err := time.Parse("2006-01-02", r.StartDate); err == nil {
			start = parsed
		}
	}
	if r.EndDate != "" {
		if parsed, err := time.Parse("2006-01-02", r.EndDate); err == nil {
			end = parsed.AddDate(0, 0, 1)
		}
	}
	return start, end
}

func (r ReportRequest) bucket() time.Duration {
	if r.Range == "yearly" {
		return 30 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// snapshot loads the user's sales within [start, end) with items and
// products, the input for every pure aggregation below
func (h *Handler) snapshot(userID uuid.UUID, start, end time.Time) ([]database.Sale, error) {
	var sales []database.Sale
	err := h.db.Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, start, end).
		Preload("Items").
		Preload("Items.Product").
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}

// GetSalesReport returns window totals plus the chronological trend
func (h *Handler) GetSalesReport(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end := req.window(time.Now())

	sales, err := h.snapshot(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.AddDate(0, 0, -1).Format("2006-01-02"),
		"summary":    Summarize(sales),
		"trend":      Trend(sales, start, end, req.bucket()),
	}})
}

// GetProductReport returns per-product totals and the top performers
func (h *Handler) GetProductReport(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	var req ReportRequest
	c.ShouldBindQuery(&req)
	start, end := req.window(time.Now())

	sales, err := h.snapshot(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"products": ByProduct(sales),
		"top":      TopProducts(sales, topProductLimit),
	}})
}

// GetCategoryReport returns per-category totals
func (h *Handler) GetCategoryReport(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	var req ReportRequest
	c.ShouldBindQuery(&req)
	start, end := req.window(time.Now())

	sales, err := h.snapshot(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ByCategory(sales)})
}

// ExportExcel writes the sales report as an .xlsx download
func (h *Handler) ExportExcel(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	var req ReportRequest
	c.ShouldBindQuery(&req)
	start, end := req.window(time.Now())

	sales, err := h.snapshot(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Date", "Revenue", "Cost", "Profit"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Sheet1", cell, header)
	}

	points := Trend(sales, start, end, req.bucket())
	for rowIdx, p := range points {
		row := []interface{}{p.Date.Format("2006-01-02"), p.Revenue, p.Cost, p.Profit}
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue("Sheet1", cell, value)
		}
	}

	sum := Summarize(sales)
	totalRow := len(points) + 2
	for colIdx, value := range []interface{}{"Total", sum.Revenue, sum.Cost, sum.Profit} {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, totalRow)
		f.SetCellValue("Sheet1", cell, value)
	}

	f.SetColWidth("Sheet1", "A", "D", 14)

	filename := "sales_report_" + start.Format("20060102") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate file"})
		return
	}
}
