package inventory

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"github.com/xuri/excelize/v2"
)

// ExportExcel writes the current inventory as an .xlsx download
func (h *Handler) ExportExcel(c *gin.Context) {
	userID := c.GetString("user_id")

	var products []database.Product
	if err := h.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Product", "Category", "Stock", "Cost", "Selling Price", "Stock Value", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Sheet1", cell, header)
	}

	for rowIdx, p := range products {
		row := []interface{}{
			p.Name,
			p.Category,
			p.StockQty,
			p.Cost,
			p.SellingPrice,
			float64(p.StockQty) * p.Cost,
			stockStatus(p.StockQty),
		}
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue("Sheet1", cell, value)
		}
	}

	f.SetColWidth("Sheet1", "A", "B", 20)
	f.SetColWidth("Sheet1", "C", "G", 14)

	filename := "inventory_" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate file"})
		return
	}
}
