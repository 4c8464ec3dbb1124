package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/pkg/activitylog"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

const lowStockThreshold = 10

type Handler struct {
	db     *gorm.DB
	logger *activitylog.Logger
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		db:     db,
		logger: activitylog.NewLogger(db),
	}
}

type InventoryItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	StockQty     int       `json:"stock_qty"`
	SellingPrice float64   `json:"selling_price"`
	Cost         float64   `json:"cost"`
	StockValue   float64   `json:"stock_value"`
	Status       string    `json:"status"` // ok, low, out
}

type InventorySummary struct {
	TotalProducts   int     `json:"total_products"`
	TotalStockValue float64 `json:"total_stock_value"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
}

func stockStatus(qty int) string {
	if qty <= 0 {
		return "out"
	}
	if qty < lowStockThreshold {
		return "low"
	}
	return "ok"
}

// GetInventory returns stock status for all active products
func (h *Handler) GetInventory(c *gin.Context) {
	userID := c.GetString("user_id")
	filter := c.Query("filter") // all, low, out

	var products []database.Product
	h.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("name ASC").
		Find(&products)

	var items []InventoryItem
	for _, p := range products {
		status := stockStatus(p.StockQty)

		if filter == "low" && status != "low" {
			continue
		}
		if filter == "out" && status != "out" {
			continue
		}

		items = append(items, InventoryItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Category:     p.Category,
			StockQty:     p.StockQty,
			SellingPrice: p.SellingPrice,
			Cost:         p.Cost,
			StockValue:   float64(p.StockQty) * p.Cost,
			Status:       status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetSummary returns inventory totals
func (h *Handler) GetSummary(c *gin.Context) {
	userID := c.GetString("user_id")

	var products []database.Product
	h.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&products)

	var summary InventorySummary
	for _, p := range products {
		summary.TotalProducts++
		summary.TotalStockValue += float64(p.StockQty) * p.Cost
		switch stockStatus(p.StockQty) {
		case "low":
			summary.LowStockCount++
		case "out":
			summary.OutOfStockCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// GetAlerts returns products at or below the low stock threshold
func (h *Handler) GetAlerts(c *gin.Context) {
	userID := c.GetString("user_id")

	var products []database.Product
	h.db.Where("user_id = ? AND is_active = ? AND stock_qty < ?", userID, true, lowStockThreshold).
		Order("stock_qty ASC").
		Find(&products)

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// UpdateStock sets a product's stock level directly (manual adjustment)
func (h *Handler) UpdateStock(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var req struct {
		StockQty int `json:"stock_qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StockQty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot be negative"})
		return
	}

	var product database.Product
	if err := h.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	oldQty := product.StockQty
	product.StockQty = req.StockQty
	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	h.logger.Log(c, "stock_adjust", "product", &product.ID, map[string]interface{}{
		"name":    product.Name,
		"old_qty": oldQty,
		"new_qty": product.StockQty,
	})

	c.JSON(http.StatusOK, gin.H{"data": product})
}
