package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/pkg/activitylog"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

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

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	SellingPrice float64 `json:"selling_price" binding:"required"`
	Cost         float64 `json:"cost"`
	StockQty     int     `json:"stock_qty"`
}

// List returns all products for the user, optionally filtered by category
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	category := c.Query("category")
	search := c.Query("search")

	query := h.db.Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var products []database.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// Create adds a new product
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.StockQty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot be negative"})
		return
	}

	userID, _ := uuid.Parse(c.GetString("user_id"))

	product := database.Product{
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		SellingPrice: req.SellingPrice,
		Cost:         req.Cost,
		StockQty:     req.StockQty,
		IsActive:     true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.logger.LogCreate(c, "product", product.ID, map[string]interface{}{
		"name":     product.Name,
		"price":    product.SellingPrice,
		"category": product.Category,
	})

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

// Get returns a single product
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var product database.Product
	if err := h.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Update modifies a product
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var product database.Product
	if err := h.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	oldValues := map[string]interface{}{
		"name":     product.Name,
		"price":    product.SellingPrice,
		"cost":     product.Cost,
		"category": product.Category,
		"stock":    product.StockQty,
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StockQty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot be negative"})
		return
	}

	product.Name = req.Name
	product.Category = req.Category
	product.SellingPrice = req.SellingPrice
	product.Cost = req.Cost
	product.StockQty = req.StockQty

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.logger.LogUpdate(c, "product", product.ID, oldValues, map[string]interface{}{
		"name":     product.Name,
		"price":    product.SellingPrice,
		"cost":     product.Cost,
		"category": product.Category,
		"stock":    product.StockQty,
	})

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Delete soft-deletes a product
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var product database.Product
	if err := h.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.logger.LogDelete(c, "product", product.ID, map[string]interface{}{
		"name":  product.Name,
		"price": product.SellingPrice,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ToggleActive toggles a product's is_active status
func (h *Handler) ToggleActive(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("id")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product database.Product
	if err := h.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	product.IsActive = req.IsActive
	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}
