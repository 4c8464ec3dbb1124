package customer

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

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// List returns all customers for the user
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	search := c.Query("search")

	query := h.db.Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var customers []database.Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customers})
}

// Create adds a new customer
func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := uuid.Parse(c.GetString("user_id"))

	customer := database.Customer{
		UserID: userID,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	h.logger.LogCreate(c, "customer", customer.ID, map[string]interface{}{
		"name":  customer.Name,
		"phone": customer.Phone,
		"email": customer.Email,
	})

	c.JSON(http.StatusCreated, gin.H{"data": customer})
}

// Get returns a single customer
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer database.Customer
	if err := h.db.Where("id = ? AND user_id = ?", customerID, userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// Update modifies a customer
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer database.Customer
	if err := h.db.Where("id = ? AND user_id = ?", customerID, userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	oldValues := map[string]interface{}{
		"name":  customer.Name,
		"phone": customer.Phone,
		"email": customer.Email,
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email

	if err := h.db.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	h.logger.LogUpdate(c, "customer", customer.ID, oldValues, map[string]interface{}{
		"name":  customer.Name,
		"phone": customer.Phone,
		"email": customer.Email,
	})

	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// Delete soft-deletes a customer
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var customer database.Customer
	if err := h.db.Where("id = ? AND user_id = ?", customerID, userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	if err := h.db.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	h.logger.LogDelete(c, "customer", customer.ID, map[string]interface{}{
		"name": customer.Name,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// GetStats returns purchase and debt statistics for one customer
func (h *Handler) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")
	customerID := c.Param("id")

	var stats struct {
		TotalSales      int64   `json:"total_sales"`
		TotalSpent      float64 `json:"total_spent"`
		OutstandingDebt float64 `json:"outstanding_debt"`
	}

	h.db.Model(&database.Sale{}).
		Select("COUNT(*) as total_sales, COALESCE(SUM(total_amount), 0) as total_spent").
		Where("user_id = ? AND customer_id = ?", userID, customerID).
		Scan(&stats)

	h.db.Model(&database.Debtor{}).
		Select("COALESCE(SUM(amount_owed), 0)").
		Where("user_id = ? AND customer_id = ? AND is_resolved = ?", userID, customerID, false).
		Scan(&stats.OutstandingDebt)

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
