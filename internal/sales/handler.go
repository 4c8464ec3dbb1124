package sales

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/stock"
	"github.com/hanifauzan/bisnisku-backend/pkg/activitylog"
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

// List returns all sales for the user
func (h *Handler) List(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))

	sales, err := h.service.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sales})
}

// Create records a new sale
func (h *Handler) Create(c *gin.Context) {
	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := uuid.Parse(c.GetString("user_id"))

	sale, err := h.service.CreateSale(userID, input)
	if err != nil {
		var verr *ValidationError
		var serr *stock.InsufficientStockError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
		case errors.As(err, &serr):
			c.JSON(http.StatusConflict, gin.H{"error": serr.Error(), "products": serr.Products})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	details := map[string]interface{}{
		"customer_id":    sale.CustomerID,
		"total_amount":   sale.TotalAmount,
		"payment_status": sale.PaymentStatus,
		"items":          len(sale.Items),
	}
	if sale.Customer != nil {
		details["customer"] = sale.Customer.Name
	}
	h.logger.Log(c, "sale", "sale", &sale.ID, details)

	c.JSON(http.StatusCreated, gin.H{"data": sale})
}

// Get returns a single sale
func (h *Handler) Get(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
		return
	}

	sale, err := h.service.Get(userID, saleID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sale})
}

// Delete voids a sale and restores its stock
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := uuid.Parse(c.GetString("user_id"))
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
		return
	}

	if err := h.service.DeleteSale(userID, saleID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Log(c, "void_sale", "sale", &saleID, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}
