package sales

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/stock"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a sale does not exist for the requesting user
var ErrNotFound = errors.New("sale not found")

// ValidationError rejects bad input before any write happens
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Payment statuses for a sale
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
)

// CartLine is one product selection in a new sale. UnitPrice overrides the
// product's selling price when set; the unit cost is always snapshotted from
// the product row.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice *float64  `json:"unit_price"`
}

// CreateSaleInput carries everything needed to record a sale
type CreateSaleInput struct {
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerPhone string     `json:"customer_phone"`
	CustomerEmail string     `json:"customer_email"`
	Items         []CartLine `json:"items" binding:"required,min=1"`
	PaymentStatus string     `json:"payment_status"`
	SaleDate      *time.Time `json:"sale_date"`
	DueDate       *time.Time `json:"due_date"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateSale records a sale: it resolves the customer by exact name (creating
// one when absent), snapshots prices and costs into sale items, reserves
// stock, and opens a debtor when the sale is left unpaid. All writes share
// one database transaction, so a failed step leaves nothing behind.
func (s *Service) CreateSale(userID uuid.UUID, input CreateSaleInput) (*database.Sale, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, &ValidationError{Msg: "customer name is required"}
	}
	if len(input.Items) == 0 {
		return nil, &ValidationError{Msg: "cart is empty"}
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, &ValidationError{Msg: "quantity must be positive"}
		}
		if line.UnitPrice != nil && *line.UnitPrice < 0 {
			return nil, &ValidationError{Msg: "unit price cannot be negative"}
		}
	}

	status := input.PaymentStatus
	if status == "" {
		status = StatusPaid
	}
	if status != StatusPaid && status != StatusPending && status != StatusOverdue {
		return nil, &ValidationError{Msg: "invalid payment status"}
	}
	if status != StatusPaid && input.DueDate == nil {
		return nil, &ValidationError{Msg: "due date is required for unpaid sales"}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Resolve customer by exact name match, creating lazily.
	// Dedup is deliberately exact: no case or whitespace normalization.
	var customer database.Customer
	err := tx.Where("user_id = ? AND name = ?", userID, name).First(&customer).Error
	if err == gorm.ErrRecordNotFound {
		customer = database.Customer{
			UserID: userID,
			Name:   name,
			Phone:  input.CustomerPhone,
			Email:  input.CustomerEmail,
		}
		err = tx.Create(&customer).Error
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Build items with price/cost snapshots and compute totals
	var items []database.SaleItem
	var lines []stock.Line
	var totalAmount, totalCost float64

	for _, line := range input.Items {
		var product database.Product
		if err := tx.Where("id = ? AND user_id = ?", line.ProductID, userID).First(&product).Error; err != nil {
			tx.Rollback()
			if err == gorm.ErrRecordNotFound {
				return nil, &ValidationError{Msg: "product not found: " + line.ProductID.String()}
			}
			return nil, err
		}

		unitPrice := product.SellingPrice
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}

		items = append(items, database.SaleItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			UnitCost:  product.Cost,
		})
		lines = append(lines, stock.Line{ProductID: product.ID, Quantity: line.Quantity})
		totalAmount += unitPrice * float64(line.Quantity)
		totalCost += product.Cost * float64(line.Quantity)
	}

	if err := stock.Reserve(tx, userID, lines); err != nil {
		tx.Rollback()
		return nil, err
	}

	saleDate := time.Now()
	if input.SaleDate != nil {
		saleDate = *input.SaleDate
	}

	sale := database.Sale{
		UserID:        userID,
		CustomerID:    customer.ID,
		Items:         items,
		TotalAmount:   totalAmount,
		TotalCost:     totalCost,
		PaymentStatus: status,
		SaleDate:      saleDate,
		DueDate:       input.DueDate,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// An unpaid sale opens a debtor in the same transaction
	if status != StatusPaid {
		debtor := database.Debtor{
			UserID:     userID,
			SaleID:     sale.ID,
			CustomerID: customer.ID,
			AmountOwed: totalAmount,
			DueDate:    *input.DueDate,
			IsResolved: false,
		}
		if err := tx.Create(&debtor).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Reload with associations
	s.db.Preload("Items").Preload("Items.Product").Preload("Customer").First(&sale, sale.ID)

	return &sale, nil
}

// DeleteSale voids a sale: each line's quantity goes back onto product stock,
// the items and the sale are removed, and any debtor for the sale is removed
// with it so no obligation outlives its sale.
func (s *Service) DeleteSale(userID, saleID uuid.UUID) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var sale database.Sale
	if err := tx.Where("id = ? AND user_id = ?", saleID, userID).Preload("Items").First(&sale).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	lines := make([]stock.Line, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, stock.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	if err := stock.Release(tx, userID, lines); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("sale_id = ?", sale.ID).Delete(&database.SaleItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("sale_id = ?", sale.ID).Delete(&database.Debtor{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&sale).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// List returns the user's sales, newest first
func (s *Service) List(userID uuid.UUID) ([]database.Sale, error) {
	var sales []database.Sale
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		Order("sale_date DESC").
		Find(&sales).Error
	return sales, err
}

// Get returns a single sale
func (s *Service) Get(userID, saleID uuid.UUID) (*database.Sale, error) {
	var sale database.Sale
	err := s.db.Where("id = ? AND user_id = ?", saleID, userID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer").
		First(&sale).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
