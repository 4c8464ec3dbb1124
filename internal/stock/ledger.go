package stock

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"gorm.io/gorm"
)

// Line is one product quantity to reserve or release
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// InsufficientStockError reports every product whose stock could not cover the request
type InsufficientStockError struct {
	Products []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for: %s", strings.Join(e.Products, ", "))
}

// Reserve decrements stock for every line. It validates all lines before
// touching any row, so a failed reservation leaves stock unchanged. Callers
// pass their own transaction handle so the decrement joins the sale's
// transaction.
func Reserve(tx *gorm.DB, userID uuid.UUID, lines []Line) error {
	products := make([]database.Product, 0, len(lines))
	var short []string

	for _, line := range lines {
		var product database.Product
		if err := tx.Where("id = ? AND user_id = ?", line.ProductID, userID).First(&product).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("product %s not found", line.ProductID)
			}
			return err
		}
		if product.StockQty < line.Quantity {
			short = append(short, product.Name)
		}
		products = append(products, product)
	}

	if len(short) > 0 {
		return &InsufficientStockError{Products: short}
	}

	for i, line := range lines {
		if err := tx.Model(&products[i]).
			Update("stock_qty", gorm.Expr("stock_qty - ?", line.Quantity)).Error; err != nil {
			return err
		}
	}

	return nil
}

// Release increments stock for every line. Restoring has no upper bound;
// voiding a sale may push stock past any previous level.
func Release(tx *gorm.DB, userID uuid.UUID, lines []Line) error {
	for _, line := range lines {
		if err := tx.Model(&database.Product{}).
			Where("id = ? AND user_id = ?", line.ProductID, userID).
			Update("stock_qty", gorm.Expr("stock_qty + ?", line.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}
