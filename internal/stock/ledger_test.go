package stock_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/stock"
	"github.com/hanifauzan/bisnisku-backend/internal/testutil"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, qty int) database.Product {
	t.Helper()
	p := database.Product{
		UserID:       userID,
		Name:         name,
		Cost:         10,
		SellingPrice: 15,
		StockQty:     qty,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var p database.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.StockQty
}

func TestReserveDecrementsStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := uuid.New()
	a := seedProduct(t, db, userID, "Kopi Susu", 10)
	b := seedProduct(t, db, userID, "Roti Bakar", 5)

	err := stock.Reserve(db, userID, []stock.Line{
		{ProductID: a.ID, Quantity: 4},
		{ProductID: b.ID, Quantity: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, stockOf(t, db, a.ID))
	assert.Equal(t, 0, stockOf(t, db, b.ID))
}

func TestReserveInsufficientStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := uuid.New()
	a := seedProduct(t, db, userID, "Kopi Susu", 3)
	b := seedProduct(t, db, userID, "Roti Bakar", 2)

	err := stock.Reserve(db, userID, []stock.Line{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 5},
	})

	var insufficientErr *stock.InsufficientStockError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, []string{"Roti Bakar"}, insufficientErr.Products)
	assert.Contains(t, err.Error(), "Roti Bakar")

	// No line moved, not even the one that had enough stock
	assert.Equal(t, 3, stockOf(t, db, a.ID))
	assert.Equal(t, 2, stockOf(t, db, b.ID))
}

func TestReserveReportsEveryShortLine(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := uuid.New()
	a := seedProduct(t, db, userID, "Kopi Susu", 1)
	b := seedProduct(t, db, userID, "Roti Bakar", 1)

	err := stock.Reserve(db, userID, []stock.Line{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 2},
	})

	var insufficientErr *stock.InsufficientStockError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, []string{"Kopi Susu", "Roti Bakar"}, insufficientErr.Products)
}

func TestReserveUnknownProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := uuid.New()

	err := stock.Reserve(db, userID, []stock.Line{{ProductID: uuid.New(), Quantity: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReleaseRestoresWithoutUpperBound(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := uuid.New()
	a := seedProduct(t, db, userID, "Kopi Susu", 3)

	require.NoError(t, stock.Release(db, userID, []stock.Line{{ProductID: a.ID, Quantity: 100}}))
	assert.Equal(t, 103, stockOf(t, db, a.ID))
}

func TestReserveThenReleaseRoundTrips(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := uuid.New()
	a := seedProduct(t, db, userID, "Kopi Susu", 8)

	lines := []stock.Line{{ProductID: a.ID, Quantity: 5}}
	require.NoError(t, stock.Reserve(db, userID, lines))
	assert.Equal(t, 3, stockOf(t, db, a.ID))

	require.NoError(t, stock.Release(db, userID, lines))
	assert.Equal(t, 8, stockOf(t, db, a.ID))
}
