package debt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanifauzan/bisnisku-backend/internal/debt"
	"github.com/hanifauzan/bisnisku-backend/internal/sales"
	"github.com/hanifauzan/bisnisku-backend/internal/testutil"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// pendingSale records a pending sale through the real sale flow and returns
// the debtor it opened
func pendingSale(t *testing.T, db *gorm.DB, userID uuid.UUID, due time.Time) database.Debtor {
	t.Helper()

	p := database.Product{
		UserID:       userID,
		Name:         "Es Kopi " + uuid.New().String()[:8],
		Cost:         10,
		SellingPrice: 15,
		StockQty:     100,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&p).Error)

	sale, err := sales.NewService(db).CreateSale(userID, sales.CreateSaleInput{
		CustomerName:  "Budi",
		Items:         []sales.CartLine{{ProductID: p.ID, Quantity: 2}},
		PaymentStatus: sales.StatusPending,
		DueDate:       &due,
	})
	require.NoError(t, err)

	var debtor database.Debtor
	require.NoError(t, db.Where("sale_id = ?", sale.ID).First(&debtor).Error)
	return debtor
}

func TestMarkPaidResolvesDebtorAndSale(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := debt.NewService(db)
	userID := uuid.New()
	debtor := pendingSale(t, db, userID, time.Now().Add(48*time.Hour))

	resolved, err := svc.MarkPaid(userID, debtor.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)

	// Both records moved together: resolved debtor implies paid sale
	var sale database.Sale
	require.NoError(t, db.First(&sale, debtor.SaleID).Error)
	assert.Equal(t, sales.StatusPaid, sale.PaymentStatus)

	var stored database.Debtor
	require.NoError(t, db.First(&stored, debtor.ID).Error)
	assert.True(t, stored.IsResolved)
	assert.True(t, stored.UpdatedAt.After(debtor.UpdatedAt) || stored.UpdatedAt.Equal(debtor.UpdatedAt))
}

func TestMarkPaidTwice(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := debt.NewService(db)
	userID := uuid.New()
	debtor := pendingSale(t, db, userID, time.Now().Add(48*time.Hour))

	_, err := svc.MarkPaid(userID, debtor.ID)
	require.NoError(t, err)

	_, err = svc.MarkPaid(userID, debtor.ID)
	assert.ErrorIs(t, err, debt.ErrAlreadyResolved)
}

func TestMarkPaidUnknownDebtor(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := debt.NewService(db)

	_, err := svc.MarkPaid(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, debt.ErrNotFound)
}

func TestMarkPaidScopedToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := debt.NewService(db)
	owner := uuid.New()
	debtor := pendingSale(t, db, owner, time.Now().Add(48*time.Hour))

	_, err := svc.MarkPaid(uuid.New(), debtor.ID)
	assert.ErrorIs(t, err, debt.ErrNotFound)
}

func TestListOpenOrdersByDueDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := debt.NewService(db)
	userID := uuid.New()

	late := pendingSale(t, db, userID, time.Now().Add(21*24*time.Hour))
	soon := pendingSale(t, db, userID, time.Now().Add(24*time.Hour))
	mid := pendingSale(t, db, userID, time.Now().Add(7*24*time.Hour))

	// Resolved debts drop out of the open list
	_, err := svc.MarkPaid(userID, mid.ID)
	require.NoError(t, err)

	open, err := svc.ListOpen(userID)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, soon.ID, open[0].ID)
	assert.Equal(t, late.ID, open[1].ID)
	require.NotNil(t, open[0].Customer)
	require.NotNil(t, open[0].Sale)
}

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		due      time.Time
		urgency  string
		daysLeft int
	}{
		{"exactly now is due today, not overdue", now, debt.ClassDueSoon, 0},
		{"one millisecond past is overdue", now.Add(-time.Millisecond), debt.ClassOverdue, 0},
		{"a day past", now.Add(-26 * time.Hour), debt.ClassOverdue, -1},
		{"a tenth of a day away rounds up to one day", now.Add(144 * time.Minute), debt.ClassDueSoon, 1},
		{"three days away", now.Add(3 * 24 * time.Hour), debt.ClassDueSoon, 3},
		{"exactly seven days away", now.Add(7 * 24 * time.Hour), debt.ClassDueSoon, 7},
		{"just over seven days away", now.Add(7*24*time.Hour + time.Minute), debt.ClassOnTrack, 8},
		{"a month away", now.Add(30 * 24 * time.Hour), debt.ClassOnTrack, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.urgency, debt.Classify(tc.due, now))
			assert.Equal(t, tc.daysLeft, debt.DaysUntilDue(tc.due, now))
		})
	}
}
