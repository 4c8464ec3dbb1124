package report_test

import (
	"testing"
	"time"

	"github.com/hanifauzan/bisnisku-backend/internal/report"
	"github.com/hanifauzan/bisnisku-backend/internal/sales"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC)
}

func sale(saleDate time.Time, status string, items ...database.SaleItem) database.Sale {
	var amount, cost float64
	for _, item := range items {
		amount += item.UnitPrice * float64(item.Quantity)
		cost += item.UnitCost * float64(item.Quantity)
	}
	return database.Sale{
		SaleDate:      saleDate,
		PaymentStatus: status,
		TotalAmount:   amount,
		TotalCost:     cost,
		Items:         items,
	}
}

func item(category, product string, qty int, price, cost float64) database.SaleItem {
	return database.SaleItem{
		Product:   database.Product{Name: product, Category: category},
		Quantity:  qty,
		UnitPrice: price,
		UnitCost:  cost,
	}
}

func fixture() []database.Sale {
	return []database.Sale{
		sale(day(1), sales.StatusPaid,
			item("minuman", "Es Kopi", 2, 15, 10),
			item("makanan", "Roti Bakar", 1, 20, 12)),
		sale(day(3), sales.StatusPending,
			item("minuman", "Es Kopi", 4, 15, 10)),
		sale(day(5), sales.StatusPaid,
			item("makanan", "Roti Bakar", 3, 20, 12)),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := report.Summarize(nil)
	assert.Zero(t, sum.Revenue)
	assert.Zero(t, sum.Cost)
	assert.Zero(t, sum.Profit)
	assert.Zero(t, sum.RealizedProfit)
	assert.Zero(t, sum.PotentialProfit)
	assert.Zero(t, sum.SaleCount)
}

func TestSummarize(t *testing.T) {
	sum := report.Summarize(fixture())

	assert.Equal(t, 50.0+60+60, sum.Revenue)
	assert.Equal(t, 32.0+40+36, sum.Cost)
	assert.Equal(t, sum.Revenue-sum.Cost, sum.Profit)

	// Profit is realized only once a sale is paid
	assert.Equal(t, (50.0-32)+(60-36), sum.RealizedProfit)
	assert.Equal(t, 60.0-40, sum.PotentialProfit)
	assert.Equal(t, 3, sum.SaleCount)
}

func TestWindowSalesHalfOpen(t *testing.T) {
	all := fixture()

	window := report.WindowSales(all, day(1), day(5))
	require.Len(t, window, 2)
	assert.Equal(t, day(1), window[0].SaleDate)
	assert.Equal(t, day(3), window[1].SaleDate)

	// Start is inclusive, end exclusive
	assert.Len(t, report.WindowSales(all, day(5), day(6)), 1)
	assert.Empty(t, report.WindowSales(all, day(6), day(1)))
}

func TestByCategory(t *testing.T) {
	groups := report.ByCategory(fixture())
	require.Len(t, groups, 2)

	assert.Equal(t, "makanan", groups[0].Name)
	assert.Equal(t, 4, groups[0].Quantity)
	assert.Equal(t, 80.0, groups[0].Revenue)
	assert.Equal(t, 48.0, groups[0].Cost)
	assert.Equal(t, 32.0, groups[0].Profit)

	assert.Equal(t, "minuman", groups[1].Name)
	assert.Equal(t, 6, groups[1].Quantity)
	assert.Equal(t, 90.0, groups[1].Revenue)
	assert.Equal(t, 30.0, groups[1].Profit)
}

func TestByCategoryUncategorized(t *testing.T) {
	groups := report.ByCategory([]database.Sale{
		sale(day(1), sales.StatusPaid, item("", "Misc", 1, 10, 5)),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, "uncategorized", groups[0].Name)
}

func TestTopProducts(t *testing.T) {
	top := report.TopProducts(fixture(), 10)
	require.Len(t, top, 2)

	// Roti Bakar profit 32 beats Es Kopi profit 30
	assert.Equal(t, "Roti Bakar", top[0].Name)
	assert.Equal(t, "Es Kopi", top[1].Name)

	truncated := report.TopProducts(fixture(), 1)
	require.Len(t, truncated, 1)
	assert.Equal(t, "Roti Bakar", truncated[0].Name)
}

func TestTrendDailyBuckets(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)

	points := report.Trend(fixture(), start, end, 24*time.Hour)
	require.Len(t, points, 4)

	assert.Equal(t, start, points[0].Date)
	assert.Equal(t, 50.0, points[0].Revenue)
	assert.Zero(t, points[1].Revenue)
	assert.Equal(t, 60.0, points[2].Revenue)
	// The day-5 sale falls outside [start, end) and is not counted anywhere
	assert.Zero(t, points[3].Revenue)

	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Date.After(points[i-1].Date))
	}
}

func TestTrendEmptyAndDegenerate(t *testing.T) {
	assert.Nil(t, report.Trend(nil, day(5), day(1), 24*time.Hour))
	assert.Nil(t, report.Trend(fixture(), day(1), day(5), 0))

	points := report.Trend(nil, day(1), day(3), 24*time.Hour)
	require.Len(t, points, 2)
	assert.Zero(t, points[0].Revenue)
}

func TestAggregationIsIdempotent(t *testing.T) {
	snapshot := fixture()

	assert.Equal(t, report.Summarize(snapshot), report.Summarize(snapshot))
	assert.Equal(t, report.ByCategory(snapshot), report.ByCategory(snapshot))
	assert.Equal(t, report.TopProducts(snapshot, 10), report.TopProducts(snapshot, 10))
	assert.Equal(t,
		report.Trend(snapshot, day(1), day(6), 24*time.Hour),
		report.Trend(snapshot, day(1), day(6), 24*time.Hour))
}

func TestDebtorTotals(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	debtors := []database.Debtor{
		{AmountOwed: 100, DueDate: now.Add(-24 * time.Hour), IsResolved: false},
		{AmountOwed: 50, DueDate: now.Add(24 * time.Hour), IsResolved: false},
		{AmountOwed: 75, DueDate: now.Add(-48 * time.Hour), IsResolved: true},
	}

	assert.Equal(t, 150.0, report.OutstandingTotal(debtors))
	assert.Equal(t, 75.0, report.ResolvedTotal(debtors))
	assert.Equal(t, 1, report.OverdueCount(debtors, now))

	assert.Zero(t, report.OutstandingTotal(nil))
	assert.Zero(t, report.ResolvedTotal(nil))
	assert.Zero(t, report.OverdueCount(nil, now))
}
