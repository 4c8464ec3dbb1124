// Package report holds the shared aggregation logic consumed by the
// dashboard, debtor, and report endpoints. Every function here is a pure
// function of its inputs: the caller fetches a snapshot of sales (with items
// and products preloaded) and debtors, and the same snapshot always produces
// the same result. Empty input yields zero totals and empty groupings.
package report

import (
	"sort"
	"time"

	"github.com/hanifauzan/bisnisku-backend/internal/sales"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
)

// Summary are the headline numbers for a set of sales. Profit is recognized
// as realized only once a sale is paid; unpaid sales contribute to the
// potential figure instead.
type Summary struct {
	Revenue         float64 `json:"revenue"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	RealizedProfit  float64 `json:"realized_profit"`
	PotentialProfit float64 `json:"potential_profit"`
	SaleCount       int     `json:"sale_count"`
}

// GroupTotals aggregates sale items under one category or product name
type GroupTotals struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Profit   float64 `json:"profit"`
}

// TrendPoint is one bucket of a chronological revenue series
type TrendPoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Cost    float64   `json:"cost"`
	Profit  float64   `json:"profit"`
}

// WindowSales filters sales to the half-open interval [start, end)
func WindowSales(all []database.Sale, start, end time.Time) []database.Sale {
	var out []database.Sale
	for _, s := range all {
		if !s.SaleDate.Before(start) && s.SaleDate.Before(end) {
			out = append(out, s)
		}
	}
	return out
}

// Summarize reduces sales to their headline totals
func Summarize(sale []database.Sale) Summary {
	var sum Summary
	for _, s := range sale {
		profit := s.TotalAmount - s.TotalCost
		sum.Revenue += s.TotalAmount
		sum.Cost += s.TotalCost
		sum.Profit += profit
		if s.PaymentStatus == sales.StatusPaid {
			sum.RealizedProfit += profit
		} else {
			sum.PotentialProfit += profit
		}
		sum.SaleCount++
	}
	return sum
}

// ByCategory groups sale items by their product's category
func ByCategory(sale []database.Sale) []GroupTotals {
	return groupItems(sale, func(item database.SaleItem) string {
		if item.Product.Category == "" {
			return "uncategorized"
		}
		return item.Product.Category
	})
}

// ByProduct groups sale items by product name
func ByProduct(sale []database.Sale) []GroupTotals {
	return groupItems(sale, func(item database.SaleItem) string {
		return item.Product.Name
	})
}

// TopProducts returns the n most profitable products, best first
func TopProducts(sale []database.Sale, n int) []GroupTotals {
	groups := ByProduct(sale)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Profit > groups[j].Profit
	})
	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

func groupItems(sale []database.Sale, key func(database.SaleItem) string) []GroupTotals {
	byKey := make(map[string]*GroupTotals)
	var order []string

	for _, s := range sale {
		for _, item := range s.Items {
			k := key(item)
			g, ok := byKey[k]
			if !ok {
				g = &GroupTotals{Name: k}
				byKey[k] = g
				order = append(order, k)
			}
			revenue := item.UnitPrice * float64(item.Quantity)
			cost := item.UnitCost * float64(item.Quantity)
			g.Quantity += item.Quantity
			g.Revenue += revenue
			g.Cost += cost
			g.Profit += revenue - cost
		}
	}

	sort.Strings(order)
	groups := make([]GroupTotals, 0, len(order))
	for _, k := range order {
		groups = append(groups, *byKey[k])
	}
	return groups
}

// Trend buckets the window into intervals of the given size (a day for
// daily/weekly/monthly views, ~30 days for yearly) and reduces each bucket,
// oldest first. The final bucket is clipped to the window end.
func Trend(sale []database.Sale, start, end time.Time, bucket time.Duration) []TrendPoint {
	if bucket <= 0 || !start.Before(end) {
		return nil
	}

	var points []TrendPoint
	for b := start; b.Before(end); b = b.Add(bucket) {
		stop := b.Add(bucket)
		if stop.After(end) {
			stop = end
		}
		sum := Summarize(WindowSales(sale, b, stop))
		points = append(points, TrendPoint{
			Date:    b,
			Revenue: sum.Revenue,
			Cost:    sum.Cost,
			Profit:  sum.Profit,
		})
	}
	return points
}

// OutstandingTotal sums what is still owed across unresolved debtors
func OutstandingTotal(debtors []database.Debtor) float64 {
	var total float64
	for _, d := range debtors {
		if !d.IsResolved {
			total += d.AmountOwed
		}
	}
	return total
}

// ResolvedTotal sums collected debts
func ResolvedTotal(debtors []database.Debtor) float64 {
	var total float64
	for _, d := range debtors {
		if d.IsResolved {
			total += d.AmountOwed
		}
	}
	return total
}

// OverdueCount counts unresolved debtors already past due at the given time
func OverdueCount(debtors []database.Debtor, now time.Time) int {
	var count int
	for _, d := range debtors {
		if !d.IsResolved && d.DueDate.Before(now) {
			count++
		}
	}
	return count
}
