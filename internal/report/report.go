// Package report derives sales analytics from the ledger. Everything here
// is a pure function of its inputs: no caching, no hidden state, safe to
// recompute on every read at single-shop data volumes.
package report

import (
	"sort"
	"time"

	"shoetrack/internal/models"
)

// DailyRevenue is one bucket of the trailing seven-day revenue trend
type DailyRevenue struct {
	Day     string `json:"day"`
	Revenue int64  `json:"revenue"`
}

// ProductCount is one entry of the top-products ranking
type ProductCount struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// Summary is the full analytics view over the ledger
type Summary struct {
	TotalRevenue      int64          `json:"total_revenue"`
	TotalUnits        int            `json:"total_units"`
	AverageOrderValue int64          `json:"average_order_value"`
	DailyRevenue      []DailyRevenue `json:"daily_revenue"`
	TopProducts       []ProductCount `json:"top_products"`
}

// TopProductLimit caps the top-products ranking
const TopProductLimit = 5

// Summarize computes the analytics summary for the ledger as of now
func Summarize(ledger []models.SaleRecord) Summary {
	return summarizeAt(ledger, time.Now())
}

// summarizeAt is Summarize with an injectable clock for the trend window
func summarizeAt(ledger []models.SaleRecord, now time.Time) Summary {
	var revenue int64
	units := 0
	for _, sale := range ledger {
		revenue += sale.TotalPrice
		units += sale.Quantity
	}

	var avg int64
	if len(ledger) > 0 {
		avg = revenue / int64(len(ledger))
	}

	return Summary{
		TotalRevenue:      revenue,
		TotalUnits:        units,
		AverageOrderValue: avg,
		DailyRevenue:      dailyRevenue(ledger, now),
		TopProducts:       TopProducts(ledger, TopProductLimit),
	}
}

// dailyRevenue buckets revenue into the trailing seven calendar days,
// labelled and matched by weekday name. Matching by weekday name means
// sales more than seven days apart that share a weekday land in the same
// bucket; this mirrors the established report semantics.
func dailyRevenue(ledger []models.SaleRecord, now time.Time) []DailyRevenue {
	out := make([]DailyRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("Mon")
		var revenue int64
		for _, sale := range ledger {
			if sale.Timestamp.Format("Mon") == day {
				revenue += sale.TotalPrice
			}
		}
		out = append(out, DailyRevenue{Day: day, Revenue: revenue})
	}
	return out
}

// TopProducts ranks products by units sold, grouped by the denormalized
// product name, descending. Ties keep first-sale order.
func TopProducts(ledger []models.SaleRecord, limit int) []ProductCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, sale := range ledger {
		if _, seen := counts[sale.ProductName]; !seen {
			order = append(order, sale.ProductName)
		}
		counts[sale.ProductName] += sale.Quantity
	}

	ranked := make([]ProductCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, ProductCount{Name: name, Units: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Units > ranked[j].Units
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
