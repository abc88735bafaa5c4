package pos

import (
	"context"
	"sort"
	"time"

	"gestorpro/internal/models"
	"gestorpro/internal/rbac"
)

// TopSeller is one row of the best-sellers ranking.
type TopSeller struct {
	ProductName string  `json:"product_name"`
	Sold        float64 `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

// SalesReport summarizes the sale history for the reporting tools.
type SalesReport struct {
	TotalRevenue float64       `json:"total_revenue"`
	TotalSales   int           `json:"total_sales"`
	TopSelling   []TopSeller   `json:"top_selling"`
	RecentSales  []models.Sale `json:"recent_sales"`
}

// Report computes revenue, sale count and the top 5 sellers over [from, to].
// Zero bounds mean unbounded on that side.
func (f *Facade) Report(ctx context.Context, from, to time.Time, actor *models.Employee) (SalesReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModTools, rbac.ActView); err != nil {
		return SalesReport{}, err
	}

	var report SalesReport
	byName := map[string]*TopSeller{}

	sales := f.store.Sales(ctx)
	for _, s := range sales {
		when, err := time.Parse(time.RFC3339, s.Date)
		if err == nil {
			if !from.IsZero() && when.Before(from) {
				continue
			}
			if !to.IsZero() && when.After(to) {
				continue
			}
		}

		report.TotalRevenue += s.Total
		report.TotalSales++
		for _, item := range s.Items {
			row, ok := byName[item.Name]
			if !ok {
				row = &TopSeller{ProductName: item.Name}
				byName[item.Name] = row
			}
			row.Sold += item.Quantity
			row.Revenue += item.LineTotal()
		}
	}

	for _, row := range byName {
		report.TopSelling = append(report.TopSelling, *row)
	}
	sort.Slice(report.TopSelling, func(i, j int) bool {
		return report.TopSelling[i].Sold > report.TopSelling[j].Sold
	})
	if len(report.TopSelling) > 5 {
		report.TopSelling = report.TopSelling[:5]
	}

	// Last 10 sales, newest first.
	recent := append([]models.Sale(nil), sales...)
	sort.Slice(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > 10 {
		recent = recent[:10]
	}
	report.RecentSales = recent

	return report, nil
}
