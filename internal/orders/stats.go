package orders

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcare/dispensary-backend/pkg/db/models"
)

const dayFormat = "2006-01-02"

// DayStat aggregates orders that share a UTC calendar date.
type DayStat struct {
	Date       string          `json:"date"`
	OrderCount int             `json:"orderCount"`
	GramsTotal int             `json:"gramsTotal"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DashboardStats is the aggregate view served to the dashboard.
type DashboardStats struct {
	TotalOrders  int             `json:"totalOrders"`
	TotalGrams   int             `json:"totalGrams"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	PerDay       []DayStat       `json:"perDay"`
}

// GroupByDay buckets orders by the UTC date portion of their creation
// timestamp. Every distinct date yields exactly one entry and the entry
// counts sum to len(orders). Revenue uses the product's current per-gram
// price; orders referencing an unknown product contribute zero revenue.
func GroupByDay(orders []models.Order, catalog []models.Product) []DayStat {
	prices := make(map[uuid.UUID]decimal.Decimal, len(catalog))
	for _, product := range catalog {
		prices[product.ID] = product.PricePerGram
	}

	buckets := make(map[string]*DayStat)
	for _, order := range orders {
		date := order.CreatedAt.UTC().Format(dayFormat)
		stat, ok := buckets[date]
		if !ok {
			stat = &DayStat{Date: date, Revenue: decimal.Zero}
			buckets[date] = stat
		}
		stat.OrderCount++
		stat.GramsTotal += order.QuantityGrams
		if price, ok := prices[order.ProductID]; ok {
			stat.Revenue = stat.Revenue.Add(price.Mul(decimal.NewFromInt(int64(order.QuantityGrams))))
		}
	}

	stats := make([]DayStat, 0, len(buckets))
	for _, stat := range buckets {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}

// BuildStats computes the dashboard aggregate from a snapshot of orders and
// the product catalog.
func BuildStats(orders []models.Order, catalog []models.Product) *DashboardStats {
	perDay := GroupByDay(orders, catalog)

	stats := &DashboardStats{
		TotalRevenue: decimal.Zero,
		PerDay:       perDay,
	}
	for _, day := range perDay {
		stats.TotalOrders += day.OrderCount
		stats.TotalGrams += day.GramsTotal
		stats.TotalRevenue = stats.TotalRevenue.Add(day.Revenue)
	}
	return stats
}
