// Package application aggregates the headline figures shown on the shop dashboard.
package application

import (
	"context"

	"github.com/shopspring/decimal"

	catalogports "github.com/Apurer/go-pos-core/internal/domains/catalog/ports"
	customerports "github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	orderports "github.com/Apurer/go-pos-core/internal/domains/orders/ports"
)

// DefaultLowStockThreshold marks items with fewer units than this as running low.
const DefaultLowStockThreshold = 5

// Snapshot is one read of the dashboard figures.
type Snapshot struct {
	TotalCustomers    int
	TotalItems        int
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	TodayOrders       int
	TodayRevenue      decimal.Decimal
	LowStockCount     int
	OutOfStockCount   int
}

// StatisticsView reads the three stores to build a Snapshot.
type StatisticsView struct {
	customers         customerports.Service
	catalog           catalogports.Service
	orders            orderports.Service
	lowStockThreshold int
}

func NewStatisticsView(customers customerports.Service, catalog catalogports.Service, orders orderports.Service, lowStockThreshold int) *StatisticsView {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &StatisticsView{
		customers:         customers,
		catalog:           catalog,
		orders:            orders,
		lowStockThreshold: lowStockThreshold,
	}
}

func (v *StatisticsView) Snapshot(ctx context.Context) (Snapshot, error) {
	customers, err := v.customers.Count(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	items, err := v.catalog.Count(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	low, err := v.catalog.LowStock(ctx, v.lowStockThreshold)
	if err != nil {
		return Snapshot{}, err
	}
	out, err := v.catalog.OutOfStock(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	stats, err := v.orders.Statistics(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		TotalCustomers:    customers,
		TotalItems:        items,
		TotalOrders:       stats.Count,
		TotalRevenue:      stats.TotalRevenue,
		AverageOrderValue: stats.AverageOrderValue,
		TodayOrders:       stats.TodayCount,
		TodayRevenue:      stats.TodayRevenue,
		LowStockCount:     len(low),
		OutOfStockCount:   len(out),
	}, nil
}
