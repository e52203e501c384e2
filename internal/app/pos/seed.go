package pos

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	catalogtypes "github.com/Apurer/go-pos-core/internal/domains/catalog/application/types"
	customertypes "github.com/Apurer/go-pos-core/internal/domains/customers/application/types"
)

var sampleCustomers = []customertypes.AddCustomerInput{
	{Name: "John Smith", Contact: "555-0101", Address: "123 Main St, City"},
	{Name: "Sarah Johnson", Contact: "555-0102", Address: "456 Oak Ave, Town"},
	{Name: "Mike Wilson", Contact: "555-0103", Address: "789 Pine Rd, Village"},
}

var sampleItems = []catalogtypes.AddItemInput{
	{Code: "CHOC001", Name: "Chocolate Cake", Price: decimal.RequireFromString("25.99"), Stock: 15},
	{Code: "VAN001", Name: "Vanilla Cake", Price: decimal.RequireFromString("22.99"), Stock: 20},
	{Code: "STRAW001", Name: "Strawberry Cake", Price: decimal.RequireFromString("28.99"), Stock: 12},
	{Code: "RED001", Name: "Red Velvet Cake", Price: decimal.RequireFromString("32.99"), Stock: 10},
	{Code: "CARA001", Name: "Caramel Cake", Price: decimal.RequireFromString("29.99"), Stock: 8},
	{Code: "CUP001", Name: "Cupcakes Six Pack", Price: decimal.RequireFromString("15.99"), Stock: 25},
	{Code: "BROW001", Name: "Brownies Four Pack", Price: decimal.RequireFromString("12.99"), Stock: 30},
	{Code: "COOK001", Name: "Cookies Dozen", Price: decimal.RequireFromString("9.99"), Stock: 40},
}

// SeedSampleData loads the demo cake shop customers and catalogue.
func (a *App) SeedSampleData(ctx context.Context) error {
	for _, input := range sampleCustomers {
		if _, err := a.Customers.Add(ctx, input); err != nil {
			return fmt.Errorf("seed customer %s: %w", input.Contact, err)
		}
	}
	for _, input := range sampleItems {
		if _, err := a.Catalog.Add(ctx, input); err != nil {
			return fmt.Errorf("seed item %s: %w", input.Code, err)
		}
	}
	return nil
}
