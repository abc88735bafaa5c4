package store

import (
	"context"

	"gestorpro/internal/models"
)

// Typed accessors, one pair per persisted collection. Reads fall back to the
// seed defaults; writes replace the whole collection.

func (s *Store) Products(ctx context.Context) []models.Product {
	return Get(ctx, s, KeyProducts, SeedProducts())
}
func (s *Store) SetProducts(ctx context.Context, v []models.Product) error {
	return Set(ctx, s, KeyProducts, v)
}

func (s *Store) Suppliers(ctx context.Context) []models.Supplier {
	return Get(ctx, s, KeySuppliers, SeedSuppliers())
}
func (s *Store) SetSuppliers(ctx context.Context, v []models.Supplier) error {
	return Set(ctx, s, KeySuppliers, v)
}

func (s *Store) Customers(ctx context.Context) []models.Customer {
	return Get(ctx, s, KeyCustomers, SeedCustomers())
}
func (s *Store) SetCustomers(ctx context.Context, v []models.Customer) error {
	return Set(ctx, s, KeyCustomers, v)
}

func (s *Store) Employees(ctx context.Context) []models.Employee {
	return Get(ctx, s, KeyEmployees, SeedEmployees())
}
func (s *Store) SetEmployees(ctx context.Context, v []models.Employee) error {
	return Set(ctx, s, KeyEmployees, v)
}

func (s *Store) Sales(ctx context.Context) []models.Sale {
	return Get(ctx, s, KeySales, []models.Sale{})
}
func (s *Store) SetSales(ctx context.Context, v []models.Sale) error {
	return Set(ctx, s, KeySales, v)
}

func (s *Store) Expenses(ctx context.Context) []models.Expense {
	return Get(ctx, s, KeyExpenses, []models.Expense{})
}
func (s *Store) SetExpenses(ctx context.Context, v []models.Expense) error {
	return Set(ctx, s, KeyExpenses, v)
}

func (s *Store) Quotations(ctx context.Context) []models.Quotation {
	return Get(ctx, s, KeyQuotations, []models.Quotation{})
}
func (s *Store) SetQuotations(ctx context.Context, v []models.Quotation) error {
	return Set(ctx, s, KeyQuotations, v)
}

func (s *Store) Config(ctx context.Context) models.BusinessConfig {
	return Get(ctx, s, KeyConfig, SeedConfig())
}
func (s *Store) SetConfig(ctx context.Context, v models.BusinessConfig) error {
	return Set(ctx, s, KeyConfig, v)
}

func (s *Store) Logs(ctx context.Context) []models.InventoryLog {
	return Get(ctx, s, KeyLogs, []models.InventoryLog{})
}
func (s *Store) SetLogs(ctx context.Context, v []models.InventoryLog) error {
	return Set(ctx, s, KeyLogs, v)
}
