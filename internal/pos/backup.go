package pos

import (
	"context"
	"encoding/json"

	"gestorpro/internal/models"
	"gestorpro/internal/rbac"
)

// BackupVersion tags the export format.
const BackupVersion = "1.0"

// Backup is the single-document aggregate of every collection. Config is a
// pointer so an import can tell "absent" from "empty".
type Backup struct {
	Config     *models.BusinessConfig `json:"config"`
	Products   []models.Product       `json:"products"`
	Suppliers  []models.Supplier      `json:"suppliers"`
	Customers  []models.Customer      `json:"customers"`
	Employees  []models.Employee      `json:"employees"`
	Sales      []models.Sale          `json:"sales"`
	Expenses   []models.Expense       `json:"expenses"`
	Quotations []models.Quotation     `json:"quotations"`
	Logs       []models.InventoryLog  `json:"logs"`
	Timestamp  string                 `json:"timestamp"`
	Version    string                 `json:"version"`
}

// Export aggregates every collection into one document.
func (f *Facade) Export(ctx context.Context, actor *models.Employee) (Backup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModSettings, rbac.ActView); err != nil {
		return Backup{}, err
	}

	cfg := f.store.Config(ctx)
	return Backup{
		Config:     &cfg,
		Products:   f.store.Products(ctx),
		Suppliers:  f.store.Suppliers(ctx),
		Customers:  f.store.Customers(ctx),
		Employees:  f.store.Employees(ctx),
		Sales:      f.store.Sales(ctx),
		Expenses:   f.store.Expenses(ctx),
		Quotations: f.store.Quotations(ctx),
		Logs:       f.store.Logs(ctx),
		Timestamp:  f.timestamp(),
		Version:    BackupVersion,
	}, nil
}

// Import validates a backup document and then fully replaces every
// collection with its contents. There is no merging: a restore brings the
// installation back to exactly the exported state. A failed write restores
// the collections already replaced.
func (f *Facade) Import(ctx context.Context, b Backup, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModSettings, rbac.ActEdit); err != nil {
		return err
	}
	if b.Version == "" {
		return &models.ValidationError{Field: "version", Reason: "backup file has no version tag"}
	}
	if b.Config == nil {
		return &models.ValidationError{Field: "config", Reason: "backup file has no configuration section"}
	}

	// Snapshot everything so a mid-restore write failure can be unwound.
	prev := Backup{
		Products:   f.store.Products(ctx),
		Suppliers:  f.store.Suppliers(ctx),
		Customers:  f.store.Customers(ctx),
		Employees:  f.store.Employees(ctx),
		Sales:      f.store.Sales(ctx),
		Expenses:   f.store.Expenses(ctx),
		Quotations: f.store.Quotations(ctx),
		Logs:       f.store.Logs(ctx),
	}
	prevCfg := f.store.Config(ctx)
	prev.Config = &prevCfg

	if err := f.writeAll(ctx, b); err != nil {
		_ = f.writeAll(ctx, prev) // best effort
		return err
	}
	return nil
}

// ImportJSON decodes and imports a raw backup document.
func (f *Facade) ImportJSON(ctx context.Context, data []byte, actor *models.Employee) error {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return &models.ValidationError{Field: "file", Reason: "not a valid backup document"}
	}
	return f.Import(ctx, b, actor)
}

func (f *Facade) writeAll(ctx context.Context, b Backup) error {
	if err := f.store.SetProducts(ctx, emptyIfNil(b.Products)); err != nil {
		return err
	}
	if err := f.store.SetSuppliers(ctx, emptyIfNil(b.Suppliers)); err != nil {
		return err
	}
	if err := f.store.SetCustomers(ctx, emptyIfNil(b.Customers)); err != nil {
		return err
	}
	if err := f.store.SetEmployees(ctx, emptyIfNil(b.Employees)); err != nil {
		return err
	}
	if err := f.store.SetSales(ctx, emptyIfNil(b.Sales)); err != nil {
		return err
	}
	if err := f.store.SetExpenses(ctx, emptyIfNil(b.Expenses)); err != nil {
		return err
	}
	if err := f.store.SetQuotations(ctx, emptyIfNil(b.Quotations)); err != nil {
		return err
	}
	if err := f.store.SetLogs(ctx, emptyIfNil(b.Logs)); err != nil {
		return err
	}
	return f.store.SetConfig(ctx, *b.Config)
}

func emptyIfNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
