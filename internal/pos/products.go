package pos

import (
	"context"
	"fmt"
	"strings"

	"gestorpro/internal/importer"
	"gestorpro/internal/ledger"
	"gestorpro/internal/models"
	"gestorpro/internal/rbac"
)

// StockDirection picks the side of a manual stock movement.
type StockDirection string

const (
	StockReceive StockDirection = "RECEIVE" // goods coming in -> ENTRY
	StockIssue   StockDirection = "ISSUE"   // goods going out -> ADJUSTMENT
)

// ListProducts returns the catalog.
func (f *Facade) ListProducts(ctx context.Context) []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Products(ctx)
}

// SaveProduct creates or updates a product. An edit that changes the stock
// field directly is detected as a stock diff and logged (ENTRY when it went
// up, ADJUSTMENT when it went down) — a stock change never slips past the
// ledger just because it came through the edit form.
func (f *Facade) SaveProduct(ctx context.Context, p models.Product, actor *models.Employee) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	action := rbac.ActEdit
	if p.ID == "" {
		action = rbac.ActCreate
	}
	if err := f.allow(actor, rbac.ModInventory, action); err != nil {
		return models.Product{}, err
	}

	if strings.TrimSpace(p.Name) == "" {
		return models.Product{}, &models.ValidationError{Field: "name", Reason: "name is required"}
	}
	if p.Price < 0 {
		return models.Product{}, &models.ValidationError{Field: "price", Reason: "price cannot be negative"}
	}
	if p.Cost < 0 {
		return models.Product{}, &models.ValidationError{Field: "cost", Reason: "cost cannot be negative"}
	}

	products := f.store.Products(ctx)

	// The same name+category pair twice is almost always a double entry.
	for _, existing := range products {
		if existing.ID != p.ID &&
			strings.EqualFold(existing.Name, p.Name) &&
			strings.EqualFold(existing.Category, p.Category) {
			return models.Product{}, &models.ValidationError{Field: "name", Reason: "a product with this name already exists in this category"}
		}
	}

	who := ledger.ActorFor(actor)
	var (
		entry    models.InventoryLog
		hasEntry bool
	)

	if p.ID == "" {
		p.ID = f.newID()
		// Initial stock on a brand-new product is a diff against zero.
		entry, hasEntry = f.ledger.AdjustmentFor(models.Product{ID: p.ID, Name: p.Name}, p, who)
		products = append(products, p)
	} else {
		idx := indexByID(products, p.ID)
		if idx < 0 {
			return models.Product{}, ErrNotFound
		}
		entry, hasEntry = f.ledger.AdjustmentFor(products[idx], p, who)
		products[idx] = p
	}

	prevLogs := f.store.Logs(ctx)
	if hasEntry {
		if err := f.store.SetLogs(ctx, prependLogs(prevLogs, []models.InventoryLog{entry})); err != nil {
			return models.Product{}, err
		}
	}
	if err := f.store.SetProducts(ctx, products); err != nil {
		if hasEntry {
			f.restoreLogs(ctx, prevLogs)
		}
		return models.Product{}, err
	}
	return p, nil
}

// DeleteProduct retires a product: a final DELETION ledger entry with
// delta = -stock goes in first, then the record is removed, so the ledger
// for the product nets to zero.
func (f *Facade) DeleteProduct(ctx context.Context, id string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModInventory, rbac.ActDelete); err != nil {
		return err
	}

	products := f.store.Products(ctx)
	idx := indexByID(products, id)
	if idx < 0 {
		return ErrNotFound
	}

	entry := f.ledger.DeletionEntry(products[idx], ledger.ActorFor(actor))
	remaining := append(products[:idx:idx], products[idx+1:]...)

	prevLogs := f.store.Logs(ctx)
	if err := f.store.SetLogs(ctx, prependLogs(prevLogs, []models.InventoryLog{entry})); err != nil {
		return err
	}
	if err := f.store.SetProducts(ctx, remaining); err != nil {
		f.restoreLogs(ctx, prevLogs)
		return err
	}
	return nil
}

// AdjustStock is the dedicated receive/issue path: an ENTRY for deliveries,
// an ADJUSTMENT (negative) for stock going out. qty is always positive; the
// direction decides the sign.
func (f *Facade) AdjustStock(ctx context.Context, productID string, qty float64, direction StockDirection, actor *models.Employee) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModInventory, rbac.ActManageStock); err != nil {
		return models.Product{}, err
	}
	if qty <= 0 {
		return models.Product{}, &models.ValidationError{Field: "quantity", Reason: "quantity must be positive"}
	}

	delta := qty
	typ := models.LogEntry
	if direction == StockIssue {
		delta = -qty
		typ = models.LogAdjustment
	} else if direction != StockReceive {
		return models.Product{}, &models.ValidationError{Field: "direction", Reason: "direction must be RECEIVE or ISSUE"}
	}

	products := f.store.Products(ctx)
	idx := indexByID(products, productID)
	if idx < 0 {
		return models.Product{}, ErrNotFound
	}

	updated, entry, err := f.ledger.Apply(products[idx], delta, typ, ledger.ActorFor(actor))
	if err != nil {
		return models.Product{}, err
	}
	products[idx] = updated

	prevLogs := f.store.Logs(ctx)
	if err := f.store.SetLogs(ctx, prependLogs(prevLogs, []models.InventoryLog{entry})); err != nil {
		return models.Product{}, err
	}
	if err := f.store.SetProducts(ctx, products); err != nil {
		f.restoreLogs(ctx, prevLogs)
		return models.Product{}, err
	}
	return updated, nil
}

// ListInventoryLogs exposes the ledger, newest first. Audit visibility is a
// privileged view, so unlike the other listings it is permission-gated.
func (f *Facade) ListInventoryLogs(ctx context.Context, actor *models.Employee) ([]models.InventoryLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModInventory, rbac.ActAudit); err != nil {
		return nil, err
	}
	return f.store.Logs(ctx), nil
}

// ImportProducts ingests spreadsheet rows: one new product per row, plus one
// ENTRY ledger record per row that arrives with positive starting stock.
// Rows with zero (or negative) stock are imported without a ledger entry.
func (f *Facade) ImportProducts(ctx context.Context, rows []importer.ProductRow, actor *models.Employee) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModInventory, rbac.ActCreate); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "nothing to import"}
	}

	who := ledger.ActorFor(actor)
	products := f.store.Products(ctx)

	// Imported rows honor the same invariants as SaveProduct: non-negative
	// price and cost, and no duplicate name+category pair (against the
	// catalog or within the batch itself).
	seen := map[string]bool{}
	for _, existing := range products {
		seen[catalogKey(existing.Name, existing.Category)] = true
	}
	for i, row := range rows {
		if row.Price < 0 {
			return nil, &models.ValidationError{Field: "price", Reason: fmt.Sprintf("row %d: price cannot be negative", i+1)}
		}
		if row.Cost < 0 {
			return nil, &models.ValidationError{Field: "cost", Reason: fmt.Sprintf("row %d: cost cannot be negative", i+1)}
		}
		key := catalogKey(row.Name, row.Category)
		if seen[key] {
			return nil, &models.ValidationError{Field: "name", Reason: fmt.Sprintf("row %d: a product with this name already exists in this category", i+1)}
		}
		seen[key] = true
	}

	var (
		created    []models.Product
		newEntries []models.InventoryLog
	)

	for _, row := range rows {
		p := models.Product{
			ID:               f.newID(),
			Name:             row.Name,
			Description:      row.Description,
			Price:            row.Price,
			Cost:             row.Cost,
			Stock:            row.Stock,
			MinStock:         row.MinStock,
			Category:         row.Category,
			SupplierID:       row.SupplierID,
			MeasurementUnit:  row.Unit,
			MeasurementValue: 1,
		}
		products = append(products, p)
		created = append(created, p)

		if row.Stock > 0 {
			entry, _ := f.ledger.AdjustmentFor(models.Product{ID: p.ID, Name: p.Name}, p, who)
			newEntries = append(newEntries, entry)
		}
	}

	prevLogs := f.store.Logs(ctx)
	if len(newEntries) > 0 {
		if err := f.store.SetLogs(ctx, prependLogs(prevLogs, newEntries)); err != nil {
			return nil, err
		}
	}
	if err := f.store.SetProducts(ctx, products); err != nil {
		if len(newEntries) > 0 {
			f.restoreLogs(ctx, prevLogs)
		}
		return nil, err
	}
	return created, nil
}

// catalogKey folds a name+category pair for duplicate detection.
func catalogKey(name, category string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "\x00" + strings.ToLower(strings.TrimSpace(category))
}
