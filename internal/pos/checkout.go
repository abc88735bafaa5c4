package pos

import (
	"context"
	"fmt"
	"time"

	"gestorpro/internal/ledger"
	"gestorpro/internal/models"
	"gestorpro/internal/rbac"
)

// CartLine is what the caller sends per cart position. Catalog lines carry a
// ProductID; manual lines (no ProductID) carry their own name and price and
// never touch stock.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
	Quantity  float64 `json:"quantity"`
	Discount  float64 `json:"discount"` // per unit
}

// CustomerRef identifies who is buying. Zero value means the walk-in
// customer.
type CustomerRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

const walkInCustomer = "Walk-in Customer"

// CompleteSale is the checkout: it validates the cart, moves stock through
// the ledger (one SALE entry per catalog line), builds the sale record with
// price snapshots, and only then persists. Any failure before persistence
// leaves the store untouched; a failure during persistence restores the
// collections already written.
//
// actor may be nil for a shared terminal session; the movements are then
// attributed to the system sentinel. An authenticated actor must hold
// POS/create, plus POS/apply_discount for discounted lines and
// POS/add_free_item for manual lines.
func (f *Facade) CompleteSale(ctx context.Context, cart []CartLine, payment models.PaymentMethod, customer CustomerRef, actor *models.Employee) (models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(cart) == 0 {
		return models.Sale{}, &models.ValidationError{Field: "cart", Reason: "cart is empty"}
	}
	if !models.ValidPaymentMethod(payment) {
		return models.Sale{}, &models.ValidationError{Field: "paymentMethod", Reason: "choose a payment method"}
	}

	if actor != nil {
		if !f.policy.Allows(actor.Role, rbac.ModPOS, rbac.ActCreate) {
			return models.Sale{}, ErrPermissionDenied
		}
		for _, line := range cart {
			if line.Discount > 0 && !f.policy.Allows(actor.Role, rbac.ModPOS, rbac.ActApplyDiscount) {
				return models.Sale{}, ErrPermissionDenied
			}
			if line.ProductID == "" && !f.policy.Allows(actor.Role, rbac.ModPOS, rbac.ActAddFreeItem) {
				return models.Sale{}, ErrPermissionDenied
			}
		}
	}

	who := ledger.ActorFor(actor)
	products := f.store.Products(ctx)
	var (
		items      []models.CartItem
		newEntries []models.InventoryLog
	)

	for i, line := range cart {
		if line.Quantity <= 0 {
			return models.Sale{}, &models.ValidationError{Field: "quantity", Reason: fmt.Sprintf("line %d: quantity must be positive", i+1)}
		}
		if line.Discount < 0 {
			return models.Sale{}, &models.ValidationError{Field: "discount", Reason: fmt.Sprintf("line %d: discount cannot be negative", i+1)}
		}

		if line.ProductID == "" {
			// Manual line: no catalog product, no stock movement.
			if line.Name == "" {
				return models.Sale{}, &models.ValidationError{Field: "name", Reason: fmt.Sprintf("line %d: manual items need a name", i+1)}
			}
			if line.UnitPrice < 0 {
				return models.Sale{}, &models.ValidationError{Field: "unitPrice", Reason: fmt.Sprintf("line %d: price cannot be negative", i+1)}
			}
			if line.Discount > line.UnitPrice {
				return models.Sale{}, &models.ValidationError{Field: "discount", Reason: fmt.Sprintf("line %d: discount exceeds unit price", i+1)}
			}
			items = append(items, models.CartItem{
				Name:      line.Name,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
				Discount:  line.Discount,
			})
			continue
		}

		idx := indexByID(products, line.ProductID)
		if idx < 0 {
			return models.Sale{}, fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
		}
		p := products[idx]
		if line.Discount > p.Price {
			return models.Sale{}, &models.ValidationError{Field: "discount", Reason: fmt.Sprintf("line %d: discount exceeds unit price", i+1)}
		}

		updated, entry, err := f.ledger.Apply(p, -line.Quantity, models.LogSale, who)
		if err != nil {
			return models.Sale{}, err
		}
		products[idx] = updated
		newEntries = append(newEntries, entry)
		items = append(items, models.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price, // snapshot, later price edits don't rewrite the sale
			Quantity:  line.Quantity,
			Discount:  line.Discount,
		})
	}

	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}

	sale := models.Sale{
		ID:            f.newID(),
		Date:          f.timestamp(),
		Total:         total,
		Items:         items,
		PaymentMethod: payment,
		CustomerName:  customer.Name,
		CustomerID:    customer.ID,
	}
	if sale.CustomerName == "" {
		sale.CustomerName = walkInCustomer
	}

	// Everything validated and staged; persist products, logs, sale.
	prevProducts := f.store.Products(ctx)
	prevLogs := f.store.Logs(ctx)

	if err := f.store.SetProducts(ctx, products); err != nil {
		return models.Sale{}, err
	}
	if err := f.store.SetLogs(ctx, prependLogs(prevLogs, newEntries)); err != nil {
		f.restoreProducts(ctx, prevProducts)
		return models.Sale{}, err
	}
	if err := f.store.SetSales(ctx, append(f.store.Sales(ctx), sale)); err != nil {
		f.restoreProducts(ctx, prevProducts)
		f.restoreLogs(ctx, prevLogs)
		return models.Sale{}, err
	}

	return sale, nil
}

// DeleteSale removes a sale from the history. It deliberately does NOT
// reverse the stock ledger: the goods already left the building, and the
// ledger is the record of that.
func (f *Facade) DeleteSale(ctx context.Context, saleID string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModSalesHistory, rbac.ActDelete); err != nil {
		return err
	}

	sales := f.store.Sales(ctx)
	kept := sales[:0]
	found := false
	for _, s := range sales {
		if s.ID == saleID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	return f.store.SetSales(ctx, kept)
}

// ListSales returns the sale history.
func (f *Facade) ListSales(ctx context.Context) []models.Sale {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Sales(ctx)
}

// CreateQuotation saves the cart as a quotation: same line math as a sale
// but read-only to stock and the ledger. Expires in 7 days.
func (f *Facade) CreateQuotation(ctx context.Context, cart []CartLine, customer CustomerRef, actor *models.Employee) (models.Quotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModPOS, rbac.ActCreate); err != nil {
		return models.Quotation{}, err
	}
	if len(cart) == 0 {
		return models.Quotation{}, &models.ValidationError{Field: "cart", Reason: "cart is empty"}
	}

	// Same line rules as CompleteSale, minus the stock movement: a
	// quotation's total obeys the same math as the sale it may become.
	products := f.store.Products(ctx)
	var items []models.CartItem
	for i, line := range cart {
		if line.Quantity <= 0 {
			return models.Quotation{}, &models.ValidationError{Field: "quantity", Reason: fmt.Sprintf("line %d: quantity must be positive", i+1)}
		}
		if line.Discount < 0 {
			return models.Quotation{}, &models.ValidationError{Field: "discount", Reason: fmt.Sprintf("line %d: discount cannot be negative", i+1)}
		}
		item := models.CartItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Discount:  line.Discount,
		}
		if line.ProductID == "" {
			if line.Name == "" {
				return models.Quotation{}, &models.ValidationError{Field: "name", Reason: fmt.Sprintf("line %d: manual items need a name", i+1)}
			}
			if line.UnitPrice < 0 {
				return models.Quotation{}, &models.ValidationError{Field: "unitPrice", Reason: fmt.Sprintf("line %d: price cannot be negative", i+1)}
			}
		} else {
			idx := indexByID(products, line.ProductID)
			if idx < 0 {
				return models.Quotation{}, fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
			}
			item.Name = products[idx].Name
			item.UnitPrice = products[idx].Price
		}
		if line.Discount > item.UnitPrice {
			return models.Quotation{}, &models.ValidationError{Field: "discount", Reason: fmt.Sprintf("line %d: discount exceeds unit price", i+1)}
		}
		items = append(items, item)
	}

	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}

	q := models.Quotation{
		ID:             f.newID(),
		Date:           f.timestamp(),
		Total:          total,
		Items:          items,
		CustomerName:   customer.Name,
		ExpirationDate: f.now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	}
	if q.CustomerName == "" {
		q.CustomerName = "General Customer"
	}

	if err := f.store.SetQuotations(ctx, append([]models.Quotation{q}, f.store.Quotations(ctx)...)); err != nil {
		return models.Quotation{}, err
	}
	return q, nil
}

// ListQuotations returns saved quotations, newest first.
func (f *Facade) ListQuotations(ctx context.Context) []models.Quotation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Quotations(ctx)
}

// DeleteQuotation discards a saved quotation.
func (f *Facade) DeleteQuotation(ctx context.Context, id string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModPOS, rbac.ActCreate); err != nil {
		return err
	}

	quotes := f.store.Quotations(ctx)
	kept := quotes[:0]
	found := false
	for _, q := range quotes {
		if q.ID == id {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return ErrNotFound
	}
	return f.store.SetQuotations(ctx, kept)
}

// prependLogs keeps the ledger newest-first, the order the audit view reads.
func prependLogs(existing, fresh []models.InventoryLog) []models.InventoryLog {
	out := make([]models.InventoryLog, 0, len(existing)+len(fresh))
	out = append(out, fresh...)
	return append(out, existing...)
}

func indexByID(products []models.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Compensating restores for a failed multi-collection persist. Best effort:
// the write already failed once, so the restore may fail too; either way the
// caller gets the original error.
func (f *Facade) restoreProducts(ctx context.Context, prev []models.Product) {
	_ = f.store.SetProducts(ctx, prev)
}

func (f *Facade) restoreLogs(ctx context.Context, prev []models.InventoryLog) {
	_ = f.store.SetLogs(ctx, prev)
}
