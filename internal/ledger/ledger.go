// Package ledger maintains the append-only inventory movement log. Every
// stock change flows through here so "what happened to stock and who did it"
// is always reconstructible from the entries alone.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gestorpro/internal/models"
)

// Actor is the identity a movement is attributed to.
type Actor struct {
	ID   string
	Name string
}

// System is the sentinel actor for movements with no authenticated employee,
// e.g. a sale completed on a shared terminal session.
var System = Actor{ID: "system", Name: "System"}

// ActorFor resolves an employee (possibly nil) to a ledger actor.
func ActorFor(e *models.Employee) Actor {
	if e == nil {
		return System
	}
	return Actor{ID: e.ID, Name: e.Name}
}

// InsufficientStockError rejects a movement that would drive stock below
// zero. Older installations allowed the overdraw; rejecting it is the new
// default, switchable back via AllowNegativeStock.
type InsufficientStockError struct {
	ProductName string
	Available   float64
	Requested   float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: have %g, need %g", e.ProductName, e.Available, e.Requested)
}

// Ledger produces log entries and applies stock deltas. It never persists
// anything itself; callers write the updated product and the entry together.
type Ledger struct {
	// AllowNegativeStock restores the legacy back-order behavior:
	// sales and issues may overdraw stock instead of failing.
	AllowNegativeStock bool

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string
}

// New returns a ledger with the wall clock and random UUIDs.
func New() *Ledger {
	return &Ledger{
		Now:   time.Now,
		NewID: func() string { return uuid.NewString() },
	}
}

// Apply adds delta to the product's stock and produces exactly one log entry
// carrying the same signed quantity. Outgoing movements (SALE, or an
// ADJUSTMENT issuing stock) that would leave stock negative are rejected
// unless AllowNegativeStock is set. DELETION and ENTRY movements always go
// through.
func (l *Ledger) Apply(p models.Product, delta float64, typ models.LogType, actor Actor) (models.Product, models.InventoryLog, error) {
	newStock := p.Stock + delta

	if newStock < 0 && !l.AllowNegativeStock && (typ == models.LogSale || typ == models.LogAdjustment) {
		return p, models.InventoryLog{}, &InsufficientStockError{
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   -delta,
		}
	}

	entry := l.entry(p, typ, delta, actor)
	p.Stock = newStock
	return p, entry, nil
}

// AdjustmentFor detects a direct stock edit (a product save that changed the
// stock field outside the dedicated receive/issue path) and turns the diff
// into a ledger entry: ENTRY when stock went up, ADJUSTMENT when it went
// down. Returns false when the stock did not change.
func (l *Ledger) AdjustmentFor(old, updated models.Product, actor Actor) (models.InventoryLog, bool) {
	diff := updated.Stock - old.Stock
	if diff == 0 {
		return models.InventoryLog{}, false
	}

	typ := models.LogAdjustment
	if diff > 0 {
		typ = models.LogEntry
	}
	return l.entry(updated, typ, diff, actor), true
}

// DeletionEntry records the retirement of a product: a final entry with
// delta = -stock, so the product's entries net to zero across its lifetime.
func (l *Ledger) DeletionEntry(p models.Product, actor Actor) models.InventoryLog {
	return l.entry(p, models.LogDeletion, -p.Stock, actor)
}

func (l *Ledger) entry(p models.Product, typ models.LogType, qty float64, actor Actor) models.InventoryLog {
	return models.InventoryLog{
		ID:          l.NewID(),
		Date:        l.Now().UTC().Format(time.RFC3339),
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        typ,
		Quantity:    qty,
		UserID:      actor.ID,
		UserName:    actor.Name,
	}
}
