package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestorpro/internal/models"
)

func testLedger() *Ledger {
	n := 0
	return &Ledger{
		Now: func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return string(rune('a' + n - 1))
		},
	}
}

func TestApplyMovesStockAndLogsOnce(t *testing.T) {
	l := testLedger()
	p := models.Product{ID: "p1", Name: "Rice", Stock: 10}

	updated, entry, err := l.Apply(p, -3, models.LogSale, Actor{ID: "e1", Name: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, 7.0, updated.Stock)
	assert.Equal(t, -3.0, entry.Quantity, "entry delta equals the applied delta")
	assert.Equal(t, models.LogSale, entry.Type)
	assert.Equal(t, "p1", entry.ProductID)
	assert.Equal(t, "Rice", entry.ProductName)
	assert.Equal(t, "e1", entry.UserID)
	assert.Equal(t, "Ana", entry.UserName)
	assert.Equal(t, 10.0, p.Stock, "input product is not mutated")
}

func TestApplyRejectsOverdraw(t *testing.T) {
	l := testLedger()
	p := models.Product{ID: "p1", Name: "Rice", Stock: 2}

	_, _, err := l.Apply(p, -5, models.LogSale, System)
	var insErr *InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "Rice", insErr.ProductName)
	assert.Equal(t, 2.0, insErr.Available)
	assert.Equal(t, 5.0, insErr.Requested)

	_, _, err = l.Apply(p, -5, models.LogAdjustment, System)
	assert.ErrorAs(t, err, &insErr, "issuing stock is bounded too")
}

func TestApplyAllowNegativeStock(t *testing.T) {
	l := testLedger()
	l.AllowNegativeStock = true
	p := models.Product{ID: "p1", Name: "Rice", Stock: 2}

	updated, entry, err := l.Apply(p, -5, models.LogSale, System)
	require.NoError(t, err)
	assert.Equal(t, -3.0, updated.Stock, "back-order behavior when enabled")
	assert.Equal(t, -5.0, entry.Quantity)
}

func TestAdjustmentForDetectsDirectEdits(t *testing.T) {
	l := testLedger()
	old := models.Product{ID: "p1", Name: "Rice", Stock: 10}

	up := old
	up.Stock = 14
	entry, ok := l.AdjustmentFor(old, up, System)
	require.True(t, ok)
	assert.Equal(t, models.LogEntry, entry.Type, "positive diff is an ENTRY")
	assert.Equal(t, 4.0, entry.Quantity)

	down := old
	down.Stock = 6
	entry, ok = l.AdjustmentFor(old, down, System)
	require.True(t, ok)
	assert.Equal(t, models.LogAdjustment, entry.Type, "negative diff is an ADJUSTMENT")
	assert.Equal(t, -4.0, entry.Quantity)

	same := old
	same.Price = 99 // non-stock edits are not the ledger's business
	_, ok = l.AdjustmentFor(old, same, System)
	assert.False(t, ok)
}

// Across a product's lifetime, entry deltas net to zero once the DELETION
// entry lands.
func TestLedgerNetsToZeroAtRetirement(t *testing.T) {
	l := testLedger()
	actor := Actor{ID: "e1", Name: "Ana"}

	p := models.Product{ID: "p1", Name: "Rice"}
	var entries []models.InventoryLog

	created := p
	created.Stock = 5
	entry, ok := l.AdjustmentFor(p, created, actor)
	require.True(t, ok)
	entries = append(entries, entry)
	p = created

	p, entry, err := l.Apply(p, -2, models.LogSale, actor)
	require.NoError(t, err)
	entries = append(entries, entry)

	entries = append(entries, l.DeletionEntry(p, actor))

	var sum float64
	for _, e := range entries {
		sum += e.Quantity
	}
	assert.Zero(t, sum)
	assert.Equal(t, models.LogDeletion, entries[len(entries)-1].Type)
	assert.Equal(t, -3.0, entries[len(entries)-1].Quantity)
}

func TestActorFor(t *testing.T) {
	assert.Equal(t, System, ActorFor(nil))
	got := ActorFor(&models.Employee{ID: "e9", Name: "Luis"})
	assert.Equal(t, Actor{ID: "e9", Name: "Luis"}, got)
}
