package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestorpro/internal/models"
)

// The table must be total: every combination of the closed enumerations
// answers true or false, and unknown inputs answer false.
func TestAllowsTotality(t *testing.T) {
	p := Default()

	for _, role := range models.Roles {
		for _, mod := range Modules {
			for _, act := range Actions {
				// Just has to not panic and return a bool.
				_ = p.Allows(role, mod, act)
			}
		}
	}

	assert.False(t, p.Allows("INTERN", ModInventory, ActView), "unknown role must deny")
	assert.False(t, p.Allows(models.RoleManager, "PAYROLL", ActView), "unknown module must deny")
	assert.False(t, p.Allows(models.RoleManager, ModInventory, "explode"), "unknown action must deny")
}

func TestDefaultMatrix(t *testing.T) {
	p := Default()

	// Manager has full reach, including the two privileges admin lacks.
	assert.True(t, p.Allows(models.RoleManager, ModInventory, ActAudit))
	assert.True(t, p.Allows(models.RoleManager, ModSalesHistory, ActDelete))

	// Admin runs the shop day to day but cannot audit the ledger or erase
	// history.
	assert.True(t, p.Allows(models.RoleAdmin, ModInventory, ActDelete))
	assert.True(t, p.Allows(models.RoleAdmin, ModEmployees, ActCreate))
	assert.False(t, p.Allows(models.RoleAdmin, ModInventory, ActAudit))
	assert.False(t, p.Allows(models.RoleAdmin, ModSalesHistory, ActDelete))

	// Sales can sell and keep customers, nothing else.
	assert.True(t, p.Allows(models.RoleSales, ModPOS, ActCreate))
	assert.True(t, p.Allows(models.RoleSales, ModCustomers, ActEdit))
	assert.False(t, p.Allows(models.RoleSales, ModCustomers, ActDelete))
	assert.False(t, p.Allows(models.RoleSales, ModPOS, ActApplyDiscount))
	assert.False(t, p.Allows(models.RoleSales, ModInventory, ActManageStock))
	assert.False(t, p.Allows(models.RoleSales, ModSettings, ActView))

	// Warehouse moves stock and looks up suppliers, nothing else.
	assert.True(t, p.Allows(models.RoleWarehouse, ModInventory, ActManageStock))
	assert.True(t, p.Allows(models.RoleWarehouse, ModSuppliers, ActView))
	assert.False(t, p.Allows(models.RoleWarehouse, ModInventory, ActEdit))
	assert.False(t, p.Allows(models.RoleWarehouse, ModPOS, ActView))
}

// A (role, module) pair the table does not list denies every action. There
// is no implicit allow.
func TestDefaultDeny(t *testing.T) {
	p := Policy{
		models.RoleSales: {
			ModPOS: {ActView},
		},
	}

	for _, act := range Actions {
		assert.False(t, p.Allows(models.RoleSales, ModEmployees, act))
		assert.False(t, p.Allows(models.RoleWarehouse, ModPOS, act))
	}
	assert.True(t, p.Allows(models.RoleSales, ModPOS, ActView))
	assert.False(t, p.Allows(models.RoleSales, ModPOS, ActCreate))
}

func TestFromJSON(t *testing.T) {
	doc := []byte(`{
		"SALES": {
			"POS": ["view", "create", "apply_discount"],
			"CUSTOMERS": ["view"]
		}
	}`)

	p, err := FromJSON(doc)
	require.NoError(t, err)

	assert.True(t, p.Allows(models.RoleSales, ModPOS, ActApplyDiscount))
	assert.True(t, p.Allows(models.RoleSales, ModCustomers, ActView))
	// Everything the document omits stays denied.
	assert.False(t, p.Allows(models.RoleSales, ModCustomers, ActEdit))
	assert.False(t, p.Allows(models.RoleManager, ModPOS, ActView))
}

func TestFromJSONRejectsTypos(t *testing.T) {
	cases := map[string]string{
		"unknown role":   `{"CASHIER": {"POS": ["view"]}}`,
		"unknown module": `{"SALES": {"TILL": ["view"]}}`,
		"unknown action": `{"SALES": {"POS": ["viwe"]}}`,
		"not json":       `{"SALES": `,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromJSON([]byte(doc))
			assert.Error(t, err)
		})
	}
}
