// Package rbac holds the static role -> module -> action permission matrix.
// Allows is a pure lookup: no I/O, total over the closed enumerations, and
// default-deny for anything the table does not list.
package rbac

import (
	"encoding/json"
	"fmt"

	"gestorpro/internal/models"
)

// Module is a named functional area subject to authorization.
type Module string

const (
	ModInventory    Module = "INVENTORY"
	ModPOS          Module = "POS"
	ModCustomers    Module = "CUSTOMERS"
	ModSuppliers    Module = "SUPPLIERS"
	ModEmployees    Module = "EMPLOYEES"
	ModExpenses     Module = "EXPENSES"
	ModSettings     Module = "SETTINGS"
	ModSalesHistory Module = "SALES_HISTORY"
	ModTools        Module = "TOOLS"
	ModStore        Module = "STORE"
)

// Modules enumerates every module, for totality checks and UI listings.
var Modules = []Module{
	ModInventory, ModPOS, ModCustomers, ModSuppliers, ModEmployees,
	ModExpenses, ModSettings, ModSalesHistory, ModTools, ModStore,
}

// Action is something a role may do inside a module.
type Action string

const (
	ActView          Action = "view"
	ActCreate        Action = "create"
	ActEdit          Action = "edit"
	ActDelete        Action = "delete"
	ActManageStock   Action = "manage_stock"
	ActAudit         Action = "audit"
	ActApplyDiscount Action = "apply_discount"
	ActAddFreeItem   Action = "add_free_item"
)

// Actions enumerates every action.
var Actions = []Action{
	ActView, ActCreate, ActEdit, ActDelete,
	ActManageStock, ActAudit, ActApplyDiscount, ActAddFreeItem,
}

// Policy maps role -> module -> permitted actions. A missing role, module or
// action means deny; there is no implicit allow anywhere.
type Policy map[models.Role]map[Module][]Action

// Allows reports whether role may perform action inside module. Defined for
// every combination, including unknown roles and modules (both deny).
func (p Policy) Allows(role models.Role, module Module, action Action) bool {
	perms, ok := p[role]
	if !ok {
		return false
	}
	actions, ok := perms[module]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// Default returns the shipped permission matrix. Four roles with strictly
// decreasing scope:
//
//	MANAGER   - full access, including ledger audit and sales-history delete
//	ADMIN     - day-to-day operations, no audit, no historical deletion
//	SALES     - point of sale and customer management
//	WAREHOUSE - stock movement only
func Default() Policy {
	return Policy{
		models.RoleManager: {
			ModInventory:    {ActView, ActCreate, ActEdit, ActDelete, ActManageStock, ActAudit},
			ModPOS:          {ActView, ActCreate, ActApplyDiscount, ActAddFreeItem},
			ModCustomers:    {ActView, ActCreate, ActEdit, ActDelete},
			ModSuppliers:    {ActView, ActCreate, ActEdit, ActDelete},
			ModEmployees:    {ActView, ActCreate, ActEdit, ActDelete},
			ModExpenses:     {ActView, ActCreate, ActDelete},
			ModSettings:     {ActView, ActEdit},
			ModSalesHistory: {ActView, ActDelete},
			ModTools:        {ActView},
			ModStore:        {ActView},
		},
		models.RoleAdmin: {
			ModInventory:    {ActView, ActCreate, ActEdit, ActDelete, ActManageStock},
			ModPOS:          {ActView, ActCreate, ActApplyDiscount, ActAddFreeItem},
			ModCustomers:    {ActView, ActCreate, ActEdit, ActDelete},
			ModSuppliers:    {ActView, ActCreate, ActEdit, ActDelete},
			ModEmployees:    {ActView, ActCreate, ActEdit, ActDelete},
			ModExpenses:     {ActView, ActCreate, ActDelete},
			ModSettings:     {ActView, ActEdit},
			ModSalesHistory: {ActView}, // no delete
			ModTools:        {ActView},
			ModStore:        {ActView},
		},
		models.RoleSales: {
			ModInventory:    {ActView}, // look at stock only
			ModPOS:          {ActView, ActCreate},
			ModCustomers:    {ActView, ActCreate, ActEdit}, // no delete
			ModSalesHistory: {ActView},
			ModTools:        {ActView},
			ModStore:        {ActView},
			ModSuppliers:    {},
			ModEmployees:    {},
			ModExpenses:     {},
			ModSettings:     {},
		},
		models.RoleWarehouse: {
			ModInventory:    {ActView, ActManageStock}, // stock in/out, no price edits
			ModSuppliers:    {ActView},
			ModPOS:          {},
			ModCustomers:    {},
			ModEmployees:    {},
			ModExpenses:     {},
			ModSettings:     {},
			ModSalesHistory: {},
			ModTools:        {},
			ModStore:        {},
		},
	}
}

// FromJSON loads a replacement matrix from configuration. Unknown roles,
// modules or actions are rejected so a typo cannot silently widen (or
// blackhole) permissions. The result keeps default-deny totality: anything
// the document omits stays denied.
func FromJSON(data []byte) (Policy, error) {
	var raw map[string]map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rbac: parse policy: %w", err)
	}

	p := Policy{}
	for roleName, mods := range raw {
		role := models.Role(roleName)
		if !models.ValidRole(role) {
			return nil, fmt.Errorf("rbac: unknown role %q", roleName)
		}
		p[role] = map[Module][]Action{}
		for modName, acts := range mods {
			mod := Module(modName)
			if !knownModule(mod) {
				return nil, fmt.Errorf("rbac: unknown module %q", modName)
			}
			list := make([]Action, 0, len(acts))
			for _, actName := range acts {
				act := Action(actName)
				if !knownAction(act) {
					return nil, fmt.Errorf("rbac: unknown action %q", actName)
				}
				list = append(list, act)
			}
			p[role][mod] = list
		}
	}
	return p, nil
}

func knownModule(m Module) bool {
	for _, known := range Modules {
		if m == known {
			return true
		}
	}
	return false
}

func knownAction(a Action) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
