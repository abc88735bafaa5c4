package pos

import (
	"context"
	"strings"

	"gestorpro/internal/auth"
	"gestorpro/internal/models"
	"gestorpro/internal/rbac"
)

// ListEmployees returns the staff roster, credential digests stripped.
func (f *Facade) ListEmployees(ctx context.Context) []models.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()

	employees := f.store.Employees(ctx)
	out := make([]models.Employee, len(employees))
	for i, e := range employees {
		e.Password = ""
		out[i] = e
	}
	return out
}

// SaveEmployee creates or updates a staff record. plaintextPassword is the
// new password, or empty to keep the current credential on an edit. New
// passwords must pass the acceptance policy and are stored only as their
// digest.
func (f *Facade) SaveEmployee(ctx context.Context, e models.Employee, plaintextPassword string, actor *models.Employee) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	action := rbac.ActEdit
	if e.ID == "" {
		action = rbac.ActCreate
	}
	if err := f.allow(actor, rbac.ModEmployees, action); err != nil {
		return models.Employee{}, err
	}

	if strings.TrimSpace(e.Name) == "" {
		return models.Employee{}, &models.ValidationError{Field: "name", Reason: "name is required"}
	}
	if !models.ValidRole(e.Role) {
		return models.Employee{}, &models.ValidationError{Field: "role", Reason: "unknown role"}
	}
	email := strings.ToLower(strings.TrimSpace(e.Email))
	if email == "" {
		return models.Employee{}, &models.ValidationError{Field: "email", Reason: "email is required"}
	}
	e.Email = email

	employees := f.store.Employees(ctx)
	for _, existing := range employees {
		if existing.ID != e.ID && strings.ToLower(existing.Email) == email {
			return models.Employee{}, &models.ValidationError{Field: "email", Reason: "another employee already uses this email"}
		}
	}

	if plaintextPassword != "" {
		if err := auth.ValidatePassword(plaintextPassword); err != nil {
			return models.Employee{}, err
		}
		e.Password = auth.HashPassword(plaintextPassword)
	}

	if e.ID == "" {
		if plaintextPassword == "" {
			return models.Employee{}, &models.ValidationError{Field: "password", Reason: "a password is required for new employees"}
		}
		e.ID = f.newID()
		employees = append(employees, e)
	} else {
		idx := -1
		for i, existing := range employees {
			if existing.ID == e.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return models.Employee{}, ErrNotFound
		}
		if plaintextPassword == "" {
			e.Password = employees[idx].Password // keep the current credential
		}
		employees[idx] = e
	}

	if err := f.store.SetEmployees(ctx, employees); err != nil {
		return models.Employee{}, err
	}
	e.Password = ""
	return e, nil
}

// DeleteEmployee removes a staff record.
func (f *Facade) DeleteEmployee(ctx context.Context, id string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModEmployees, rbac.ActDelete); err != nil {
		return err
	}
	employees := f.store.Employees(ctx)
	kept := employees[:0]
	found := false
	for _, e := range employees {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return ErrNotFound
	}
	return f.store.SetEmployees(ctx, kept)
}

// ListSuppliers returns the supplier directory.
func (f *Facade) ListSuppliers(ctx context.Context) []models.Supplier {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Suppliers(ctx)
}

// SaveSupplier creates or updates a supplier.
func (f *Facade) SaveSupplier(ctx context.Context, s models.Supplier, actor *models.Employee) (models.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	action := rbac.ActEdit
	if s.ID == "" {
		action = rbac.ActCreate
	}
	if err := f.allow(actor, rbac.ModSuppliers, action); err != nil {
		return models.Supplier{}, err
	}
	if strings.TrimSpace(s.Name) == "" {
		return models.Supplier{}, &models.ValidationError{Field: "name", Reason: "name is required"}
	}

	suppliers := f.store.Suppliers(ctx)
	if s.ID == "" {
		s.ID = f.newID()
		suppliers = append(suppliers, s)
	} else {
		idx := -1
		for i, existing := range suppliers {
			if existing.ID == s.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return models.Supplier{}, ErrNotFound
		}
		suppliers[idx] = s
	}

	if err := f.store.SetSuppliers(ctx, suppliers); err != nil {
		return models.Supplier{}, err
	}
	return s, nil
}

// DeleteSupplier removes a supplier.
func (f *Facade) DeleteSupplier(ctx context.Context, id string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModSuppliers, rbac.ActDelete); err != nil {
		return err
	}
	suppliers := f.store.Suppliers(ctx)
	kept := suppliers[:0]
	found := false
	for _, s := range suppliers {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	return f.store.SetSuppliers(ctx, kept)
}

// ListCustomers returns the customer directory.
func (f *Facade) ListCustomers(ctx context.Context) []models.Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Customers(ctx)
}

// SaveCustomer creates or updates a customer.
func (f *Facade) SaveCustomer(ctx context.Context, c models.Customer, actor *models.Employee) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	action := rbac.ActEdit
	if c.ID == "" {
		action = rbac.ActCreate
	}
	if err := f.allow(actor, rbac.ModCustomers, action); err != nil {
		return models.Customer{}, err
	}
	if strings.TrimSpace(c.Name) == "" {
		return models.Customer{}, &models.ValidationError{Field: "name", Reason: "name is required"}
	}

	customers := f.store.Customers(ctx)
	if c.ID == "" {
		c.ID = f.newID()
		customers = append(customers, c)
	} else {
		idx := -1
		for i, existing := range customers {
			if existing.ID == c.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return models.Customer{}, ErrNotFound
		}
		customers[idx] = c
	}

	if err := f.store.SetCustomers(ctx, customers); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// DeleteCustomer removes a customer.
func (f *Facade) DeleteCustomer(ctx context.Context, id string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModCustomers, rbac.ActDelete); err != nil {
		return err
	}
	customers := f.store.Customers(ctx)
	kept := customers[:0]
	found := false
	for _, c := range customers {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrNotFound
	}
	return f.store.SetCustomers(ctx, kept)
}

// ListExpenses returns recorded expenses.
func (f *Facade) ListExpenses(ctx context.Context) []models.Expense {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Expenses(ctx)
}

// AddExpense records an expense.
func (f *Facade) AddExpense(ctx context.Context, e models.Expense, actor *models.Employee) (models.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModExpenses, rbac.ActCreate); err != nil {
		return models.Expense{}, err
	}
	if strings.TrimSpace(e.Description) == "" {
		return models.Expense{}, &models.ValidationError{Field: "description", Reason: "description is required"}
	}
	if e.Amount <= 0 {
		return models.Expense{}, &models.ValidationError{Field: "amount", Reason: "amount must be positive"}
	}

	e.ID = f.newID()
	if e.Date == "" {
		e.Date = f.timestamp()
	}
	if err := f.store.SetExpenses(ctx, append(f.store.Expenses(ctx), e)); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// DeleteExpense removes an expense record.
func (f *Facade) DeleteExpense(ctx context.Context, id string, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModExpenses, rbac.ActDelete); err != nil {
		return err
	}
	expenses := f.store.Expenses(ctx)
	kept := expenses[:0]
	found := false
	for _, e := range expenses {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return ErrNotFound
	}
	return f.store.SetExpenses(ctx, kept)
}

// GetConfig returns the business configuration singleton.
func (f *Facade) GetConfig(ctx context.Context) models.BusinessConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Config(ctx)
}

// SaveConfig replaces the business configuration wholesale.
func (f *Facade) SaveConfig(ctx context.Context, cfg models.BusinessConfig, actor *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.allow(actor, rbac.ModSettings, rbac.ActEdit); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "business name is required"}
	}
	return f.store.SetConfig(ctx, cfg)
}
