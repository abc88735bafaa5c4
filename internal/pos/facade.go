// Package pos is the transaction facade: it composes the store, the
// credential service, the authorization policy and the inventory ledger into
// the multi-record operations the rest of the system calls. Operations are
// atomic from the caller's point of view even though the store has no native
// transactions: everything is staged in memory first, and a single-writer
// mutex keeps concurrent HTTP callers from racing on whole-collection
// read-modify-write.
package pos

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"gestorpro/internal/auth"
	"gestorpro/internal/ledger"
	"gestorpro/internal/models"
	"gestorpro/internal/rbac"
	"gestorpro/internal/store"
)

// ErrPermissionDenied means the actor's role lacks the required permission.
// The operation did not run at all; callers can tell this apart from success
// and surface it however they like.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotFound means the referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Facade is the single entry point for business operations. One per store.
type Facade struct {
	mu     sync.Mutex
	store  *store.Store
	policy rbac.Policy
	ledger *ledger.Ledger

	now   func() time.Time
	newID func() string
}

// Options tunes facade behavior at construction.
type Options struct {
	// Policy overrides the shipped permission matrix (e.g. loaded from
	// configuration via rbac.FromJSON). Nil means rbac.Default().
	Policy rbac.Policy

	// AllowNegativeStock restores the legacy back-order behavior where a
	// sale may overdraw stock. Off by default.
	AllowNegativeStock bool
}

// New builds a facade over st.
func New(st *store.Store, opts Options) *Facade {
	pol := opts.Policy
	if pol == nil {
		pol = rbac.Default()
	}

	led := ledger.New()
	led.AllowNegativeStock = opts.AllowNegativeStock

	return &Facade{
		store:  st,
		policy: pol,
		ledger: led,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// Can exposes the policy lookup to the UI layer so it can hide what the
// operator may not do. Pure, no locking needed.
func (f *Facade) Can(role models.Role, module rbac.Module, action rbac.Action) bool {
	return f.policy.Allows(role, module, action)
}

// allow is the guard every mutating operation runs first. A nil actor is
// denied: anonymous mutations only exist on the checkout path, which handles
// the shared-terminal case itself.
func (f *Facade) allow(actor *models.Employee, module rbac.Module, action rbac.Action) error {
	if actor == nil {
		return ErrPermissionDenied
	}
	if !f.policy.Allows(actor.Role, module, action) {
		return ErrPermissionDenied
	}
	return nil
}

// Login authenticates an operator. Legacy plaintext credentials are upgraded
// to the stored digest and persisted before the login is reported as
// successful, so the plaintext never survives a working login.
func (f *Facade) Login(ctx context.Context, identifier, password string) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	employees := f.store.Employees(ctx)
	emp, updated, migrated, err := auth.Authenticate(employees, identifier, password)
	if err != nil {
		return models.Employee{}, err
	}

	if migrated {
		if err := f.store.SetEmployees(ctx, updated); err != nil {
			// If the upgrade cannot be persisted the login still fails:
			// reporting success would leave the plaintext on disk.
			return models.Employee{}, err
		}
	}

	emp.Password = ""
	return emp, nil
}

// timestamp renders the facade clock as the ISO date strings the records use.
func (f *Facade) timestamp() string {
	return f.now().UTC().Format(time.RFC3339)
}

// FindEmployee looks an operator up by id, for handlers resolving the JWT
// subject into an actor.
func (f *Facade) FindEmployee(ctx context.Context, id string) (models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.store.Employees(ctx) {
		if e.ID == id {
			e.Password = ""
			return e, nil
		}
	}
	return models.Employee{}, ErrNotFound
}
