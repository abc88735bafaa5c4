package handlers

import (
	"errors"
	"net/http"

	"gestorpro/internal/ledger"
	"gestorpro/internal/models"
	"gestorpro/internal/pos"
	"gestorpro/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP routes to the transaction facade. One per server;
// it is passed around explicitly instead of living in a package global so
// tests can spin up several.
type Handler struct {
	Facade *pos.Facade
}

func New(f *pos.Facade) *Handler {
	return &Handler{Facade: f}
}

// actor returns the session employee resolved by the auth middleware. Nil
// only on routes reachable without a session; behind the middleware a
// request with a stale subject never gets this far.
func (h *Handler) actor(c *gin.Context) *models.Employee {
	emp, exists := c.Get("employee")
	if !exists {
		return nil
	}
	return emp.(*models.Employee)
}

// fail maps facade errors onto HTTP statuses in one place.
func fail(c *gin.Context, err error) {
	var (
		vErr *models.ValidationError
		sErr *ledger.InsufficientStockError
		wErr *store.WriteError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.As(err, &sErr):
		c.JSON(http.StatusConflict, gin.H{"error": sErr.Error()})
	case errors.Is(err, pos.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	case errors.Is(err, pos.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.As(err, &wErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save changes"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
