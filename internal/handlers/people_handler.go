package handlers

import (
	"net/http"

	"gestorpro/internal/models"

	"github.com/gin-gonic/gin"
)

// GetEmployees lists the staff roster (credential digests never leave the
// facade).
func (h *Handler) GetEmployees(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListEmployees(c.Request.Context()))
}

// EmployeeRequest carries the record plus the optional new password. The
// password travels in its own field so the stored digest is never confused
// with operator input.
type EmployeeRequest struct {
	models.Employee
	NewPassword string `json:"newPassword"`
}

// SaveEmployee creates or updates a staff record.
func (h *Handler) SaveEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if id := c.Param("id"); id != "" {
		req.Employee.ID = id
	}
	req.Employee.Password = "" // only NewPassword can set a credential

	saved, err := h.Facade.SaveEmployee(c.Request.Context(), req.Employee, req.NewPassword, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteEmployee removes a staff record.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	if err := h.Facade.DeleteEmployee(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// GetSuppliers lists suppliers.
func (h *Handler) GetSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListSuppliers(c.Request.Context()))
}

// SaveSupplier creates or updates a supplier.
func (h *Handler) SaveSupplier(c *gin.Context) {
	var s models.Supplier
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if id := c.Param("id"); id != "" {
		s.ID = id
	}

	saved, err := h.Facade.SaveSupplier(c.Request.Context(), s, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteSupplier removes a supplier.
func (h *Handler) DeleteSupplier(c *gin.Context) {
	if err := h.Facade.DeleteSupplier(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}

// GetCustomers lists customers.
func (h *Handler) GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListCustomers(c.Request.Context()))
}

// SaveCustomer creates or updates a customer.
func (h *Handler) SaveCustomer(c *gin.Context) {
	var cust models.Customer
	if err := c.ShouldBindJSON(&cust); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if id := c.Param("id"); id != "" {
		cust.ID = id
	}

	saved, err := h.Facade.SaveCustomer(c.Request.Context(), cust, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteCustomer removes a customer.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.Facade.DeleteCustomer(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// GetExpenses lists recorded expenses.
func (h *Handler) GetExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListExpenses(c.Request.Context()))
}

// AddExpense records an expense.
func (h *Handler) AddExpense(c *gin.Context) {
	var e models.Expense
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	saved, err := h.Facade.AddExpense(c.Request.Context(), e, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteExpense removes an expense record.
func (h *Handler) DeleteExpense(c *gin.Context) {
	if err := h.Facade.DeleteExpense(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// GetConfig returns the business configuration.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.GetConfig(c.Request.Context()))
}

// SaveConfig replaces the business configuration wholesale.
func (h *Handler) SaveConfig(c *gin.Context) {
	var cfg models.BusinessConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := h.Facade.SaveConfig(c.Request.Context(), cfg, h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved"})
}
