package handlers

import (
	"net/http"

	"gestorpro/internal/importer"
	"gestorpro/internal/models"
	"gestorpro/internal/pos"

	"github.com/gin-gonic/gin"
)

// GetProducts lists the catalog.
func (h *Handler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListProducts(c.Request.Context()))
}

// SaveProduct creates (no id) or updates (id present) a product.
func (h *Handler) SaveProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if id := c.Param("id"); id != "" {
		p.ID = id
	}

	saved, err := h.Facade.SaveProduct(c.Request.Context(), p, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteProduct retires a product and writes its closing ledger entry.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Facade.DeleteProduct(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// StockRequest is a manual receive/issue movement.
type StockRequest struct {
	Quantity  float64            `json:"quantity" binding:"required"`
	Direction pos.StockDirection `json:"direction" binding:"required"`
}

// AdjustStock receives or issues stock through the ledger.
func (h *Handler) AdjustStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updated, err := h.Facade.AdjustStock(c.Request.Context(), c.Param("id"), req.Quantity, req.Direction, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetInventoryLogs exposes the movement ledger to audit-capable roles.
func (h *Handler) GetInventoryLogs(c *gin.Context) {
	logs, err := h.Facade.ListInventoryLogs(c.Request.Context(), h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ImportProducts ingests an uploaded spreadsheet: one product per row, one
// ENTRY ledger record per row with positive starting stock.
func (h *Handler) ImportProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer src.Close()

	rows, err := importer.ReadProducts(src)
	if err != nil {
		fail(c, err)
		return
	}

	created, err := h.Facade.ImportProducts(c.Request.Context(), rows, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Import complete",
		"imported": len(created),
		"products": created,
	})
}

// CheckoutRequest is what the POS screen sends us.
type CheckoutRequest struct {
	Items         []pos.CartLine       `json:"items" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	Customer      pos.CustomerRef      `json:"customer"`
}

// ProcessSale is the checkout endpoint.
func (h *Handler) ProcessSale(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, err := h.Facade.CompleteSale(c.Request.Context(), req.Items, req.PaymentMethod, req.Customer, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale successful!",
		"sale_id": sale.ID,
		"total":   sale.Total,
		"sale":    sale,
	})
}

// GetSales lists the sale history.
func (h *Handler) GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListSales(c.Request.Context()))
}

// DeleteSale removes a sale record. Stock is NOT returned; the ledger keeps
// the movement.
func (h *Handler) DeleteSale(c *gin.Context) {
	if err := h.Facade.DeleteSale(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted from history"})
}

// QuotationRequest saves the current cart as a quotation.
type QuotationRequest struct {
	Items    []pos.CartLine  `json:"items" binding:"required"`
	Customer pos.CustomerRef `json:"customer"`
}

// CreateQuotation stores a quotation without touching stock.
func (h *Handler) CreateQuotation(c *gin.Context) {
	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	q, err := h.Facade.CreateQuotation(c.Request.Context(), req.Items, req.Customer, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// GetQuotations lists saved quotations, newest first.
func (h *Handler) GetQuotations(c *gin.Context) {
	c.JSON(http.StatusOK, h.Facade.ListQuotations(c.Request.Context()))
}

// DeleteQuotation discards a quotation.
func (h *Handler) DeleteQuotation(c *gin.Context) {
	if err := h.Facade.DeleteQuotation(c.Request.Context(), c.Param("id"), h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted"})
}
