package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetSalesReport answers /api/reports?from=2026-01-01&to=2026-01-31 with
// revenue, sale count, top sellers and the latest transactions. Missing
// bounds mean all time.
func (h *Handler) GetSalesReport(c *gin.Context) {
	var from, to time.Time
	var err error

	if v := c.Query("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		// Inclusive end of day.
		to = to.Add(24*time.Hour - time.Second)
	}

	report, err := h.Facade.Report(c.Request.Context(), from, to, h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
