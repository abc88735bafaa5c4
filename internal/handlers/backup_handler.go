package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExportBackup streams the full-store backup document as a JSON download.
func (h *Handler) ExportBackup(c *gin.Context) {
	backup, err := h.Facade.Export(c.Request.Context(), h.actor(c))
	if err != nil {
		fail(c, err)
		return
	}

	filename := fmt.Sprintf("backup_gestorpro_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, backup)
}

// ImportBackup restores from an uploaded backup document, fully replacing
// every collection.
func (h *Handler) ImportBackup(c *gin.Context) {
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

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	if err := h.Facade.ImportJSON(c.Request.Context(), data, h.actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database restored successfully"})
}
