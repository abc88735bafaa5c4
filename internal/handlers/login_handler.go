package handlers

import (
	"errors"
	"net/http"

	"gestorpro/internal/auth"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials and hands back a session token. Failures are
// always the same generic message: the response never says whether the
// email exists.
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	emp, err := h.Facade.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Credential migration could not be persisted; the login is not
		// considered successful.
		fail(c, err)
		return
	}

	token, err := auth.GenerateToken(emp.ID, emp.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  emp.Role,
		"name":  emp.Name,
	})
}
