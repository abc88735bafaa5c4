package middleware

import (
	"net/http"
	"strings"

	"gestorpro/internal/auth"
	"gestorpro/internal/models"
	"gestorpro/internal/pos"
	"gestorpro/internal/rbac"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks if the request carries a valid JWT token, resolves
// the subject against the current staff roster, and stores the employee in
// the context for the handlers behind it. A token whose subject no longer
// exists (fired employee, stale session) is rejected outright: it must not
// degrade into an anonymous request.
func AuthMiddleware(f *pos.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Format: "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		emp, err := f.FindEmployee(c.Request.Context(), claims.EmployeeID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer valid"})
			c.Abort()
			return
		}

		// The roster is authoritative for the role: a role change takes
		// effect on the next request, not at token expiry.
		c.Set("employee", &emp)
		c.Set("role", emp.Role)

		c.Next()
	}
}

// RequirePermission guards a route with the authorization policy: the
// session role must hold the given action on the given module. The facade
// still re-checks on every mutation; this just rejects early with a clear
// status instead of a silent no-op.
func RequirePermission(f *pos.Facade, module rbac.Module, action rbac.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		role, ok := roleVal.(models.Role)
		if !ok || !f.Can(role, module, action) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
