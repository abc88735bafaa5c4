package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestorpro/internal/auth"
	"gestorpro/internal/middleware"
	"gestorpro/internal/models"
	"gestorpro/internal/pos"
	"gestorpro/internal/rbac"
	"gestorpro/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	st, err := store.Open("sqlite", dsn)
	require.NoError(t, err)

	f := pos.New(st, pos.Options{})
	h := New(f)

	r := gin.New()
	r.POST("/login", h.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(f))
	api.GET("/products", h.GetProducts)
	api.POST("/checkout", h.ProcessSale)
	api.GET("/inventory-logs",
		middleware.RequirePermission(f, rbac.ModInventory, rbac.ActAudit),
		h.GetInventoryLogs)
	return r, st
}

func postJSON(r *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/login", LoginRequest{Email: "admin@sistema.com", Password: "admin@123*"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "MANAGER", resp["role"])
	assert.Equal(t, "Main Administrator", resp["name"])
}

func TestLoginEndpointRejections(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/login", LoginRequest{Email: "admin@sistema.com", Password: "nope@123*"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	// Unknown account gets the exact same message.
	w = postJSON(r, "/login", LoginRequest{Email: "ghost@sistema.com", Password: "nope@123*"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = postJSON(r, "/login", map[string]string{"email": "admin@sistema.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	// No token at all.
	w := getPath(r, "/api/products", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = getPath(r, "/api/products", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Log in as the seeded sales clerk; products are visible, the audit
	// trail is not.
	w = postJSON(r, "/login", LoginRequest{Email: "vendedor@sistema.com", Password: "user@123*"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["token"]

	w = getPath(r, "/api/products", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = getPath(r, "/api/inventory-logs", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The manager can read the audit trail.
	w = postJSON(r, "/login", LoginRequest{Email: "admin@sistema.com", Password: "admin@123*"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = getPath(r, "/api/inventory-logs", resp["token"])
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaleSessionRejected(t *testing.T) {
	r, st := newTestRouter(t)

	// A validly signed token whose subject is not on the roster: fired
	// employee, or a token minted against another installation. It must be
	// rejected outright, not downgraded to an anonymous session.
	token, err := auth.GenerateToken("ghost-e99", models.RoleWarehouse)
	require.NoError(t, err)

	w := getPath(r, "/api/products", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no longer valid")

	// In particular it cannot complete a checkout: the shared-terminal
	// path is for sessions that never existed, not sessions that died.
	checkout := CheckoutRequest{
		Items:         []pos.CartLine{{ProductID: "1", Quantity: 1, Discount: 9}},
		PaymentMethod: models.PayCash,
	}
	w = postJSON(r, "/api/checkout", checkout, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ctx := context.Background()
	assert.Empty(t, st.Sales(ctx), "no sale recorded")
	assert.Empty(t, st.Logs(ctx), "no ledger entry recorded")
}
