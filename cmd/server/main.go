package main

import (
	"log"
	"os"
	"time"

	"gestorpro/internal/handlers"
	"gestorpro/internal/middleware"
	"gestorpro/internal/pos"
	"gestorpro/internal/rbac"
	"gestorpro/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	st, err := store.Open(os.Getenv("DB_DRIVER"), os.Getenv("DB_DSN"))
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	log.Println("Store ready")

	opts := pos.Options{
		AllowNegativeStock: os.Getenv("ALLOW_NEGATIVE_STOCK") == "true",
	}

	// An installation can replace the shipped permission matrix with its own.
	// Unknown roles/modules/actions are rejected; anything the file omits
	// stays denied.
	if policyFile := os.Getenv("RBAC_POLICY_FILE"); policyFile != "" {
		data, err := os.ReadFile(policyFile)
		if err != nil {
			log.Fatal("Failed to read policy file:", err)
		}
		policy, err := rbac.FromJSON(data)
		if err != nil {
			log.Fatal("Failed to parse policy file:", err)
		}
		opts.Policy = policy
		log.Println("Loaded permission matrix from", policyFile)
	}

	facade := pos.New(st, opts)
	h := handlers.New(facade)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)

	// --- PROTECTED ROUTES ---
	// Reads stay open to any authenticated session; every mutation is
	// re-checked inside the facade, the middleware just fails fast with a
	// clear 403.
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(facade))
	{
		api.GET("/products", h.GetProducts)
		api.POST("/checkout", h.ProcessSale)
		api.GET("/sales", h.GetSales)
		api.GET("/quotations", h.GetQuotations)
		api.POST("/quotations", h.CreateQuotation)
		api.DELETE("/quotations/:id", h.DeleteQuotation)
		api.GET("/customers", h.GetCustomers)
		api.POST("/customers", h.SaveCustomer)
		api.PUT("/customers/:id", h.SaveCustomer)
		api.DELETE("/customers/:id", h.DeleteCustomer)
		api.GET("/config", h.GetConfig)

		inventory := api.Group("/")
		inventory.Use(middleware.RequirePermission(facade, rbac.ModInventory, rbac.ActManageStock))
		{
			inventory.POST("/products/:id/stock", h.AdjustStock)
		}

		catalog := api.Group("/")
		catalog.Use(middleware.RequirePermission(facade, rbac.ModInventory, rbac.ActCreate))
		{
			catalog.POST("/products", h.SaveProduct)
			catalog.PUT("/products/:id", h.SaveProduct)
			catalog.DELETE("/products/:id", h.DeleteProduct)
			catalog.POST("/products/import", h.ImportProducts)
		}

		audit := api.Group("/")
		audit.Use(middleware.RequirePermission(facade, rbac.ModInventory, rbac.ActAudit))
		{
			audit.GET("/inventory-logs", h.GetInventoryLogs)
		}

		api.DELETE("/sales/:id", h.DeleteSale)

		api.GET("/suppliers", h.GetSuppliers)
		api.POST("/suppliers", h.SaveSupplier)
		api.PUT("/suppliers/:id", h.SaveSupplier)
		api.DELETE("/suppliers/:id", h.DeleteSupplier)

		api.GET("/expenses", h.GetExpenses)
		api.POST("/expenses", h.AddExpense)
		api.DELETE("/expenses/:id", h.DeleteExpense)

		staff := api.Group("/")
		staff.Use(middleware.RequirePermission(facade, rbac.ModEmployees, rbac.ActView))
		{
			staff.GET("/employees", h.GetEmployees)
			staff.POST("/employees", h.SaveEmployee)
			staff.PUT("/employees/:id", h.SaveEmployee)
			staff.DELETE("/employees/:id", h.DeleteEmployee)
		}

		settings := api.Group("/")
		settings.Use(middleware.RequirePermission(facade, rbac.ModSettings, rbac.ActView))
		{
			settings.PUT("/config", h.SaveConfig)
			settings.GET("/backup", h.ExportBackup)
			settings.POST("/backup/restore", h.ImportBackup)
		}

		reports := api.Group("/")
		reports.Use(middleware.RequirePermission(facade, rbac.ModTools, rbac.ActView))
		{
			reports.GET("/reports", h.GetSalesReport)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
