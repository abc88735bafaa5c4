package store

import "gestorpro/internal/models"

// Seed defaults: the data a brand-new installation starts with, returned by
// Get whenever a collection has never been persisted. Fresh slices every
// call so callers can mutate what they get back.

// SeedProducts - a small demo catalog spanning unit, volume and weight items.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:               "1",
			Name:             "Xtreme Gamer Laptop",
			Description:      "RTX 4060, 16GB RAM, 512GB SSD",
			Price:            1250.00,
			Cost:             950.00,
			Stock:            5,
			MinStock:         2,
			Category:         "Electronics",
			SupplierID:       "s1",
			MeasurementUnit:  "UNIT",
			MeasurementValue: 1,
		},
		{
			ID:               "2",
			Name:             "Coca Cola 500ml",
			Description:      "Original cola flavor soft drink",
			Price:            1.50,
			Cost:             0.80,
			Stock:            48,
			MinStock:         12,
			Category:         "Beverages",
			SupplierID:       "s1",
			MeasurementUnit:  "ML",
			MeasurementValue: 500,
		},
		{
			ID:               "3",
			Name:             "Premium Long Grain Rice",
			Description:      "1kg bag, superior quality",
			Price:            2.20,
			Cost:             1.10,
			Stock:            100,
			MinStock:         20,
			Category:         "Groceries",
			SupplierID:       "s2",
			MeasurementUnit:  "KG",
			MeasurementValue: 1,
		},
	}
}

func SeedSuppliers() []models.Supplier {
	return []models.Supplier{
		{ID: "s1", Name: "Central Distributors", ContactName: "Carlos Ruiz", Phone: "555-0101", Email: "sales@centraldist.com"},
		{ID: "s2", Name: "Global Imports", ContactName: "Ana Campos", Phone: "555-0202", Email: "ana@globalimport.com"},
	}
}

func SeedCustomers() []models.Customer {
	return []models.Customer{
		{ID: "c1", Name: "Walk-in Customer", TaxID: "00000000"},
		{ID: "c2", Name: "Example Company Inc.", TaxID: "20123456789", Email: "contact@example.com", Phone: "555-9000", Address: "100 Business Ave"},
	}
}

// SeedEmployees ships legacy-form (plaintext) credentials on purpose: the
// first successful login upgrades each record to the stored digest, which is
// the same path pre-existing installations take.
func SeedEmployees() []models.Employee {
	return []models.Employee{
		{ID: "e1", Name: "Main Administrator", Role: models.RoleManager, Phone: "999-000-000", Email: "admin@sistema.com", Password: "admin@123*"},
		{ID: "e2", Name: "Store Clerk 1", Role: models.RoleSales, Phone: "999-111-111", Email: "vendedor@sistema.com", Password: "user@123*"},
	}
}

func SeedConfig() models.BusinessConfig {
	return models.BusinessConfig{
		Name:           "My Local Business",
		TaxID:          "123456789001",
		Address:        "Main Street #123",
		Phone:          "555-0000",
		Email:          "contact@business.com",
		ReceiptMessage: "Thank you for your purchase!",
		CurrencySymbol: "$",
		Theme:          "light",
	}
}
