package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage keys. One addressable blob per collection, same keys the
// installations have always used so existing data stays readable.
const (
	KeyProducts   = "gp_db_products"
	KeySuppliers  = "gp_db_suppliers"
	KeyCustomers  = "gp_db_customers"
	KeyEmployees  = "gp_db_employees"
	KeySales      = "gp_db_sales"
	KeyExpenses   = "gp_db_expenses"
	KeyQuotations = "gp_db_quotations"
	KeyConfig     = "gp_db_config"
	KeyLogs       = "gp_db_inventory_logs"
)

// Record is one persisted blob: a storage key and its JSON payload.
type Record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}

// WriteError reports a failed persistence write. Callers must treat the
// operation as failed; nothing was durably saved for this key.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: writing %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store is the key/value medium every other component persists through.
// It is a plain handle, not a singleton, so tests can run several side
// by side.
type Store struct {
	db *gorm.DB
}

// Open connects the store to its backing database. driver is "sqlite"
// (default, local file or :memory:) or "mysql" (dsn required). MySQL gets a
// short retry loop because the server may still be starting alongside us.
func Open(driver, dsn string) (*Store, error) {
	var dial gorm.Dialector
	switch driver {
	case "mysql":
		dial = mysql.Open(dsn)
	default:
		if dsn == "" {
			dsn = "gestorpro.db"
		}
		dial = sqlite.Open(dsn)
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(dial, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Get reads and decodes the blob at key. A missing, unreadable or corrupt
// blob is logged and answered with def: a broken local store must never
// crash the application, it just looks freshly seeded.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error loading database key %s: %v", key, err)
		}
		return def
	}

	var out T
	if err := json.Unmarshal([]byte(rec.Value), &out); err != nil {
		log.Printf("Error loading database key %s: %v", key, err)
		return def
	}
	return out
}

// Set encodes v and writes it at key, replacing the previous blob. A failed
// write comes back as a *WriteError so the caller can refuse the operation
// instead of carrying on with unsaved state.
func Set[T any](ctx context.Context, s *Store, key string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}

	rec := Record{Key: key, Value: string(payload), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		log.Printf("Error saving database key %s: %v", key, err)
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
