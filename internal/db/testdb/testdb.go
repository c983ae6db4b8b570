// Package testdb opens isolated in-memory databases for tests.
package testdb

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"grove/internal/db"
)

// Open returns an in-memory database with the full schema. Each test gets
// its own database; the shared cache keeps it alive across the pooled
// connections of one gorm.DB.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return conn
}
