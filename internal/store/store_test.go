package store

import (
	"testing"
	"time"

	"github.com/diewo77/go-shopchat/internal/db"
	"github.com/diewo77/go-shopchat/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(conn)
}

func seedUser(t *testing.T, s *Store, username string) models.UserProfile {
	t.Helper()
	u := models.UserProfile{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Address:      "12 Test Street, Testville",
		IsActive:     true,
	}
	if err := s.CreateUserProfile(&u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedProduct(t *testing.T, s *Store, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:            name,
		Description:     "A product used by the store tests",
		Price:           price,
		StockQuantity:   stock,
		Category:        "Electronics",
		ManufactureDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreateProduct(&p); err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}
