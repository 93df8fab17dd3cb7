package services

import (
	"errors"
	"testing"
	"time"

	"github.com/diewo77/go-shopchat/internal/db"
	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalog(t *testing.T) (*CatalogService, *store.Store) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := store.New(conn)
	return NewCatalogService(st), st
}

func addProduct(t *testing.T, st *store.Store, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:            name,
		Description:     "A product used by the catalog tests",
		Price:           price,
		StockQuantity:   stock,
		Category:        "Electronics",
		ManufactureDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := st.CreateProduct(&p); err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return p
}

func TestOutOfStockExact(t *testing.T) {
	svc, st := setupCatalog(t)
	gone := addProduct(t, st, "Travel Guide", 24.50, 0)
	addProduct(t, st, "Wireless Mouse", 29.99, 5)
	alsoGone := addProduct(t, st, "HDMI Cable", 9.99, 0)

	products, err := svc.OutOfStock()
	if err != nil {
		t.Fatalf("out of stock: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != gone.ID || products[1].ID != alsoGone.ID {
		t.Fatalf("unexpected result set: %+v", products)
	}
}

func TestOutOfStockEmptyIsValid(t *testing.T) {
	svc, st := setupCatalog(t)
	addProduct(t, st, "Wireless Mouse", 29.99, 5)

	products, err := svc.OutOfStock()
	if err != nil {
		t.Fatalf("out of stock: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty result, got %d", len(products))
	}
}

// Scenario: a product restocked from 0 to 5 drops out of the result.
func TestOutOfStockFollowsStockChanges(t *testing.T) {
	svc, st := setupCatalog(t)
	p := addProduct(t, st, "Wireless Mouse", 29.99, 0)

	products, err := svc.OutOfStock()
	if err != nil {
		t.Fatalf("out of stock: %v", err)
	}
	if len(products) != 1 || products[0].ID != p.ID {
		t.Fatalf("expected the new product listed, got %+v", products)
	}

	p.StockQuantity = 5
	if err := st.UpdateProduct(&p); err != nil {
		t.Fatalf("restock: %v", err)
	}
	products, err = svc.OutOfStock()
	if err != nil {
		t.Fatalf("out of stock: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("restocked product must be excluded, got %+v", products)
	}
}

func TestSearchByName(t *testing.T) {
	svc, st := setupCatalog(t)
	mouse := addProduct(t, st, "Wireless Mouse", 29.99, 5)
	addProduct(t, st, "Mechanical Keyboard", 89.90, 3)

	products, err := svc.SearchByName("MOUSE")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].ID != mouse.ID {
		t.Fatalf("case-insensitive substring expected, got %+v", products)
	}

	products, err = svc.SearchByName("")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("empty fragment matches all, got %d", len(products))
	}

	products, err = svc.SearchByName("zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("no match expected, got %+v", products)
	}
}

// LIKE metacharacters in the fragment must match literally, not as wildcards.
func TestSearchByNameWildcardsAreLiteral(t *testing.T) {
	svc, st := setupCatalog(t)
	addProduct(t, st, "Wireless Mouse", 29.99, 5)
	addProduct(t, st, "Writing Pad", 4.99, 10)
	underscored := addProduct(t, st, "Writing_Pad", 5.99, 10)

	// "w%e" is not a substring of any name; "%" must not act as a wildcard.
	products, err := svc.SearchByName("w%e")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("percent must match literally, got %+v", products)
	}

	// "_" must match only a literal underscore, not any character.
	products, err = svc.SearchByName("writing_p")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].ID != underscored.ID {
		t.Fatalf("underscore must match literally, got %+v", products)
	}
}

func TestPriceRangeInclusive(t *testing.T) {
	svc, st := setupCatalog(t)
	cheap := addProduct(t, st, "Travel Guide", 15.00, 2)
	addProduct(t, st, "Mechanical Keyboard", 150.00, 3)
	edgeLow := addProduct(t, st, "HDMI Cable", 10.00, 8)
	edgeHigh := addProduct(t, st, "Desk Lamp", 100.00, 4)

	products, err := svc.PriceRange(10, 100)
	if err != nil {
		t.Fatalf("price range: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d: %+v", len(products), products)
	}
	wantIDs := map[uint]bool{cheap.ID: true, edgeLow.ID: true, edgeHigh.ID: true}
	for _, p := range products {
		if !wantIDs[p.ID] {
			t.Errorf("unexpected product in range: %+v", p)
		}
	}
}

func TestPriceRangeInvalid(t *testing.T) {
	svc, _ := setupCatalog(t)
	if _, err := svc.PriceRange(10, 5); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("min > max must fail with ErrInvalidRange, got %v", err)
	}
}
