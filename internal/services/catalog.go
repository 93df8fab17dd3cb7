// Package services holds the filtered catalog reads layered over the
// persistence gateway.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/store"
)

var (
	// ErrInvalidRange is returned when a price range has min > max.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidArgument is returned when a filter parameter is missing or
	// not numeric.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CatalogService answers the specialized product lookups. Results are always
// ordered by ID so repeated calls over unchanged data are deterministic; an
// empty slice is a valid outcome, not an error.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// OutOfStock returns exactly the products with zero stock.
func (s *CatalogService) OutOfStock() ([]models.Product, error) {
	var products []models.Product
	err := s.store.DB().
		Where("stock_quantity = 0").
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("out of stock lookup: %w", err)
	}
	return products, nil
}

// likeEscaper neutralizes LIKE metacharacters so fragments match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName matches product names case-insensitively on a substring.
// Wildcard characters in the fragment are taken literally. An empty fragment
// matches the whole catalog.
func (s *CatalogService) SearchByName(fragment string) ([]models.Product, error) {
	q := s.store.DB().Order("id")
	if fragment != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
		q = q.Where(`lower(name) LIKE ? ESCAPE '\'`, like)
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("name search: %w", err)
	}
	return products, nil
}

// PriceRange returns products with minPrice <= price <= maxPrice, bounds
// inclusive.
func (s *CatalogService) PriceRange(minPrice, maxPrice float64) ([]models.Product, error) {
	if minPrice > maxPrice {
		return nil, fmt.Errorf("%w: min price %0.2f exceeds max price %0.2f", ErrInvalidRange, minPrice, maxPrice)
	}
	var products []models.Product
	err := s.store.DB().
		Where("price >= ? AND price <= ?", minPrice, maxPrice).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("price range lookup: %w", err)
	}
	return products, nil
}
