package store

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/validation"
	"gorm.io/gorm"
)

// CreateProduct validates and persists a new catalog item.
func (s *Store) CreateProduct(p *models.Product) error {
	if v := validation.Product(*p); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return wrapWriteErr(s.db.Create(p).Error)
}

func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProduct re-validates and saves an existing product. UpdatedAt
// refreshes through gorm; CreatedAt is kept from the stored row.
func (s *Store) UpdateProduct(p *models.Product) error {
	if v := validation.Product(*p); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.First(&existing, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, p.ID)
			}
			return err
		}
		p.CreatedAt = existing.CreatedAt
		return wrapWriteErr(tx.Save(p).Error)
	})
}

// DeleteProduct removes a product unless it is still referenced by an order
// or a chat session. References restrict the delete so historical orders
// keep their product set.
func (s *Store) DeleteProduct(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, id)
			}
			return err
		}
		var refs int64
		tx.Table("order_products").Where("product_id = ?", id).Count(&refs)
		if refs > 0 {
			return fmt.Errorf("%w: product %d is referenced by orders", ErrConstraintViolation, id)
		}
		tx.Table("chat_session_products").Where("product_id = ?", id).Count(&refs)
		if refs > 0 {
			return fmt.Errorf("%w: product %d is referenced by chat sessions", ErrConstraintViolation, id)
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// ListProducts returns the whole catalog ordered by ID.
func (s *Store) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// fetchProducts loads the given products inside tx and fails with a foreign
// key violation when any ID is unknown.
func fetchProducts(tx *gorm.DB, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) != len(dedupe(ids)) {
		return nil, fmt.Errorf("%w: one or more product ids do not exist", ErrForeignKeyViolation)
	}
	return products, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
