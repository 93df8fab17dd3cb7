package store

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/validation"
	"gorm.io/gorm"
)

// sumPrices computes an order total from its product set.
func sumPrices(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price
	}
	return total
}

func userExists(tx *gorm.DB, id uint) error {
	var count int64
	tx.Model(&models.UserProfile{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		return fmt.Errorf("%w: user profile %d does not exist", ErrForeignKeyViolation, id)
	}
	return nil
}

// CreateOrder persists a new order for the given product set. TotalPrice is
// computed from the current product prices; any value supplied by the caller
// is ignored. Status defaults to PENDING.
func (s *Store) CreateOrder(o *models.Order, productIDs []uint) error {
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if o.UserID != 0 {
			if err := userExists(tx, o.UserID); err != nil {
				return err
			}
		}
		products, err := fetchProducts(tx, productIDs)
		if err != nil {
			return err
		}
		o.Products = products
		o.TotalPrice = sumPrices(products)
		if v := validation.Order(*o); !v.Empty() {
			return &ValidationError{Violations: v}
		}
		return wrapWriteErr(tx.Create(o).Error)
	})
}

func (s *Store) GetOrder(id uint) (*models.Order, error) {
	var o models.Order
	if err := s.db.Preload("Products").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &o, nil
}

// applyOrderStatus moves a loaded order forward along the status progression.
func applyOrderStatus(tx *gorm.DB, o *models.Order, status models.OrderStatus) error {
	if !status.Valid() {
		return &ValidationError{Violations: validation.Violations{{Field: "status", Message: "invalid_status"}}}
	}
	if !o.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: order status cannot move from %s to %s", ErrConstraintViolation, o.Status, status)
	}
	if err := tx.Model(o).Update("status", status).Error; err != nil {
		return wrapWriteErr(err)
	}
	o.Status = status
	return nil
}

// applyOrderProducts replaces a loaded order's product set and recomputes
// TotalPrice from the current product prices, keeping the total invariant.
func applyOrderProducts(tx *gorm.DB, o *models.Order, productIDs []uint) error {
	products, err := fetchProducts(tx, productIDs)
	if err != nil {
		return err
	}
	if err := tx.Model(o).Association("Products").Replace(&products); err != nil {
		return wrapWriteErr(err)
	}
	total := sumPrices(products)
	if total > validation.MaxPrice {
		return fmt.Errorf("%w: order total %0.2f exceeds the allowed maximum", ErrConstraintViolation, total)
	}
	if err := tx.Model(o).Update("total_price", total).Error; err != nil {
		return wrapWriteErr(err)
	}
	o.Products = products
	o.TotalPrice = total
	return nil
}

// PatchOrder applies a status transition and/or a product-set replacement in
// one transaction. When both are given and either fails, neither is kept.
// OrderDate and UserID are immutable; the total only moves with the product
// set. Nil arguments leave their part of the order untouched.
func (s *Store) PatchOrder(id uint, status *models.OrderStatus, productIDs *[]uint) (*models.Order, error) {
	var out *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, id)
			}
			return err
		}
		if status != nil {
			if err := applyOrderStatus(tx, &o, *status); err != nil {
				return err
			}
		}
		if productIDs != nil {
			if err := applyOrderProducts(tx, &o, *productIDs); err != nil {
				return err
			}
		}
		out = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrder applies a status change. Backward transitions are rejected.
func (s *Store) UpdateOrder(id uint, status models.OrderStatus) (*models.Order, error) {
	return s.PatchOrder(id, &status, nil)
}

// SetOrderProducts atomically replaces an order's product set.
func (s *Store) SetOrderProducts(orderID uint, productIDs []uint) (*models.Order, error) {
	return s.PatchOrder(orderID, nil, &productIDs)
}

// DeleteOrder removes an order and its join rows. Normal operation only
// reaches this through the user cascade, but the gateway exposes it for
// administrative use.
func (s *Store) DeleteOrder(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Exec("DELETE FROM order_products WHERE order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

// ListOrders returns every order with its product set, ordered by ID.
func (s *Store) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Products").Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
