// Package store is the persistence gateway: CRUD and relationship mutations
// for every entity, with uniqueness and referential integrity enforced before
// anything is written.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-shopchat/internal/validation"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an ID has no matching row.
	ErrNotFound = errors.New("not found")
	// ErrConstraintViolation is returned when a uniqueness or check
	// constraint would be broken, or an order status would move backward.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrForeignKeyViolation is returned when a referenced ID does not exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// ValidationError carries the full list of field violations for a rejected
// write. The write is not applied.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s", strings.Join(e.Violations.Fields(), ", "))
}

// Store wraps the database handle shared by all entity operations.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// DB exposes the underlying handle for read-only query services.
func (s *Store) DB() *gorm.DB { return s.db }

// isDuplicate recognizes unique-index failures across postgres and sqlite.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "UNIQUE constraint")
}

// wrapWriteErr maps driver-level failures onto the gateway error taxonomy.
func wrapWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case strings.Contains(err.Error(), "FOREIGN KEY"), strings.Contains(err.Error(), "foreign key"):
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	default:
		return err
	}
}
