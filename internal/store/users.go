package store

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/validation"
	"gorm.io/gorm"
)

// checkProfileUnique looks up username/email collisions, excluding selfID so
// updates do not trip over the row being updated.
func (s *Store) checkProfileUnique(tx *gorm.DB, u models.UserProfile, selfID uint) error {
	var count int64
	tx.Model(&models.UserProfile{}).
		Where("username = ? AND id <> ?", u.Username, selfID).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("%w: username %q already taken", ErrConstraintViolation, u.Username)
	}
	tx.Model(&models.UserProfile{}).
		Where("email = ? AND id <> ?", u.Email, selfID).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("%w: email %q already taken", ErrConstraintViolation, u.Email)
	}
	return nil
}

// CreateUserProfile validates and persists a new profile.
func (s *Store) CreateUserProfile(u *models.UserProfile) error {
	if v := validation.UserProfile(*u); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkProfileUnique(tx, *u, 0); err != nil {
			return err
		}
		return wrapWriteErr(tx.Create(u).Error)
	})
}

func (s *Store) GetUserProfile(id uint) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user profile %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUserProfile re-validates and saves an existing profile.
func (s *Store) UpdateUserProfile(u *models.UserProfile) error {
	if v := validation.UserProfile(*u); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.UserProfile
		if err := tx.First(&existing, u.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user profile %d", ErrNotFound, u.ID)
			}
			return err
		}
		if err := s.checkProfileUnique(tx, *u, u.ID); err != nil {
			return err
		}
		// DateJoined is immutable.
		u.DateJoined = existing.DateJoined
		return wrapWriteErr(tx.Save(u).Error)
	})
}

// DeleteUserProfile removes a profile and everything it owns: its orders,
// its chat sessions, and those sessions' messages. Products referenced by
// the removed rows are left intact. The whole cascade runs in one
// transaction.
func (s *Store) DeleteUserProfile(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var u models.UserProfile
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user profile %d", ErrNotFound, id)
			}
			return err
		}

		var sessionIDs []uint
		if err := tx.Model(&models.ChatSession{}).Where("user_id = ?", id).Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Where("chat_session_id IN ?", sessionIDs).Delete(&models.ChatMessage{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM chat_session_products WHERE chat_session_id IN ?", sessionIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sessionIDs).Delete(&models.ChatSession{}).Error; err != nil {
				return err
			}
		}

		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("user_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Exec("DELETE FROM order_products WHERE order_id IN ?", orderIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.UserProfile{}, id).Error
	})
}

// ListUserProfiles returns every profile ordered by ID for deterministic
// pagination.
func (s *Store) ListUserProfiles() ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
