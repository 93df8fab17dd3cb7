package store

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/validation"
	"gorm.io/gorm"
)

// CreateSession persists a new chat session, optionally linked to the
// products under discussion.
func (s *Store) CreateSession(cs *models.ChatSession, productIDs []uint) error {
	if v := validation.ChatSession(*cs); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, cs.UserID); err != nil {
			return err
		}
		products, err := fetchProducts(tx, productIDs)
		if err != nil {
			return err
		}
		cs.Products = products
		return wrapWriteErr(tx.Create(cs).Error)
	})
}

// GetSession loads a session with its products and its messages in
// timestamp order.
func (s *Store) GetSession(id uint) (*models.ChatSession, error) {
	var cs models.ChatSession
	err := s.db.Preload("Products").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp, id")
		}).
		First(&cs, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat session %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &cs, nil
}

// SetSessionProducts atomically replaces the products linked to a session.
func (s *Store) SetSessionProducts(sessionID uint, productIDs []uint) (*models.ChatSession, error) {
	var out *models.ChatSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cs models.ChatSession
		if err := tx.First(&cs, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: chat session %d", ErrNotFound, sessionID)
			}
			return err
		}
		products, err := fetchProducts(tx, productIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&cs).Association("Products").Replace(&products); err != nil {
			return wrapWriteErr(err)
		}
		cs.Products = products
		out = &cs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSession removes a session, its messages and its product links in one
// transaction.
func (s *Store) DeleteSession(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cs models.ChatSession
		if err := tx.First(&cs, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: chat session %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Where("chat_session_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM chat_session_products WHERE chat_session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChatSession{}, id).Error
	})
}

// ListSessions returns every session with its products, ordered by ID.
func (s *Store) ListSessions() ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := s.db.Preload("Products").Order("id").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateMessage validates and persists one chat turn.
func (s *Store) CreateMessage(m *models.ChatMessage) error {
	if v := validation.ChatMessage(*m); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.ChatSession{}).Where("id = ?", m.ChatSessionID).Count(&count)
		if count == 0 {
			return fmt.Errorf("%w: chat session %d does not exist", ErrForeignKeyViolation, m.ChatSessionID)
		}
		return wrapWriteErr(tx.Create(m).Error)
	})
}

func (s *Store) GetMessage(id uint) (*models.ChatMessage, error) {
	var m models.ChatMessage
	if err := s.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat message %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &m, nil
}

// UpdateMessage allows correcting a message's content or type. The session
// link and timestamp are immutable.
func (s *Store) UpdateMessage(m *models.ChatMessage) error {
	if v := validation.ChatMessage(*m); !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ChatMessage
		if err := tx.First(&existing, m.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: chat message %d", ErrNotFound, m.ID)
			}
			return err
		}
		m.ChatSessionID = existing.ChatSessionID
		m.Timestamp = existing.Timestamp
		return wrapWriteErr(tx.Save(m).Error)
	})
}

func (s *Store) DeleteMessage(id uint) error {
	res := s.db.Delete(&models.ChatMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: chat message %d", ErrNotFound, id)
	}
	return nil
}

// ListMessages returns messages, optionally scoped to one session, in
// timestamp order.
func (s *Store) ListMessages(sessionID uint) ([]models.ChatMessage, error) {
	q := s.db.Order("timestamp, id")
	if sessionID != 0 {
		q = q.Where("chat_session_id = ?", sessionID)
	}
	var messages []models.ChatMessage
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
