package db

import (
	"errors"
	"time"

	"github.com/diewo77/go-shopchat/internal/auth"
	"github.com/diewo77/go-shopchat/internal/models"
	"gorm.io/gorm"
)

// Seed inserts a small demo catalog and one demo account when the tables are
// empty. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	hasher := auth.BcryptHasher{}

	var demo models.UserProfile
	if err := db.Where("username = ?", "demo").First(&demo).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := hasher.Hash("demo1234")
		if err != nil {
			return err
		}
		demo = models.UserProfile{
			Username:            "demo",
			Email:               "demo@example.com",
			PasswordHash:        hash,
			FirstName:           "Demo",
			LastName:            "User",
			Address:             "1 Demo Street, Demo City",
			PreferredCategories: "Electronics, Books",
			IsActive:            true,
		}
		if err := db.Create(&demo).Error; err != nil {
			return err
		}
	}

	baseProducts := []models.Product{
		{Name: "Wireless Mouse", Description: "Compact wireless mouse with USB receiver", Price: 29.99, StockQuantity: 120, Category: "Electronics", ManufactureDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless mechanical keyboard with brown switches", Price: 89.90, StockQuantity: 45, Category: "Electronics", ManufactureDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Name: "Travel Guide Japan", Description: "Illustrated travel guide covering all regions of Japan", Price: 24.50, StockQuantity: 0, Category: "Books", ManufactureDate: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
