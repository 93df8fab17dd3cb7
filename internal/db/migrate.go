package db

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/diewo77/go-shopchat/internal/models"
)

// Models lists every persisted entity in dependency order. The many-to-many
// join tables (order_products, chat_session_products) come out of the gorm
// tags on Order and ChatSession.
func Models() []any {
	return []any{
		&models.UserProfile{},
		&models.Product{},
		&models.Order{},
		&models.ChatSession{},
		&models.ChatMessage{},
	}
}

// Migrate applies the schema via gorm AutoMigrate and checks that the core
// tables exist afterwards.
func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"user_profiles", "products", "orders", "chat_sessions", "chat_messages", "order_products", "chat_session_products"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// MigrateSQL executes versioned SQL migrations from ./migrations against the
// given database URL. Used instead of AutoMigrate when MIGRATIONS=1.
func MigrateSQL(databaseURL string) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
