package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/quest-tracker-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates the node and edge tables and seeds the category catalog.
func Migrate(db *gorm.DB) error {
	slog.Info("running database migrations")
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Quest{},
		&models.OwnsEdge{},
		&models.CategorizedAsEdge{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, stmt := range exactMatchStatements(db.Dialector.Name()) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to set binary collation: %w", err)
		}
	}

	if err := SeedCategories(db); err != nil {
		return err
	}

	slog.Info("database migrations completed")
	return nil
}

// exactMatchStatements switches MySQL's case- and accent-insensitive default
// collation to a binary one on every column compared for equality, so unique
// indexes and lookups match exact bytes as they do on postgres and sqlite.
func exactMatchStatements(dialect string) []string {
	if dialect != "mysql" {
		return nil
	}
	return []string{
		"ALTER TABLE quests MODIFY title varchar(30) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		"ALTER TABLE users MODIFY username varchar(30) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		"ALTER TABLE categories MODIFY name varchar(30) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
	}
}

// SeedCategories inserts any catalog category that is not yet present.
func SeedCategories(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range models.CategoryCatalog {
			category := models.Category{Name: name}
			if err := tx.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", name, err)
			}
		}
		return nil
	})
}
