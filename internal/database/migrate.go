package database

import (
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
)

// RunMigrations creates or updates the schema for all persisted entities,
// including the unique index on favorites and the search index tables.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Favorite{},
		&models.RecipeToken{},
		&models.RecipeTag{},
	)
}
