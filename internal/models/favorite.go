package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a recipe they saved. The composite unique index
// over (user_id, recipe_id) is what makes the insert an atomic
// insert-if-absent: concurrent saves of the same pair resolve to exactly one
// row at the storage layer, never by a read-then-write check in application
// code.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
