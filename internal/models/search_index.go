package models

import "github.com/google/uuid"

// RecipeToken is one row of the inverted index over recipe titles: a
// normalized title token pointing back at the recipe it came from. Rows are
// written and removed in the same transaction as the recipe itself.
type RecipeToken struct {
	ID       uint      `gorm:"primaryKey"`
	Token    string    `gorm:"size:100;not null;index;uniqueIndex:idx_recipe_tokens_token_recipe"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recipe_tokens_token_recipe"`
}

func (RecipeToken) TableName() string {
	return "recipe_tokens"
}

// RecipeTag is one row of the tag membership index. Tags are stored
// lowercased, matching the normalized tag list on the recipe row.
type RecipeTag struct {
	ID       uint      `gorm:"primaryKey"`
	Tag      string    `gorm:"size:100;not null;index;uniqueIndex:idx_recipe_tags_tag_recipe"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recipe_tags_tag_recipe"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
