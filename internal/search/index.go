// Package search maintains the inverted token index over recipe titles and
// the tag membership index. Lookups are indexed equality matches on
// normalized values, not substring scans over the recipes table.
package search

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
)

// Tokenize normalizes free text into the tokens the title index stores:
// lowercased, split on anything that is not a letter or digit, deduplicated.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// Index reads and writes the recipe_tokens and recipe_tags tables. Mutating
// methods take the caller's transaction handle so index rows commit or roll
// back together with the recipe row they describe.
type Index struct{}

// Put writes the title tokens and tags of a recipe. The recipe must not
// already be indexed; re-indexing an updated recipe goes through Remove
// first.
func (Index) Put(tx *gorm.DB, recipe *models.Recipe) error {
	for _, token := range Tokenize(recipe.Title) {
		row := models.RecipeToken{Token: token, RecipeID: recipe.ID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for _, tag := range recipe.Tags {
		row := models.RecipeTag{Tag: tag, RecipeID: recipe.ID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

// Remove deletes every index row pointing at the given recipe.
func (Index) Remove(tx *gorm.DB, recipeID uuid.UUID) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeToken{}).Error; err != nil {
		return err
	}
	return tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error
}

// RecipeIDsByTokens returns the ids of recipes whose indexed title tokens
// overlap the given query tokens.
func (Index) RecipeIDsByTokens(db *gorm.DB, tokens []string) ([]uuid.UUID, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var ids []uuid.UUID
	err := db.Model(&models.RecipeToken{}).
		Distinct("recipe_id").
		Where("token IN ?", tokens).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// RecipeIDsByTag returns the ids of recipes carrying the given tag. The tag
// is expected to be lowercased already.
func (Index) RecipeIDsByTag(db *gorm.DB, tag string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&models.RecipeTag{}).
		Distinct("recipe_id").
		Where("tag = ?", tag).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
