package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/search"
)

// RecipeService owns the recipes collection: structural validation, the
// createdBy ownership rule on mutation, and keeping the search index in step
// with every write. Entity and index rows change inside one transaction, so
// a reader never observes a recipe without its index entries or vice versa.
type RecipeService struct {
	db  *gorm.DB
	idx search.Index
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeDraft carries the caller-supplied fields of a recipe. Identity,
// ownership and timestamps are never taken from a draft.
type RecipeDraft struct {
	Title        string              `json:"title"`
	Ingredients  []models.Ingredient `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Tags         []string            `json:"tags"`
}

// SearchCriteria filters the recipe listing. Zero-valued fields are
// ignored; when both are set the result is the intersection.
type SearchCriteria struct {
	Text string
	Tag  string
}

func validateDraft(d *RecipeDraft) error {
	verr := &ValidationError{}

	if strings.TrimSpace(d.Title) == "" {
		verr.add("title", "title is required")
	}

	if len(d.Ingredients) == 0 {
		verr.add("ingredients", "at least one ingredient is required")
	}
	for i, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			verr.add(fmt.Sprintf("ingredients[%d].name", i), "ingredient name is required")
		}
		if strings.TrimSpace(ing.Quantity) == "" {
			verr.add(fmt.Sprintf("ingredients[%d].quantity", i), "ingredient quantity is required")
		}
	}

	if len(d.Instructions) == 0 {
		verr.add("instructions", "at least one instruction is required")
	}
	for i, step := range d.Instructions {
		if strings.TrimSpace(step) == "" {
			verr.add(fmt.Sprintf("instructions[%d]", i), "instruction must not be empty")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// normalizeTags lowercases and trims tags and drops duplicates and blanks.
func normalizeTags(tags []string) models.StringList {
	seen := make(map[string]struct{}, len(tags))
	out := make(models.StringList, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func applyDraft(recipe *models.Recipe, d *RecipeDraft) {
	recipe.Title = strings.TrimSpace(d.Title)
	recipe.Ingredients = make(models.IngredientList, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		recipe.Ingredients[i] = models.Ingredient{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: strings.TrimSpace(ing.Quantity),
		}
	}
	recipe.Instructions = make(models.StringList, len(d.Instructions))
	for i, step := range d.Instructions {
		recipe.Instructions[i] = strings.TrimSpace(step)
	}
	recipe.Tags = normalizeTags(d.Tags)
}

// Create validates the draft, assigns identity and ownership, and persists
// the recipe together with its index entries.
func (s *RecipeService) Create(ctx context.Context, draft RecipeDraft, ownerID uuid.UUID) (*models.Recipe, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:        uuid.New(),
		CreatedBy: ownerID,
		CreatedAt: time.Now().UTC(),
	}
	applyDraft(recipe, &draft)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return s.idx.Put(tx, recipe)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get retrieves a recipe by ID
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Search lists recipes matching the criteria, newest first. Text matches on
// title token overlap via the inverted index; tag matches on exact
// membership after lowercasing. An empty criteria lists everything.
func (s *RecipeService) Search(ctx context.Context, criteria SearchCriteria) ([]*models.Recipe, error) {
	db := s.db.WithContext(ctx)
	query := db.Model(&models.Recipe{})

	if criteria.Text != "" {
		ids, err := s.idx.RecipeIDsByTokens(db, search.Tokenize(criteria.Text))
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []*models.Recipe{}, nil
		}
		query = query.Where("id IN ?", ids)
	}

	if criteria.Tag != "" {
		ids, err := s.idx.RecipeIDsByTag(db, strings.ToLower(strings.TrimSpace(criteria.Tag)))
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []*models.Recipe{}, nil
		}
		query = query.Where("id IN ?", ids)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// Update replaces the caller-editable fields of a recipe the actor owns.
// The lookup filters by id and created_by in one query, so a recipe owned
// by someone else is reported as not found rather than forbidden.
func (s *RecipeService) Update(ctx context.Context, id, actorID uuid.UUID, draft RecipeDraft) (*models.Recipe, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ? AND created_by = ?", id, actorID).Error; err != nil {
			return err
		}

		applyDraft(&recipe, &draft)
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if err := s.idx.Remove(tx, recipe.ID); err != nil {
			return err
		}
		return s.idx.Put(tx, &recipe)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe the actor owns along with its index entries.
// Ownership mismatch surfaces as ErrRecipeNotFound, same as Update.
// Favorites referencing the recipe are left in place.
func (s *RecipeService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND created_by = ?", id, actorID).Delete(&models.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return s.idx.Remove(tx, id)
	})
}
