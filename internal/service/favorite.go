package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
)

// FavoriteService owns the favorites collection and its one invariant: at
// most one favorite per (user, recipe) pair. The invariant is enforced by
// the unique index on the favorites table, so a single INSERT is the whole
// check — under concurrent adds for the same pair exactly one caller gets
// the row and the rest get the duplicate-key outcome.
type FavoriteService struct {
	db      *gorm.DB
	recipes *RecipeService
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB, recipes *RecipeService) *FavoriteService {
	return &FavoriteService{db: db, recipes: recipes}
}

// FavoritedRecipe is the read-side join of a favorite to its recipe and the
// recipe owner's contact email.
type FavoritedRecipe struct {
	models.Recipe
	OwnerEmail  string    `json:"owner_email"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// Add saves a favorite for the user. The recipe must exist; a favorite for
// the same pair must not.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) (*models.Favorite, error) {
	if _, err := s.recipes.Get(ctx, recipeID); err != nil {
		return nil, err
	}

	fav := &models.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}
	return fav, nil
}

// Remove deletes the favorite matching exactly the (user, recipe) pair.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListForUser resolves the user's favorites to their recipes, most recently
// favorited first, each annotated with the owning user's email. Favorites
// whose recipe has since been deleted are skipped (deleting a recipe does
// not cascade to favorites).
func (s *FavoriteService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*FavoritedRecipe, error) {
	db := s.db.WithContext(ctx)

	var favorites []models.Favorite
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error; err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []*FavoritedRecipe{}, nil
	}

	recipeIDs := make([]uuid.UUID, len(favorites))
	for i, fav := range favorites {
		recipeIDs[i] = fav.RecipeID
	}

	var recipes []models.Recipe
	if err := db.Where("id IN ?", recipeIDs).Find(&recipes).Error; err != nil {
		return nil, err
	}
	recipeByID := make(map[uuid.UUID]*models.Recipe, len(recipes))
	ownerIDs := make([]uuid.UUID, 0, len(recipes))
	for i := range recipes {
		recipeByID[recipes[i].ID] = &recipes[i]
		ownerIDs = append(ownerIDs, recipes[i].CreatedBy)
	}

	var owners []models.User
	if len(ownerIDs) > 0 {
		if err := db.Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
			return nil, err
		}
	}
	emailByID := make(map[uuid.UUID]string, len(owners))
	for _, owner := range owners {
		emailByID[owner.ID] = owner.Email
	}

	result := make([]*FavoritedRecipe, 0, len(favorites))
	for _, fav := range favorites {
		recipe, ok := recipeByID[fav.RecipeID]
		if !ok {
			continue
		}
		result = append(result, &FavoritedRecipe{
			Recipe:      *recipe,
			OwnerEmail:  emailByID[recipe.CreatedBy],
			FavoritedAt: fav.CreatedAt,
		})
	}
	return result, nil
}
