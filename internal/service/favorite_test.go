package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

func setupFavoriteTest(t *testing.T) (*service.RecipeService, *service.FavoriteService, *service.AuthService) {
	db := testhelpers.SetupTestDB(t)
	recipes := service.NewRecipeService(db)
	favorites := service.NewFavoriteService(db, recipes)
	auth := service.NewAuthService(db, "test-secret")
	return recipes, favorites, auth
}

func TestAddFavorite(t *testing.T) {
	recipes, favorites, _ := setupFavoriteTest(t)
	ctx := context.Background()
	user := uuid.New()

	recipe, err := recipes.Create(ctx, soupDraft(), uuid.New())
	require.NoError(t, err)

	fav, err := favorites.Add(ctx, user, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, user, fav.UserID)
	assert.Equal(t, recipe.ID, fav.RecipeID)
	assert.False(t, fav.CreatedAt.IsZero())

	_, err = favorites.Add(ctx, user, recipe.ID)
	assert.ErrorIs(t, err, service.ErrDuplicateFavorite)

	// A different user may favorite the same recipe.
	_, err = favorites.Add(ctx, uuid.New(), recipe.ID)
	assert.NoError(t, err)
}

func TestAddFavoriteUnknownRecipe(t *testing.T) {
	_, favorites, _ := setupFavoriteTest(t)

	_, err := favorites.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestAddFavoriteConcurrent(t *testing.T) {
	recipes, favorites, _ := setupFavoriteTest(t)
	ctx := context.Background()
	user := uuid.New()

	recipe, err := recipes.Create(ctx, soupDraft(), uuid.New())
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = favorites.Add(ctx, user, recipe.ID)
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, service.ErrDuplicateFavorite):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
}

func TestRemoveFavorite(t *testing.T) {
	recipes, favorites, _ := setupFavoriteTest(t)
	ctx := context.Background()
	user := uuid.New()

	recipe, err := recipes.Create(ctx, soupDraft(), uuid.New())
	require.NoError(t, err)

	_, err = favorites.Add(ctx, user, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, favorites.Remove(ctx, user, recipe.ID))
	assert.ErrorIs(t, favorites.Remove(ctx, user, recipe.ID), service.ErrFavoriteNotFound)

	// Removing may only touch the exact pair: another user's favorite stays.
	other := uuid.New()
	_, err = favorites.Add(ctx, other, recipe.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, favorites.Remove(ctx, user, recipe.ID), service.ErrFavoriteNotFound)
	assert.NoError(t, favorites.Remove(ctx, other, recipe.ID))
}

func TestListFavoritesOrderAndOwnerEmail(t *testing.T) {
	recipes, favorites, auth := setupFavoriteTest(t)
	ctx := context.Background()

	owner, _, err := auth.Register(ctx, "Alice", "alice@example.com", "password-123")
	require.NoError(t, err)
	user := uuid.New()

	var created []*models.Recipe
	for _, title := range []string{"Dish A", "Dish B", "Dish C"} {
		draft := soupDraft()
		draft.Title = title
		recipe, err := recipes.Create(ctx, draft, owner.ID)
		require.NoError(t, err)
		created = append(created, recipe)
	}

	// Favorite in order A, B, C.
	for _, recipe := range created {
		_, err := favorites.Add(ctx, user, recipe.ID)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	list, err := favorites.ListForUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Most recently favorited first: C, B, A.
	assert.Equal(t, "Dish C", list[0].Title)
	assert.Equal(t, "Dish B", list[1].Title)
	assert.Equal(t, "Dish A", list[2].Title)

	for _, item := range list {
		assert.Equal(t, "alice@example.com", item.OwnerEmail)
		assert.False(t, item.FavoritedAt.IsZero())
	}
}

func TestListFavoritesEmpty(t *testing.T) {
	_, favorites, _ := setupFavoriteTest(t)

	list, err := favorites.ListForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeletingRecipeDoesNotCascadeToFavorites(t *testing.T) {
	recipes, favorites, _ := setupFavoriteTest(t)
	ctx := context.Background()
	owner := uuid.New()
	user := uuid.New()

	recipe, err := recipes.Create(ctx, soupDraft(), owner)
	require.NoError(t, err)
	_, err = favorites.Add(ctx, user, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, recipes.Delete(ctx, recipe.ID, owner))

	// The favorite row survives; the listing just skips the dangling entry.
	list, err := favorites.ListForUser(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, favorites.Remove(ctx, user, recipe.ID))
}

func TestFavoriteEndToEnd(t *testing.T) {
	recipes, favorites, auth := setupFavoriteTest(t)
	ctx := context.Background()

	u1, _, err := auth.Register(ctx, "U1", "u1@example.com", "password-123")
	require.NoError(t, err)
	u2, _, err := auth.Register(ctx, "U2", "u2@example.com", "password-123")
	require.NoError(t, err)

	recipe, err := recipes.Create(ctx, service.RecipeDraft{
		Title:        "Soup",
		Ingredients:  []models.Ingredient{{Name: "Water", Quantity: "1L"}},
		Instructions: []string{"Boil"},
		Tags:         []string{"Easy"},
	}, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"easy"}, recipe.Tags)

	_, err = favorites.Add(ctx, u2.ID, recipe.ID)
	require.NoError(t, err)

	_, err = favorites.Add(ctx, u2.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrDuplicateFavorite)

	list, err := favorites.ListForUser(ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Soup", list[0].Title)
	assert.Equal(t, "u1@example.com", list[0].OwnerEmail)
}
