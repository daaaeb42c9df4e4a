package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

// Verifies the uniqueness invariant against real PostgreSQL, where the
// concurrent inserts genuinely race instead of being serialized by SQLite.
func TestAddFavoriteConcurrentPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupPostgres(t)
	recipes := service.NewRecipeService(db)
	favorites := service.NewFavoriteService(db, recipes)
	ctx := context.Background()
	user := uuid.New()

	recipe, err := recipes.Create(ctx, soupDraft(), uuid.New())
	require.NoError(t, err)

	const attempts = 16
	errs := make([]error, attempts)

	var start sync.WaitGroup
	start.Add(1)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			_, errs[i] = favorites.Add(ctx, user, recipe.ID)
		}(i)
	}
	start.Done()
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
