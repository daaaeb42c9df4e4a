package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	auth      *service.AuthService
	recipes   *service.RecipeService
	favorites *service.FavoriteService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	favoriteService := service.NewFavoriteService(db, recipeService)

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, authService, nil)
	favoriteHandler := api.NewFavoriteHandler(favoriteService, authService)

	engine := router.SetupRouter(authHandler, recipeHandler, favoriteHandler, nil)

	return &testEnv{
		router:    engine,
		db:        db,
		auth:      authService,
		recipes:   recipeService,
		favorites: favoriteService,
	}
}

// registerUser creates an account and returns the user with a valid token.
func (e *testEnv) registerUser(t *testing.T, name, email string) (*models.User, string) {
	t.Helper()
	user, token, err := e.auth.Register(context.Background(), name, email, "password-123")
	require.NoError(t, err)
	return user, token
}

// do performs a request against the test router, JSON-encoding body when
// given, and attaching the token when non-empty.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func validRecipeBody() map[string]interface{} {
	return map[string]interface{}{
		"title": "Tomato Soup",
		"ingredients": []map[string]string{
			{"name": "Tomatoes", "quantity": "1 kg"},
			{"name": "Water", "quantity": "1 L"},
		},
		"instructions": []string{"Chop the tomatoes.", "Boil everything."},
		"tags":         []string{"Soup", "Vegan"},
	}
}
