package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe(t *testing.T) {
	env := setupEnv(t)
	_, token := env.registerUser(t, "Alice", "alice@example.com")

	w := env.do(t, "POST", "/api/v1/recipes", token, validRecipeBody())
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeJSON(t, w)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "Tomato Soup", resp["title"])
	assert.Equal(t, []interface{}{"soup", "vegan"}, resp["tags"])
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/api/v1/recipes", "", validRecipeBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeValidationErrors(t *testing.T) {
	env := setupEnv(t)
	_, token := env.registerUser(t, "Alice", "alice@example.com")

	body := validRecipeBody()
	body["ingredients"] = []map[string]string{}
	body["instructions"] = []string{}

	w := env.do(t, "POST", "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON(t, w)
	fields, ok := resp["fields"].(map[string]interface{})
	require.True(t, ok, "expected fields map in response")
	assert.Contains(t, fields, "ingredients")
	assert.Contains(t, fields, "instructions")
}

func TestGetRecipe(t *testing.T) {
	env := setupEnv(t)
	_, token := env.registerUser(t, "Alice", "alice@example.com")

	w := env.do(t, "POST", "/api/v1/recipes", token, validRecipeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeJSON(t, w)["id"].(string)

	// Reads are public.
	w = env.do(t, "GET", "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decodeJSON(t, w)["id"])

	w = env.do(t, "GET", "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesWithSearchAndTag(t *testing.T) {
	env := setupEnv(t)
	_, token := env.registerUser(t, "Alice", "alice@example.com")

	w := env.do(t, "POST", "/api/v1/recipes", token, validRecipeBody())
	require.Equal(t, http.StatusCreated, w.Code)

	cake := validRecipeBody()
	cake["title"] = "Lemon Cake"
	cake["tags"] = []string{"Dessert"}
	w = env.do(t, "POST", "/api/v1/recipes", token, cake)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "GET", "/api/v1/recipes?search=tomato", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decodeJSON(t, w)["recipes"].([]interface{})
	assert.Len(t, recipes, 1)

	// Tag filter is case-insensitive.
	w = env.do(t, "GET", "/api/v1/recipes?tag=DESSERT", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes = decodeJSON(t, w)["recipes"].([]interface{})
	assert.Len(t, recipes, 1)

	// No match is an empty list, not an error.
	w = env.do(t, "GET", "/api/v1/recipes?search=sushi", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes = decodeJSON(t, w)["recipes"].([]interface{})
	assert.Empty(t, recipes)
}

func TestUpdateRecipeOwnershipHiddenAsNotFound(t *testing.T) {
	env := setupEnv(t)
	_, ownerToken := env.registerUser(t, "Alice", "alice@example.com")
	_, otherToken := env.registerUser(t, "Bob", "bob@example.com")

	w := env.do(t, "POST", "/api/v1/recipes", ownerToken, validRecipeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeJSON(t, w)["id"].(string)

	update := validRecipeBody()
	update["title"] = "Stolen Soup"

	// Another user's update reports not found, never forbidden.
	w = env.do(t, "PUT", "/api/v1/recipes/"+id, otherToken, update)
	assert.Equal(t, http.StatusNotFound, w.Code)

	update["title"] = "Improved Soup"
	w = env.do(t, "PUT", "/api/v1/recipes/"+id, ownerToken, update)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Improved Soup", decodeJSON(t, w)["title"])
}

func TestDeleteRecipe(t *testing.T) {
	env := setupEnv(t)
	_, ownerToken := env.registerUser(t, "Alice", "alice@example.com")
	_, otherToken := env.registerUser(t, "Bob", "bob@example.com")

	w := env.do(t, "POST", "/api/v1/recipes", ownerToken, validRecipeBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeJSON(t, w)["id"].(string)

	w = env.do(t, "DELETE", "/api/v1/recipes/"+id, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, "DELETE", "/api/v1/recipes/"+id, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
