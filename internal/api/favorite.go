package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/service"
)

// FavoriteHandler exposes favorites under two route shapes kept
// deliberately distinct: the user-scoped routes name a target user in the
// path and verify the actor is that user, while the recipe-scoped routes
// act on the authenticated user directly with no separate check.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
	authService     middleware.TokenValidator
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, authService middleware.TokenValidator) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		authService:     authService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.authService)

	users := router.Group("/users")
	{
		users.POST("/:userId/favorites/:recipeId", authed, h.AddFavorite)
		users.DELETE("/:userId/favorites/:recipeId", authed, h.RemoveFavorite)
		users.GET("/:userId/favorites", authed, h.ListFavorites)
	}

	recipes := router.Group("/recipes")
	{
		recipes.POST("/:id/favorite", authed, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", authed, h.UnfavoriteRecipe)
	}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := service.RequireSelf(actorID, targetUserID); err != nil {
		respondError(c, err)
		return
	}

	fav, err := h.favoriteService.Add(c.Request.Context(), actorID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Recipe added to favorites",
		"favorite": fav,
	})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := service.RequireSelf(actorID, targetUserID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), actorID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from favorites"})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := service.RequireSelf(actorID, targetUserID); err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.favoriteService.ListForUser(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// FavoriteRecipe adds a favorite for the authenticated user from the recipe
// page; no target-user check is involved.
func (h *FavoriteHandler) FavoriteRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fav, err := h.favoriteService.Add(c.Request.Context(), actorID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Recipe added to favorites",
		"favorite": fav,
	})
}

func (h *FavoriteHandler) UnfavoriteRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), actorID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from favorites"})
}
