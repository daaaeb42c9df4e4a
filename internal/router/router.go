package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	favoriteHandler *api.FavoriteHandler,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	favoriteHandler.RegisterRoutes(v1)

	return router
}
