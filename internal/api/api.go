package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

// Services bundles everything the handlers need. RateLimiter and Uploader
// may be nil.
type Services struct {
	Auth        *service.AuthService
	Inventory   *service.InventoryService
	Recipes     *service.RecipeService
	AI          *service.AIService
	Profile     *service.ProfileService
	Uploader    service.Uploader
	RateLimiter *middleware.RateLimiter
}

// SetupAPI registers the /api/v1 routes.
func SetupAPI(router *gin.Engine, svc Services) {
	v1 := router.Group("/api/v1")
	v1.Use(middleware.ErrorHandler())

	NewAuthHandler(svc.Auth).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	{
		NewItemHandler(svc.Inventory).RegisterRoutes(protected)
		NewRecipeHandler(svc.Recipes).RegisterRoutes(protected)
		NewProfileHandler(svc.Profile).RegisterRoutes(protected)
		NewUploadHandler(svc.Uploader).RegisterRoutes(protected)

		ai := protected.Group("/ai")
		if svc.RateLimiter != nil {
			ai.Use(svc.RateLimiter.RateLimitMiddleware())
		}
		NewAIHandler(svc.AI, svc.Inventory, svc.Recipes).RegisterRoutes(ai)
	}
}
