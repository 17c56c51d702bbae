package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ecogrocery/backend/internal/api"
	"github.com/ecogrocery/backend/internal/middleware"
)

// Handlers bundles everything the router needs
type Handlers struct {
	Auth    *api.AuthHandler
	Dish    *api.DishHandler
	Grocery *api.GroceryHandler
	Pantry  *api.PantryHandler
	Health  *api.HealthHandler

	TokenValidator middleware.TokenValidator
	RateLimiter    *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}

	// Catalog browsing is open; the frontend gates itself on login
	v1.GET("/dishes", h.Dish.ListDishes)
	v1.GET("/dishes/:id", h.Dish.GetDish)
	v1.GET("/meal-choices", h.Dish.ListMealChoices)
	v1.GET("/food-types", h.Pantry.FoodTypes)

	// Session-gated routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.TokenValidator))
	{
		protected.POST("/dishes", h.Dish.CreateDish)
		protected.POST("/dishes/:id/image", h.Dish.UploadImage)
		protected.POST("/ingredients/mappings", h.Grocery.AddMapping)

		// LLM-backed routes carry a per-session rate limit
		limited := protected.Group("")
		if h.RateLimiter != nil {
			limited.Use(h.RateLimiter.Middleware())
		}
		{
			limited.POST("/ingredients", h.Grocery.DishIngredients)
			limited.POST("/grocery-list", h.Grocery.GenerateList)
			limited.POST("/storage-advice", h.Pantry.StorageAdvice)
		}
	}

	return router
}
