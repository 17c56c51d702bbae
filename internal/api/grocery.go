package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecogrocery/backend/internal/service"
)

// GroceryHandler serves grocery list generation and ingredient lookups
type GroceryHandler struct {
	groceryService    *service.GroceryService
	ingredientService *service.IngredientService
}

// NewGroceryHandler creates a new GroceryHandler instance
func NewGroceryHandler(groceryService *service.GroceryService, ingredientService *service.IngredientService) *GroceryHandler {
	return &GroceryHandler{
		groceryService:    groceryService,
		ingredientService: ingredientService,
	}
}

// GenerateList builds a combined grocery list from the selected meals
func (h *GroceryHandler) GenerateList(c *gin.Context) {
	var req GroceryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No meals selected"})
		return
	}

	list, err := h.groceryService.BuildList(c.Request.Context(), req.SelectedMeals)
	if err != nil {
		if errors.Is(err, service.ErrNoMealsSelected) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No meals selected"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// DishIngredients resolves a single dish to its fresh ingredients
func (h *GroceryHandler) DishIngredients(c *gin.Context) {
	var req DishIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dish name is required"})
		return
	}

	result, err := h.ingredientService.Resolve(c.Request.Context(), req.DishName)
	if err != nil {
		if errors.Is(err, service.ErrDishNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":       "No matching dish found",
				"suggestions": h.ingredientService.Suggestions(5),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddMapping registers colloquial terms for a dish name
func (h *GroceryHandler) AddMapping(c *gin.Context) {
	var req DishMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ingredientService.AddMapping(c.Request.Context(), req.DishName, req.Terms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store mapping"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
