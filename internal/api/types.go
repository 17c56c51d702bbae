package api

import "github.com/ecogrocery/backend/internal/types"

// LoginRequest is the body for the site-password gate
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// GroceryListRequest selects the meals a shopping list is built from
type GroceryListRequest struct {
	SelectedMeals []types.Meal `json:"selected_meals" binding:"required"`
}

// DishIngredientsRequest names the dish to resolve
type DishIngredientsRequest struct {
	DishName string `json:"dish_name" binding:"required"`
}

// DishMappingRequest registers colloquial terms for a canonical dish name
type DishMappingRequest struct {
	DishName string   `json:"dish_name" binding:"required"`
	Terms    []string `json:"terms" binding:"required"`
}

// StorageAdviceRequest names the food type to advise on
type StorageAdviceRequest struct {
	FoodType string `json:"food_type" binding:"required"`
}
