package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecogrocery/backend/internal/models"
	"github.com/ecogrocery/backend/internal/types"
)

func seedDishes(t *testing.T, db *gorm.DB) {
	t.Helper()
	dishes := []models.Dish{
		{ID: 1, Name: "Pad Thai", Description: "Stir-fried rice noodles", Cuisine: "Thai", ImageURL: "https://img.example.com/padthai.jpg"},
		{ID: 2, Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Cuisine: "Italian", ImageURL: "https://img.example.com/pizza.jpg"},
		{ID: 3, Name: "House Stew", Description: "Whatever is left over", ImageURL: "https://img.example.com/stew.jpg"},
	}
	for _, dish := range dishes {
		require.NoError(t, db.Create(&dish).Error)
	}
}

func TestListDishes(t *testing.T) {
	r, db := setupTestRouter(t)
	seedDishes(t, db)

	w := doJSON(r, http.MethodGet, "/api/v1/dishes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var dishes []types.SignatureDish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishes))
	assert.Len(t, dishes, 3)
}

func TestListDishesCuisineFilter(t *testing.T) {
	r, db := setupTestRouter(t)
	seedDishes(t, db)

	w := doJSON(r, http.MethodGet, "/api/v1/dishes?cuisine=thai", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var dishes []types.SignatureDish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishes))
	require.Len(t, dishes, 1)
	assert.Equal(t, "Pad Thai", dishes[0].Name)
	assert.Equal(t, "Thai", dishes[0].Cuisine)
}

func TestListDishesSearch(t *testing.T) {
	r, db := setupTestRouter(t)
	seedDishes(t, db)

	w := doJSON(r, http.MethodGet, "/api/v1/dishes?q=pizza", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var dishes []types.SignatureDish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dishes))
	require.Len(t, dishes, 1)
	assert.Equal(t, "Margherita Pizza", dishes[0].Name)
}

func TestGetDish(t *testing.T) {
	r, db := setupTestRouter(t)
	seedDishes(t, db)

	w := doJSON(r, http.MethodGet, "/api/v1/dishes/2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var dish types.SignatureDish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dish))
	assert.Equal(t, 2, dish.ID)
	assert.Equal(t, "Margherita Pizza", dish.Name)
	assert.Equal(t, "https://img.example.com/pizza.jpg", dish.ImageURL)
}

func TestGetDishNotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/dishes/99", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDishBadID(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/dishes/pizza", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMealChoicesOmitsEmptyCuisine(t *testing.T) {
	r, db := setupTestRouter(t)
	seedDishes(t, db)

	w := doJSON(r, http.MethodGet, "/api/v1/meal-choices", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var choices []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &choices))
	require.Len(t, choices, 3)

	for _, choice := range choices {
		if choice["name"] == "House Stew" {
			_, hasCuisine := choice["cuisine"]
			assert.False(t, hasCuisine, "dishes without cuisine must omit the field")
		} else {
			assert.Contains(t, choice, "cuisine")
		}
	}
}

func TestCreateDishRequiresAuth(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/dishes", map[string]interface{}{
		"id": 10, "name": "Ramen",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDish(t *testing.T) {
	r, db := setupTestRouter(t)
	token := loginForToken(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/dishes", map[string]interface{}{
		"id":          10,
		"name":        "Ramen",
		"description": "Noodles in broth",
		"cuisine":     "Japanese",
		"imageUrl":    "https://img.example.com/ramen.jpg",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var dish models.Dish
	require.NoError(t, db.First(&dish, "id = ?", 10).Error)
	assert.Equal(t, "Ramen", dish.Name)
	assert.Equal(t, "Japanese", dish.Cuisine)
}

func TestCreateDishAssignsID(t *testing.T) {
	r, db := setupTestRouter(t)
	seedDishes(t, db)
	token := loginForToken(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/dishes", map[string]interface{}{
		"name":        "Bibimbap",
		"description": "Rice bowl with vegetables and egg",
		"cuisine":     "Korean",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.SignatureDish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Greater(t, created.ID, 3, "id must be generated past the seeded rows")

	var dish models.Dish
	require.NoError(t, db.First(&dish, "id = ?", created.ID).Error)
	assert.Equal(t, "Bibimbap", dish.Name)
}
