package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogrocery/backend/internal/types"
)

func TestParseIngredients(t *testing.T) {
	items := parseIngredients("500 g chicken breast; 2 large onions, 200 ml coconut milk; fresh coriander")
	require.Len(t, items, 4)

	assert.Equal(t, types.PantryItem{Name: "chicken breast", Quantity: "500 g"}, items[0])
	assert.Equal(t, types.PantryItem{Name: "onions", Quantity: "2 large"}, items[1])
	assert.Equal(t, types.PantryItem{Name: "coconut milk", Quantity: "200 ml"}, items[2])
	assert.Equal(t, types.PantryItem{Name: "fresh coriander", Quantity: "as needed"}, items[3])
}

func TestParseIngredientsEmpty(t *testing.T) {
	assert.Empty(t, parseIngredients(""))
	assert.Empty(t, parseIngredients(" ; , "))
}

func TestStandardizeMeasurement(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		want     string
	}{
		{"milk", "2 cups", "480 ml"},
		{"rice", "1 cup", "150 g"},
		{"lemon juice", "3 tbsp", "45 ml"},
		{"fish sauce", "2 tsp", "10 ml"},
		{"cheddar", "8 oz", "224 g"},
		{"ground beef", "1 lb", "454 g"},
		{"chicken thighs", "as needed", "250 g"},
		{"salmon fillet", "as needed", "200 g"},
		{"carrots", "as needed", "100 g"},
		{"saffron", "as needed", "as needed"},
		{"onions", "2 large", "2 large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, standardizeMeasurement(tt.name, tt.quantity))
		})
	}
}

func TestFilterFresh(t *testing.T) {
	items := []types.PantryItem{
		{Name: "chicken breast", Quantity: "500 g"},
		{Name: "olive oil", Quantity: "2 tbsp"},
		{Name: "salt", Quantity: "as needed"},
		{Name: "tomatoes", Quantity: "300 g"},
	}

	fresh := filterFresh(items)
	require.Len(t, fresh, 2)
	assert.Equal(t, "chicken breast", fresh[0].Name)
	assert.Equal(t, "tomatoes", fresh[1].Name)
}

func TestResolveExactMatch(t *testing.T) {
	db := setupServiceTestDB(t)
	seedIngredients(t, db, map[string]string{
		"spaghetti bolognese": "400 g ground beef; 2 carrots; 1 onions",
	})

	s := NewIngredientService(db, nil)

	result, err := s.Resolve(context.Background(), "  Spaghetti Bolognese ")
	require.NoError(t, err)
	assert.Equal(t, MatchExact, result.MatchType)
	assert.Equal(t, "spaghetti bolognese", result.Dish)
	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "ground beef", result.Ingredients[0].Name)
	assert.Equal(t, "400 g", result.Ingredients[0].Quantity)
}

func TestResolveMappedDish(t *testing.T) {
	db := setupServiceTestDB(t)
	seedIngredients(t, db, map[string]string{
		"spaghetti bolognese": "400 g ground beef; 2 carrots",
	})

	s := NewIngredientService(db, nil)
	require.NoError(t, s.AddMapping(context.Background(), "spaghetti bolognese", []string{"spag bol"}))

	result, err := s.Resolve(context.Background(), "spag bol")
	require.NoError(t, err)
	assert.Equal(t, MatchMapped, result.MatchType)
	assert.Equal(t, "spaghetti bolognese", result.Dish)
	assert.NotEmpty(t, result.Ingredients)
}

func TestResolveUnknownDish(t *testing.T) {
	db := setupServiceTestDB(t)
	s := NewIngredientService(db, nil)

	_, err := s.Resolve(context.Background(), "unicorn stew")
	assert.ErrorIs(t, err, ErrDishNotFound)

	_, err = s.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrDishNotFound)
}

func TestAddMappingUpsert(t *testing.T) {
	db := setupServiceTestDB(t)
	seedIngredients(t, db, map[string]string{
		"macaroni and cheese": "300 g macaroni; 200 g cheddar",
		"spaghetti bolognese": "400 g ground beef",
	})

	s := NewIngredientService(db, nil)
	ctx := context.Background()

	require.NoError(t, s.AddMapping(ctx, "macaroni and cheese", []string{"mac n cheese"}))
	// Remapping the same term replaces the target
	require.NoError(t, s.AddMapping(ctx, "spaghetti bolognese", []string{"mac n cheese"}))

	result, err := s.Resolve(ctx, "mac n cheese")
	require.NoError(t, err)
	assert.Equal(t, "spaghetti bolognese", result.Dish)
}

func TestSuggestions(t *testing.T) {
	db := setupServiceTestDB(t)
	seedIngredients(t, db, map[string]string{
		"dish one":   "1 thing",
		"dish two":   "1 thing",
		"dish three": "1 thing",
	})

	s := NewIngredientService(db, nil)
	assert.Len(t, s.Suggestions(2), 2)
	assert.Len(t, s.Suggestions(10), 3)
}
