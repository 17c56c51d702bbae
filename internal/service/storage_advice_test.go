package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogrocery/backend/internal/models"
)

func TestAdviseFromDatabase(t *testing.T) {
	db := setupServiceTestDB(t)
	require.NoError(t, db.Create(&models.FoodStorage{
		Type: "Tomatoes", PantryDays: 5, FridgeDays: 12, Method: 2,
	}).Error)

	s := NewStorageAdviceService(db, nil)

	advice, err := s.Advise(context.Background(), "tomatoes")
	require.NoError(t, err)
	assert.Equal(t, "database", advice.Source)
	assert.Equal(t, 5, advice.PantryDays)
	assert.Equal(t, 12, advice.FridgeDays)
	assert.Equal(t, 2, advice.Method)
}

func TestAdvisePartialMatch(t *testing.T) {
	db := setupServiceTestDB(t)
	require.NoError(t, db.Create(&models.FoodStorage{
		Type: "Tomatoes", PantryDays: 5, FridgeDays: 12, Method: 2,
	}).Error)

	s := NewStorageAdviceService(db, nil)

	// "cherry tomatoes" is not in the table, but "tomatoes" is
	advice, err := s.Advise(context.Background(), "cherry tomatoes")
	require.NoError(t, err)
	assert.Equal(t, "database", advice.Source)
	assert.Equal(t, 12, advice.FridgeDays)
}

func TestAdviseDefaults(t *testing.T) {
	db := setupServiceTestDB(t)
	s := NewStorageAdviceService(db, nil)

	advice, err := s.Advise(context.Background(), "dragon fruit")
	require.NoError(t, err)
	assert.Equal(t, "database_default", advice.Source)
	assert.Equal(t, defaultPantryDays, advice.PantryDays)
	assert.Equal(t, defaultFridgeDays, advice.FridgeDays)
	assert.Equal(t, defaultMethod, advice.Method)
}

func TestFoodTypes(t *testing.T) {
	db := setupServiceTestDB(t)
	for _, foodType := range []string{"Tomatoes", "Apples", "Tomatoes"} {
		require.NoError(t, db.Create(&models.FoodStorage{Type: foodType, PantryDays: 3, FridgeDays: 7, Method: 1}).Error)
	}

	s := NewStorageAdviceService(db, nil)
	foodTypes, err := s.FoodTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Apples", "Tomatoes"}, foodTypes)
}
