package models

import (
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/ecogrocery/backend/internal/types"
)

// Dish is a curated signature dish. The table predates this service, hence
// the legacy name.
type Dish struct {
	ID          int             `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:50;not null" json:"name"`
	Description string          `gorm:"size:128" json:"description"`
	Cuisine     string          `gorm:"size:50" json:"cuisine"`
	ImageURL    string          `gorm:"column:image_url;size:255" json:"imageUrl"`
	Embedding   pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

// TableName keeps the original table name
func (Dish) TableName() string { return "meal_data" }

// ToSignatureDish converts a catalog row into its transport shape.
func (d Dish) ToSignatureDish() types.SignatureDish {
	return types.SignatureDish{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Cuisine:     d.Cuisine,
	}
}

// ToMealChoice converts a catalog row into a meal choice; cuisine is omitted
// when the row has none.
func (d Dish) ToMealChoice() types.MealChoice {
	mc := types.MealChoice{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
	}
	if d.Cuisine != "" {
		cuisine := d.Cuisine
		mc.Cuisine = &cuisine
	}
	return mc
}
