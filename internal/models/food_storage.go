package models

// FoodStorage holds storage recommendations for a food type. PantryDays and
// FridgeDays are durations in days; Method is 1 for pantry, 2 for fridge,
// 3 for freezer.
type FoodStorage struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Type       string `gorm:"size:255;index" json:"type"`
	PantryDays int    `gorm:"column:pantry_days" json:"pantry_days"`
	FridgeDays int    `gorm:"column:fridge_days" json:"fridge_days"`
	Method     int    `json:"method"`
}

func (FoodStorage) TableName() string { return "food_storage" }
