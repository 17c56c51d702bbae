package models

// DishIngredient maps a dish name to its raw ingredients text. The text is
// semicolon or comma separated, e.g. "500 g chicken breast; 2 onions".
type DishIngredient struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Dish        string `gorm:"size:255;not null;index" json:"dish"`
	Ingredients string `gorm:"column:ingredients;type:text" json:"ingredients"`
}

func (DishIngredient) TableName() string { return "food_ingredients" }

// DishMapping links a colloquial user term ("spag bol") to the canonical dish
// name used in food_ingredients.
type DishMapping struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserTerm string `gorm:"size:255;not null;uniqueIndex" json:"user_term"`
	DishName string `gorm:"size:255;not null" json:"dish_name"`
}

func (DishMapping) TableName() string { return "dish_mappings" }
