package types

// GroceryItem is a single entry on a generated shopping list. Quantity is
// display text ("250 g", "2 pieces", "as needed"), not a number.
type GroceryItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

// PantryItem is an ingredient the household is assumed to already have.
type PantryItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// MealChoice is a candidate meal shown for selection. Cuisine may be absent
// for dishes that were added without one.
type MealChoice struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Cuisine     *string `json:"cuisine,omitempty"`
}

// SignatureDish is a meal choice from the curated catalog. Cuisine is always
// present.
type SignatureDish struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Cuisine     string `json:"cuisine"`
}

// Meal is a meal the user selected for the week, with servings.
type Meal struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
