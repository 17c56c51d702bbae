package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ecogrocery/backend/internal/types"
)

var (
	amountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(.*)$`)
	piecesPattern = regexp.MustCompile(`^(\d+)\s+(pieces?|large|medium|small)$`)
	timesPattern  = regexp.MustCompile(`^(\d+)x\s+(.*)$`)
)

// Grocery categories, in display order
var categoryOrder = []string{"Meat", "Fish", "Produce", "Dairy", "Grains", "Condiments", "Other"}

var categoryKeywords = map[string][]string{
	"Meat": {"beef", "chicken", "pork", "turkey", "veal", "lamb", "ground meat",
		"steak", "sausage", "bacon", "ham", "salami"},
	"Fish": {"fish", "salmon", "tuna", "cod", "tilapia", "shrimp", "seafood",
		"crab", "lobster", "clam", "oyster", "mussel", "scallop"},
	"Produce": {"vegetable", "fruit", "tomato", "lettuce", "onion", "garlic",
		"pepper", "carrot", "broccoli", "cabbage", "spinach", "apple", "orange",
		"banana", "herb", "lemon"},
	"Dairy":  {"milk", "cheese", "yogurt", "butter", "cream", "dairy", "ice cream"},
	"Grains": {"rice", "pasta", "bread", "flour", "cereal", "oat", "grain", "wheat", "barley"},
	"Condiments": {"sauce", "oil", "vinegar", "ketchup", "mustard", "mayo",
		"dressing", "seasoning", "spice"},
}

var pantryKeywords = []string{
	"salt", "pepper", "sugar", "flour", "oil", "vinegar", "spice", "herb",
	"seasoning", "stock", "pasta", "rice", "grain", "canned", "dried",
	"baking", "sauce",
}

// ErrNoMealsSelected is returned when a grocery list is requested without meals
var ErrNoMealsSelected = errors.New("no meals selected")

// GroceryList is a generated shopping list: combined items grouped by
// category, with pantry staples split out.
type GroceryList struct {
	Success         bool                           `json:"success"`
	Dishes          []string                       `json:"dishes"`
	MissingDishes   []string                       `json:"missing_dishes"`
	ItemsByCategory map[string][]types.GroceryItem `json:"items_by_category"`
	PantryItems     []types.PantryItem             `json:"pantry_items"`
}

// GroceryService builds shopping lists from selected meals
type GroceryService struct {
	ingredients *IngredientService
}

// NewGroceryService creates a new GroceryService instance
func NewGroceryService(ingredients *IngredientService) *GroceryService {
	return &GroceryService{ingredients: ingredients}
}

// BuildList resolves every selected meal to ingredients, scales them by
// servings, merges duplicates across meals and groups the result.
func (s *GroceryService) BuildList(ctx context.Context, meals []types.Meal) (*GroceryList, error) {
	if len(meals) == 0 {
		return nil, ErrNoMealsSelected
	}

	list := &GroceryList{
		Dishes:          []string{},
		MissingDishes:   []string{},
		ItemsByCategory: map[string][]types.GroceryItem{},
		PantryItems:     []types.PantryItem{},
	}

	var all []types.PantryItem
	for _, meal := range meals {
		if meal.Name == "" {
			continue
		}

		result, err := s.ingredients.Resolve(ctx, meal.Name)
		if err != nil {
			if errors.Is(err, ErrDishNotFound) {
				list.MissingDishes = append(list.MissingDishes, meal.Name)
				continue
			}
			return nil, err
		}

		list.Dishes = append(list.Dishes, result.Dish)
		all = append(all, ScaleIngredients(result.Ingredients, meal.Quantity)...)
	}

	list.Success = len(list.Dishes) > 0

	for _, item := range CombineIngredients(all) {
		if IsPantryStaple(item.Name) {
			list.PantryItems = append(list.PantryItems, item)
			continue
		}
		category := Categorize(item.Name)
		list.ItemsByCategory[category] = append(list.ItemsByCategory[category], types.GroceryItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Category: category,
		})
	}

	return list, nil
}

// ScaleIngredients multiplies ingredient quantities by the number of
// servings. Quantities that cannot be parsed are prefixed with "Nx".
func ScaleIngredients(items []types.PantryItem, servings int) []types.PantryItem {
	if servings <= 1 {
		return items
	}

	scaled := make([]types.PantryItem, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		scaled = append(scaled, types.PantryItem{
			Name:     item.Name,
			Quantity: scaleQuantity(item.Quantity, servings),
		})
	}
	return scaled
}

func scaleQuantity(quantity string, servings int) string {
	if quantity == "as needed" {
		return quantity
	}

	if m := piecesPattern.FindStringSubmatch(quantity); m != nil {
		count, _ := strconv.Atoi(m[1])
		total := count * servings
		return fmt.Sprintf("%d %s", total, pluralizePiece(singularPiece(m[2]), total))
	}

	if m := amountPattern.FindStringSubmatch(quantity); m != nil {
		amount := parseFloat(m[1]) * float64(servings)
		return strings.TrimSpace(formatAmount(amount) + " " + strings.TrimSpace(m[2]))
	}

	return fmt.Sprintf("%dx %s", servings, quantity)
}

// CombineIngredients merges duplicate ingredients (case-insensitive on name)
// by adding their quantities. First-seen casing is kept.
func CombineIngredients(items []types.PantryItem) []types.PantryItem {
	var order []string
	combined := map[string]types.PantryItem{}

	for _, item := range items {
		key := strings.ToLower(item.Name)
		if key == "" {
			continue
		}
		if existing, ok := combined[key]; ok {
			existing.Quantity = AddQuantities(existing.Quantity, item.Quantity)
			combined[key] = existing
		} else {
			order = append(order, key)
			combined[key] = item
		}
	}

	result := make([]types.PantryItem, 0, len(order))
	for _, key := range order {
		result = append(result, combined[key])
	}
	return result
}

// AddQuantities adds two quantity strings, converting between compatible
// units where it can. Incompatible quantities are joined with " + ".
func AddQuantities(q1, q2 string) string {
	if q1 == "as needed" {
		return q2
	}
	if q2 == "as needed" {
		return q1
	}

	// Count-style quantities first: the generic amount parse would swallow
	// "2x onion" as amount 2 with unit "x onion".
	t1 := timesPattern.FindStringSubmatch(q1)
	t2 := timesPattern.FindStringSubmatch(q2)
	if t1 != nil && t2 != nil && t1[2] == t2[2] {
		c1, _ := strconv.Atoi(t1[1])
		c2, _ := strconv.Atoi(t2[1])
		return fmt.Sprintf("%dx %s", c1+c2, t1[2])
	}

	p1 := piecesPattern.FindStringSubmatch(q1)
	p2 := piecesPattern.FindStringSubmatch(q2)
	if p1 != nil && p2 != nil && singularPiece(p1[2]) == singularPiece(p2[2]) {
		c1, _ := strconv.Atoi(p1[1])
		c2, _ := strconv.Atoi(p2[1])
		total := c1 + c2
		return fmt.Sprintf("%d %s", total, pluralizePiece(singularPiece(p1[2]), total))
	}

	m1 := amountPattern.FindStringSubmatch(q1)
	m2 := amountPattern.FindStringSubmatch(q2)
	if m1 != nil && m2 != nil {
		n1, n2 := parseFloat(m1[1]), parseFloat(m2[1])
		u1, u2 := strings.TrimSpace(m1[2]), strings.TrimSpace(m2[2])

		if u1 == u2 {
			return strings.TrimSpace(formatAmount(n1+n2) + " " + u1)
		}
		if isWeightUnit(u1) && isWeightUnit(u2) {
			return formatWeight(toGrams(n1, u1) + toGrams(n2, u2))
		}
		if isVolumeUnit(u1) && isVolumeUnit(u2) {
			return formatVolume(toMilliliters(n1, u1) + toMilliliters(n2, u2))
		}
	}

	return q1 + " + " + q2
}

// Categorize assigns an ingredient to a grocery category by keyword
func Categorize(name string) string {
	name = strings.ToLower(name)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(name, keyword) {
				return category
			}
		}
	}
	return "Other"
}

// IsPantryStaple reports whether an ingredient is typically already at home
func IsPantryStaple(name string) bool {
	name = strings.ToLower(name)
	for _, keyword := range pantryKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func isWeightUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case "g", "gram", "grams", "kg", "kilogram", "kilograms":
		return true
	}
	return false
}

func isVolumeUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case "ml", "milliliter", "milliliters", "l", "liter", "liters":
		return true
	}
	return false
}

func toGrams(value float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "kg", "kilogram", "kilograms":
		return value * 1000
	}
	return value
}

func toMilliliters(value float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "l", "liter", "liters":
		return value * 1000
	}
	return value
}

func formatWeight(grams float64) string {
	if grams >= 1000 {
		return formatAmount(grams/1000) + " kg"
	}
	return fmt.Sprintf("%d g", int(grams))
}

func formatVolume(ml float64) string {
	if ml >= 1000 {
		return formatAmount(ml/1000) + " l"
	}
	return fmt.Sprintf("%d ml", int(ml))
}

// formatAmount renders a float without trailing zeros: 2 -> "2", 2.5 -> "2.5"
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func singularPiece(unit string) string {
	if unit == "pieces" {
		return "piece"
	}
	return unit
}

func pluralizePiece(unit string, count int) string {
	if unit == "piece" && count > 1 {
		return "pieces"
	}
	return unit
}

func parseFloat(s string) float64 {
	// Fractions like "1/2" show up in legacy ingredient rows
	if idx := strings.Index(s, "/"); idx > 0 {
		num, err1 := strconv.ParseFloat(s[:idx], 64)
		den, err2 := strconv.ParseFloat(s[idx+1:], 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den
		}
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
