package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecogrocery/backend/internal/models"
	"github.com/ecogrocery/backend/internal/types"
)

// ErrDishNotFound is returned when a dish cannot be resolved by any of the
// lookup steps.
var ErrDishNotFound = errors.New("no matching dish found")

// Match types reported by Resolve
const (
	MatchExact     = "exact"
	MatchMapped    = "mapped"
	MatchGenerated = "generated"
)

// householdStaples are excluded from ingredient results; shoppers are assumed
// to have them at home.
var householdStaples = []string{
	"salt", "pepper", "olive oil", "vegetable oil", "canola oil", "cooking oil",
	"sugar", "flour", "baking powder", "baking soda", "vanilla extract",
	"soy sauce", "vinegar", "oil", "black pepper", "white pepper", "oregano",
	"basil", "thyme", "rosemary", "paprika", "cumin", "cinnamon", "nutmeg",
	"mayonnaise", "ketchup", "mustard", "hot sauce", "butter", "margarine",
	"dried herbs", "spices", "seasoning",
}

var (
	quantityPrefixPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:/\d+)?)\s*([a-zA-Z]+)?\s+(.+)$`)
	cupPattern            = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*cups?`)
	tbspPattern           = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:tbsp|tablespoons?)`)
	tspPattern            = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:tsp|teaspoons?)`)
	ozPattern             = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:oz|ounces?)`)
	lbPattern             = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:lb|pounds?)`)
)

// IngredientResult is the outcome of resolving a dish to its ingredients
type IngredientResult struct {
	Dish        string            `json:"dish"`
	Ingredients []types.PantryItem `json:"ingredients"`
	MatchType   string            `json:"match_type"`
}

// IngredientService resolves dish names to fresh-ingredient lists. Known
// dishes come from the food_ingredients table (cached in memory at startup),
// colloquial names go through dish_mappings, and unknown dishes fall back to
// the LLM when one is configured.
type IngredientService struct {
	db  *gorm.DB
	llm *LLMService

	mu    sync.RWMutex
	cache map[string]string // lowercased dish name -> raw ingredients text
}

// NewIngredientService creates the service and warms the dish cache.
func NewIngredientService(db *gorm.DB, llm *LLMService) *IngredientService {
	s := &IngredientService{
		db:    db,
		llm:   llm,
		cache: make(map[string]string),
	}
	s.loadCache()
	return s
}

func (s *IngredientService) loadCache() {
	var rows []models.DishIngredient
	if err := s.db.Find(&rows).Error; err != nil {
		log.Printf("Error loading dish cache: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.cache[strings.ToLower(row.Dish)] = row.Ingredients
	}
	log.Printf("Loaded %d dishes into cache", len(s.cache))
}

// Resolve finds the fresh ingredients for a dish: exact cache hit first,
// then the dish_mappings table, then the LLM fallback.
func (s *IngredientService) Resolve(ctx context.Context, userInput string) (*IngredientResult, error) {
	input := strings.ToLower(strings.TrimSpace(userInput))
	if input == "" {
		return nil, ErrDishNotFound
	}

	if raw, ok := s.lookup(input); ok {
		return &IngredientResult{
			Dish:        input,
			Ingredients: filterFresh(parseIngredients(raw)),
			MatchType:   MatchExact,
		}, nil
	}

	if mapped := s.mappedDish(input); mapped != "" {
		if raw, ok := s.lookup(strings.ToLower(mapped)); ok {
			return &IngredientResult{
				Dish:        mapped,
				Ingredients: filterFresh(parseIngredients(raw)),
				MatchType:   MatchMapped,
			}, nil
		}
	}

	if s.llm != nil {
		items, err := s.llm.GenerateIngredients(ctx, userInput)
		if err == nil && len(items) > 0 {
			// The prompt already excludes staples; the filter catches strays
			return &IngredientResult{
				Dish:        userInput,
				Ingredients: filterFresh(items),
				MatchType:   MatchGenerated,
			}, nil
		}
		if err != nil {
			log.Printf("Ingredient generation failed for %q: %v", userInput, err)
		}
	}

	return nil, ErrDishNotFound
}

// Suggestions returns up to n known dish names, used when resolution fails.
func (s *IngredientService) Suggestions(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	suggestions := make([]string, 0, n)
	for dish := range s.cache {
		if len(suggestions) >= n {
			break
		}
		suggestions = append(suggestions, dish)
	}
	return suggestions
}

// AddMapping registers colloquial terms for a canonical dish name.
func (s *IngredientService) AddMapping(ctx context.Context, dishName string, terms []string) error {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		mapping := models.DishMapping{UserTerm: term, DishName: dishName}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_term"}},
			DoUpdates: clause.AssignmentColumns([]string{"dish_name"}),
		}).Create(&mapping).Error; err != nil {
			return fmt.Errorf("failed to store mapping %q: %w", term, err)
		}
	}
	return nil
}

func (s *IngredientService) lookup(dish string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.cache[dish]
	return raw, ok
}

func (s *IngredientService) mappedDish(term string) string {
	var mapping models.DishMapping
	if err := s.db.Where("LOWER(user_term) = ?", term).First(&mapping).Error; err != nil {
		return ""
	}
	return mapping.DishName
}

// parseIngredients splits raw ingredients text into structured items. Entries
// are separated by semicolons or commas; a leading number and unit become the
// quantity, anything else defaults to "as needed".
func parseIngredients(raw string) []types.PantryItem {
	if raw == "" {
		return nil
	}

	var parts []string
	for _, chunk := range strings.Split(raw, ";") {
		for _, part := range strings.Split(chunk, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
	}

	items := make([]types.PantryItem, 0, len(parts))
	for _, part := range parts {
		if m := quantityPrefixPattern.FindStringSubmatch(part); m != nil {
			quantity := strings.TrimSpace(m[1] + " " + m[2])
			items = append(items, types.PantryItem{Name: m[3], Quantity: quantity})
		} else {
			items = append(items, types.PantryItem{Name: part, Quantity: "as needed"})
		}
	}
	return items
}

// filterFresh drops household staples and standardizes the remaining
// measurements to metric.
func filterFresh(items []types.PantryItem) []types.PantryItem {
	fresh := make([]types.PantryItem, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(item.Name)
		if isHouseholdStaple(name) {
			continue
		}
		fresh = append(fresh, types.PantryItem{
			Name:     item.Name,
			Quantity: standardizeMeasurement(name, item.Quantity),
		})
	}
	return fresh
}

func isHouseholdStaple(name string) bool {
	for _, staple := range householdStaples {
		if strings.Contains(name, staple) {
			return true
		}
	}
	return false
}

// standardizeMeasurement converts imperial kitchen measures to metric and
// estimates a quantity for "as needed" proteins and produce.
func standardizeMeasurement(name, quantity string) string {
	if quantity == "as needed" {
		switch {
		case containsAny(name, "meat", "chicken", "beef", "pork", "steak"):
			return "250 g"
		case containsAny(name, "fish", "salmon", "tuna"):
			return "200 g"
		case containsAny(name, "vegetable", "carrot", "potato", "tomato"):
			return "100 g"
		}
		return quantity
	}

	if m := cupPattern.FindStringSubmatch(quantity); m != nil {
		amount := parseFloat(m[1])
		// 1 cup is roughly 240 ml of liquid or 150 g of solids
		if containsAny(name, "milk", "water", "juice", "broth", "stock") {
			return fmt.Sprintf("%d ml", int(amount*240))
		}
		return fmt.Sprintf("%d g", int(amount*150))
	}
	if m := tbspPattern.FindStringSubmatch(quantity); m != nil {
		return fmt.Sprintf("%d ml", int(parseFloat(m[1])*15))
	}
	if m := tspPattern.FindStringSubmatch(quantity); m != nil {
		return fmt.Sprintf("%d ml", int(parseFloat(m[1])*5))
	}
	if m := ozPattern.FindStringSubmatch(quantity); m != nil {
		return fmt.Sprintf("%d g", int(parseFloat(m[1])*28))
	}
	if m := lbPattern.FindStringSubmatch(quantity); m != nil {
		return fmt.Sprintf("%d g", int(parseFloat(m[1])*454))
	}

	return quantity
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
