package service

import (
	"context"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/ecogrocery/backend/internal/models"
)

// Defaults when no recommendation exists anywhere
const (
	defaultPantryDays = 14
	defaultFridgeDays = 7
	defaultMethod     = 1
)

// StorageAdviceService answers how long a food type keeps. The food_storage
// table is checked first; unknown types fall back to the LLM.
type StorageAdviceService struct {
	db  *gorm.DB
	llm *LLMService
}

// NewStorageAdviceService creates a new StorageAdviceService instance
func NewStorageAdviceService(db *gorm.DB, llm *LLMService) *StorageAdviceService {
	return &StorageAdviceService{db: db, llm: llm}
}

// Advise returns storage advice for a food type, naming its source.
func (s *StorageAdviceService) Advise(ctx context.Context, foodType string) (*StorageAdvice, error) {
	if advice := s.fromDatabase(ctx, foodType); advice != nil {
		advice.Source = "database"
		return advice, nil
	}

	if s.llm != nil {
		advice, err := s.llm.GenerateStorageAdvice(ctx, foodType)
		if err == nil {
			return advice, nil
		}
		log.Printf("Storage advice generation failed for %q: %v", foodType, err)
	}

	return &StorageAdvice{
		Type:       foodType,
		PantryDays: defaultPantryDays,
		FridgeDays: defaultFridgeDays,
		Method:     defaultMethod,
		Source:     "database_default",
	}, nil
}

// fromDatabase looks for an exact match first, then a word-wise partial match
// ("cherry tomatoes" finds "tomatoes").
func (s *StorageAdviceService) fromDatabase(ctx context.Context, foodType string) *StorageAdvice {
	lowered := strings.ToLower(strings.TrimSpace(foodType))

	var row models.FoodStorage
	if err := s.db.WithContext(ctx).Where("LOWER(type) = ?", lowered).First(&row).Error; err == nil {
		return adviceFromRow(row)
	}

	for _, word := range strings.Fields(lowered) {
		if len(word) < 3 {
			continue
		}
		if err := s.db.WithContext(ctx).Where("LOWER(type) LIKE ?", "%"+word+"%").First(&row).Error; err == nil {
			return adviceFromRow(row)
		}
	}
	return nil
}

// FoodTypes returns all food types with storage recommendations
func (s *StorageAdviceService) FoodTypes(ctx context.Context) ([]string, error) {
	var foodTypes []string
	err := s.db.WithContext(ctx).Model(&models.FoodStorage{}).
		Distinct("type").Order("type").Pluck("type", &foodTypes).Error
	if err != nil {
		return nil, err
	}
	return foodTypes, nil
}

func adviceFromRow(row models.FoodStorage) *StorageAdvice {
	return &StorageAdvice{
		Type:       row.Type,
		PantryDays: row.PantryDays,
		FridgeDays: row.FridgeDays,
		Method:     row.Method,
	}
}
