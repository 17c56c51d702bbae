package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecogrocery/backend/internal/models"
)

// DishService handles the signature dish catalog
type DishService struct {
	db *gorm.DB
}

// NewDishService creates a new DishService instance
func NewDishService(db *gorm.DB) *DishService {
	return &DishService{db: db}
}

// ListDishes returns catalog dishes, optionally filtered by cuisine and
// ordered by similarity to a search query.
func (s *DishService) ListDishes(ctx context.Context, cuisine, query string) ([]models.Dish, error) {
	var dishes []models.Dish

	dbQuery := s.db.WithContext(ctx)

	if cuisine != "" {
		dbQuery = dbQuery.Where("LOWER(cuisine) = ?", strings.ToLower(cuisine))
	}

	if query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(query) + "%"
			dbQuery = dbQuery.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}

	if err := dbQuery.Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// GetDish retrieves a dish by ID
func (s *DishService) GetDish(ctx context.Context, id int) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// CreateDish adds a dish to the catalog and computes its search embedding
func (s *DishService) CreateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if dish.Name == "" {
		return nil, errors.New("dish name is required")
	}

	dish.Embedding = GenerateEmbedding(dish.Name + " " + dish.Description)

	if err := s.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

// SetImageURL stores the uploaded image location for a dish
func (s *DishService) SetImageURL(ctx context.Context, id int, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
