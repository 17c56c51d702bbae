package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecogrocery/backend/internal/models"
	"github.com/ecogrocery/backend/internal/service"
	"github.com/ecogrocery/backend/internal/types"
)

// DishHandler serves the signature dish catalog
type DishHandler struct {
	dishService  *service.DishService
	imageService *service.DishImageService
}

// NewDishHandler creates a new DishHandler instance. imageService may be nil
// when no object storage is configured.
func NewDishHandler(dishService *service.DishService, imageService *service.DishImageService) *DishHandler {
	return &DishHandler{
		dishService:  dishService,
		imageService: imageService,
	}
}

// ListDishes returns signature dishes, optionally filtered by cuisine and
// ordered by similarity to a search query.
func (h *DishHandler) ListDishes(c *gin.Context) {
	dishes, err := h.dishService.ListDishes(c.Request.Context(), c.Query("cuisine"), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dishes"})
		return
	}

	result := make([]types.SignatureDish, 0, len(dishes))
	for _, dish := range dishes {
		result = append(result, dish.ToSignatureDish())
	}
	c.JSON(http.StatusOK, result)
}

// ListMealChoices returns the catalog as meal choices for the selection
// screen; cuisine is omitted for dishes that have none.
func (h *DishHandler) ListMealChoices(c *gin.Context) {
	dishes, err := h.dishService.ListDishes(c.Request.Context(), c.Query("cuisine"), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dishes"})
		return
	}

	result := make([]types.MealChoice, 0, len(dishes))
	for _, dish := range dishes {
		result = append(result, dish.ToMealChoice())
	}
	c.JSON(http.StatusOK, result)
}

// GetDish returns a single dish by ID
func (h *DishHandler) GetDish(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	dish, err := h.dishService.GetDish(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	c.JSON(http.StatusOK, dish.ToSignatureDish())
}

// CreateDish adds a dish to the catalog
func (h *DishHandler) CreateDish(c *gin.Context) {
	var dish models.Dish
	if err := c.ShouldBindJSON(&dish); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.dishService.CreateDish(c.Request.Context(), &dish)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
		return
	}

	c.JSON(http.StatusCreated, created.ToSignatureDish())
}

// UploadImage stores a dish image and records its URL
func (h *DishHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish id"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	url, err := h.imageService.Upload(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := h.dishService.SetImageURL(c.Request.Context(), id, url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
