package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecogrocery/backend/internal/service"
)

// PantryHandler serves storage advice for pantry planning
type PantryHandler struct {
	adviceService *service.StorageAdviceService
}

// NewPantryHandler creates a new PantryHandler instance
func NewPantryHandler(adviceService *service.StorageAdviceService) *PantryHandler {
	return &PantryHandler{adviceService: adviceService}
}

// StorageAdvice returns how long a food type keeps and where to store it
func (h *PantryHandler) StorageAdvice(c *gin.Context) {
	var req StorageAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Food type is required"})
		return
	}

	advice, err := h.adviceService.Advise(c.Request.Context(), req.FoodType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, advice)
}

// FoodTypes lists all food types with storage recommendations
func (h *PantryHandler) FoodTypes(c *gin.Context) {
	foodTypes, err := h.adviceService.FoodTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_types": foodTypes})
}
