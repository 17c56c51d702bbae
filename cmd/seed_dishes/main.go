package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ecogrocery/backend/internal/models"
	"github.com/ecogrocery/backend/internal/service"
)

// seedDish mirrors the JSON seed file format
type seedDish struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cuisine     string `json:"cuisine"`
	ImageURL    string `json:"imageUrl"`
	Ingredients string `json:"ingredients"`
}

func main() {
	file := flag.String("file", "seed/dishes.json", "JSON file with dishes to seed")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read seed file: %v", err)
	}

	var dishes []seedDish
	if err := json.Unmarshal(data, &dishes); err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	for _, d := range dishes {
		dish := models.Dish{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Cuisine:     d.Cuisine,
			ImageURL:    d.ImageURL,
			Embedding:   service.GenerateEmbedding(d.Name + " " + d.Description),
		}
		if err := db.Save(&dish).Error; err != nil {
			log.Fatalf("failed to seed dish %q: %v", d.Name, err)
		}

		if d.Ingredients != "" {
			row := models.DishIngredient{Dish: d.Name, Ingredients: d.Ingredients}
			if err := db.Where("dish = ?", d.Name).FirstOrCreate(&row).Error; err != nil {
				log.Fatalf("failed to seed ingredients for %q: %v", d.Name, err)
			}
		}
	}

	log.Printf("Seeded %d dishes", len(dishes))
}
