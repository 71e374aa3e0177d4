package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pageza/zenkitchen/backend/config"
	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/models"
)

//go:embed sample.yaml
var sampleData []byte

type seedItem struct {
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	Quantity      string `yaml:"quantity"`
	Emoji         string `yaml:"emoji"`
	ExpiresInDays *int   `yaml:"expires_in_days"`
}

type seedRecipe struct {
	Name        string   `yaml:"name"`
	Tags        []string `yaml:"tags"`
	Ingredients string   `yaml:"ingredients"`
	Steps       string   `yaml:"steps"`
}

type seedFile struct {
	Items   []seedItem   `yaml:"items"`
	Recipes []seedRecipe `yaml:"recipes"`
}

func main() {
	owner := flag.String("owner", "", "user id to seed data for (required)")
	file := flag.String("file", "", "YAML seed file; the built-in sample is used when empty")
	flag.Parse()

	if *owner == "" {
		log.Fatal("-owner is required")
	}

	data := sampleData
	if *file != "" {
		var err error
		if data, err = os.ReadFile(*file); err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Failed to parse seed data: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	store := database.NewGormStore(db)

	ctx := context.Background()
	now := time.Now()
	for _, it := range seed.Items {
		item := models.InventoryItem{
			Name:     it.Name,
			Category: it.Category,
			Quantity: it.Quantity,
			Emoji:    it.Emoji,
			Status:   models.StatusActive,
			AddedAt:  now,
		}
		if it.ExpiresInDays != nil {
			d := models.DateOf(now).AddDays(*it.ExpiresInDays)
			item.ExpiryDate = &d
		}
		if _, err := store.AddItem(ctx, *owner, item); err != nil {
			log.Fatalf("Failed to add item %s: %v", it.Name, err)
		}
	}

	for _, r := range seed.Recipes {
		recipe := models.Recipe{
			Name:        r.Name,
			Tags:        r.Tags,
			Ingredients: r.Ingredients,
			Steps:       r.Steps,
			AddedAt:     now,
		}
		if _, err := store.AddRecipe(ctx, *owner, recipe); err != nil {
			log.Fatalf("Failed to add recipe %s: %v", r.Name, err)
		}
	}

	fmt.Printf("Seeded %d items and %d recipes for %s\n", len(seed.Items), len(seed.Recipes), *owner)
}
