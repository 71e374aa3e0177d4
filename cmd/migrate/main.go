package main

import (
	"flag"
	"log"

	"github.com/pageza/zenkitchen/backend/config"
	"github.com/pageza/zenkitchen/backend/internal/database"
)

// migrate applies the schema to the configured database and exits. The API
// server does the same on startup; this is for running it ahead of a deploy.
func main() {
	driver := flag.String("driver", "", "override DB_DRIVER (postgres or sqlite)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *driver != "" {
		cfg.DBDriver = *driver
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}
	log.Printf("Schema is up to date (%s)", cfg.DBDriver)
}
