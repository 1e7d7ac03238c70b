package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

func main() {
	dbPath := flag.String("db", "data/directory.db", "SQLite database path")
	file := flag.String("file", "", "YAML fixture to load instead of the embedded data set")
	flag.Parse()

	var (
		businesses []models.Business
		err        error
	)
	if *file != "" {
		data, readErr := os.ReadFile(*file)
		if readErr != nil {
			log.Fatalf("Failed to read %s: %v", *file, readErr)
		}
		businesses, err = fixture.Parse(data)
	} else {
		businesses, err = fixture.Businesses()
	}
	if err != nil {
		log.Fatalf("Invalid fixture: %v", err)
	}

	if err := database.InitDatabase(*dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	inserted, err := database.SeedBusinesses(context.Background(), database.DB, businesses)
	if err != nil {
		log.Fatalf("Failed to seed businesses: %v", err)
	}

	log.Printf("Replaced directory in %s with %d business(es)", *dbPath, inserted)
}
