package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/database"
)

func main() {
	cfg := config.Load()

	fmt.Printf("Opening SQLite database at %s...\n", cfg.DBPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("❌ Failed to open the database: %v", err)
	}
	defer repo.Close()

	stats, err := repo.Stats(ctx)
	if err != nil {
		log.Fatalf("❌ Stats query failed: %v", err)
	}

	fmt.Println("✅ Database is ready.")
	fmt.Printf("📋 Total jobs: %d (%d active, %d inactive)\n", stats.TotalJobs, stats.ActiveJobs, stats.InactiveJobs)
	for source, count := range stats.BySource {
		fmt.Printf("📦 %s: %d jobs\n", source, count)
	}
}
