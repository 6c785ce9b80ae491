package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sadeghianmr/JobBank-Scraper/internal/browser"
	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/scraper"
)

// Manual smoke check against the live site: one session, one page of
// results, no database writes.
func main() {
	fmt.Println("🌐 Testing browser session...")

	cfg := config.Load()

	session, err := browser.NewSession(browser.Options{Headless: cfg.Headless, Timeout: cfg.Timeout})
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer session.Close()

	fmt.Println("✅ Browser started")

	s := scraper.New(session.Page(), cfg, nil)

	result, err := s.Search(context.Background(), scraper.SearchOptions{
		Keyword:  "cook",
		Location: "Toronto, ON",
		MaxPages: 1,
	})
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("✅ Scraped %d job(s)\n", len(result.Postings))
	for i, p := range result.Postings {
		if i >= 5 {
			break
		}
		fmt.Printf("  %s @ %s (%s)\n", p.Title, p.Company, p.Source)
	}

	fmt.Println("✨ Test complete!")
}
