package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/database"
	"github.com/sadeghianmr/JobBank-Scraper/internal/reporter"
	"github.com/sadeghianmr/JobBank-Scraper/internal/scraper"
)

var (
	flagFormat      string
	flagNoHeadless  bool
	flagNoDB        bool
	flagJobBankOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "jobbank",
	Short: "Scrape job listings from Canada Job Bank",
	Long:  "Drives a real browser through jobbank.gc.ca search results, keeps every\nlisting in a local SQLite database and writes CSV, JSON or Excel files.",
	Example: `  # Search for Python jobs in Toronto
  jobbank search -k "python developer" -l "Toronto, ON" -p 3

  # Search anywhere in Canada and save as JSON
  jobbank search -k "data analyst" -f json

  # Run several searches from a config file
  jobbank batch searches.yaml

  # Database statistics
  jobbank stats`,
	//bare `jobbank -k ...` behaves like `jobbank search -k ...`
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "csv", "output format: csv, json or excel")
	rootCmd.PersistentFlags().BoolVar(&flagNoHeadless, "no-headless", false, "show the browser window")
	rootCmd.PersistentFlags().BoolVar(&flagNoDB, "no-db", false, "skip saving to the database")
	rootCmd.PersistentFlags().BoolVar(&flagJobBankOnly, "job-bank-only", false, "only keep jobs posted directly on Job Bank")

	addSearchFlags(rootCmd)
}

// openStore opens the record store for a scrape run. Store trouble never
// blocks scraping; results still go to the output file.
func openStore(cfg *config.Config) *database.Repository {
	repo, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Printf("⚠️ Database unavailable, continuing without it: %v", err)
		return nil
	}
	log.Printf("✓ Database initialized: %s", cfg.DBPath)
	return repo
}

// partialNotice describes a search that halted before its requested pages,
// empty when pagination ran to completion.
func partialNotice(result *scraper.Result) string {
	if result.PageErr == nil {
		return ""
	}
	return fmt.Sprintf("⚠️ Stopped early: scraped %d of %d page(s)", result.PagesScraped, result.PagesRequested)
}

// newReporter builds the Telegram reporter when credentials are configured,
// nil otherwise.
func newReporter(cfg *config.Config) *reporter.TelegramReporter {
	if !cfg.TelegramEnabled() {
		return nil
	}
	rep, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("⚠️ Telegram reporting disabled: %v", err)
		return nil
	}
	return rep
}
