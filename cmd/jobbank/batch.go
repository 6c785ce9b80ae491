package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/browser"
	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/export"
	"github.com/sadeghianmr/JobBank-Scraper/internal/scraper"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Run several searches from a YAML file",
	Long:  "Runs every search in the file against one shared browser session.\nFile settings apply unless the matching flag is given explicitly.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := config.LoadBatch(args[0])
	if err != nil {
		log.Fatalf("❌ Config file error: %v", err)
	}

	//file settings first, explicit flags win
	headless := true
	if batch.Settings.Headless != nil {
		headless = *batch.Settings.Headless
	}
	if cmd.Flags().Changed("no-headless") {
		headless = !flagNoHeadless
	}

	useDB := true
	if batch.Settings.UseDatabase != nil {
		useDB = *batch.Settings.UseDatabase
	}
	if cmd.Flags().Changed("no-db") {
		useDB = !flagNoDB
	}

	jobBankOnly := batch.Settings.JobBankOnly
	if cmd.Flags().Changed("job-bank-only") {
		jobBankOnly = flagJobBankOnly
	}

	formatName := batch.Settings.Format
	if formatName == "" || cmd.Flags().Changed("format") {
		formatName = flagFormat
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		log.Fatalf("❌ Config file error: %v", err)
	}

	cfg := config.Load()
	cfg.Headless = headless

	log.Println("============================================================")
	log.Println("🇨🇦  Canada Job Bank Scraper - Batch Mode")
	log.Println("============================================================")
	log.Printf("📋 Running %d search(es)...", len(batch.Searches))

	session, err := browser.NewSession(browser.Options{Headless: cfg.Headless, Timeout: cfg.Timeout})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer session.Close()

	var store scraper.Store
	if useDB {
		if repo := openStore(cfg); repo != nil {
			defer repo.Close()
			store = repo
		}
	}

	s := scraper.New(session.Page(), cfg, store)
	rep := newReporter(cfg)

	totalJobs := 0
	for i, search := range batch.Searches {
		log.Printf("[%d/%d] Searching: %s in %s",
			i+1, len(batch.Searches), orDefault(search.Keyword, "Any"), orDefault(search.Location, "Canada"))

		result, err := s.Search(cmd.Context(), scraper.SearchOptions{
			Keyword:     search.Keyword,
			Location:    search.Location,
			MaxPages:    search.Pages,
			JobBankOnly: jobBankOnly,
		})
		if err != nil {
			log.Printf("❌ Error in search %d: %v", i+1, err)
			continue
		}

		if notice := partialNotice(result); notice != "" {
			log.Println(notice)
		}
		if len(result.Postings) == 0 {
			log.Println("⚠️ No jobs found for this search")
			continue
		}

		outPath := export.SearchFilename(cfg.DataDir, search.Keyword, search.Location, i+1, format)
		if err := export.WritePostings(result.Postings, outPath, format); err != nil {
			log.Printf("❌ Failed to save search %d: %v", i+1, err)
			continue
		}

		log.Printf("✓ Found %d jobs, saved to %s", len(result.Postings), outPath)
		totalJobs += len(result.Postings)

		if rep != nil {
			rep.AnnounceNew(result.Postings, result.InsertedIDs)
		}
	}

	log.Println("============================================================")
	log.Println("📊 Batch Search Complete")
	log.Printf("   Total jobs found: %d", totalJobs)
	log.Printf("   Completed %d search(es)", len(batch.Searches))
	log.Println("============================================================")
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
