package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/browser"
	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/export"
	"github.com/sadeghianmr/JobBank-Scraper/internal/scraper"
)

var (
	flagKeyword  string
	flagLocation string
	flagPages    int
	flagOutput   string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and save the results",
	RunE:  runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagKeyword, "keyword", "k", "", "job title or keyword")
	cmd.Flags().StringVarP(&flagLocation, "location", "l", "", "city, province or postal code")
	cmd.Flags().IntVarP(&flagPages, "pages", "p", 1, "maximum pages to scrape")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default data/jobbank_jobs_<timestamp>.<ext>)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if flagKeyword == "" && flagLocation == "" {
		return fmt.Errorf("provide at least --keyword or --location to search")
	}

	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	cfg := config.Load()
	cfg.Headless = !flagNoHeadless

	log.Println("============================================================")
	log.Println("🇨🇦  Canada Job Bank Scraper")
	log.Println("============================================================")

	session, err := browser.NewSession(browser.Options{Headless: cfg.Headless, Timeout: cfg.Timeout})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer session.Close()

	var store scraper.Store
	if !flagNoDB {
		if repo := openStore(cfg); repo != nil {
			defer repo.Close()
			store = repo
		}
	}

	s := scraper.New(session.Page(), cfg, store)

	result, err := s.Search(cmd.Context(), scraper.SearchOptions{
		Keyword:     flagKeyword,
		Location:    flagLocation,
		MaxPages:    flagPages,
		JobBankOnly: flagJobBankOnly,
	})
	if err != nil {
		log.Fatalf("❌ Error: %v", err)
	}

	if notice := partialNotice(result); notice != "" {
		log.Println(notice)
	}
	if len(result.Postings) == 0 {
		log.Println("⚠️ No jobs found matching your criteria.")
	}

	outPath := flagOutput
	if outPath == "" {
		outPath = export.DefaultFilename(cfg.DataDir, format)
	} else if !cmd.Flags().Changed("format") {
		//a .json or .xlsx output path picks the format when -f is absent
		if inferred, err := export.FormatForPath(outPath); err == nil {
			format = inferred
		}
	}

	if err := export.WritePostings(result.Postings, outPath, format); err != nil {
		log.Fatalf("❌ Failed to save results: %v", err)
	}

	log.Println("============================================================")
	log.Println("📊 Summary:")
	log.Printf("   Total jobs found: %d", len(result.Postings))
	log.Printf("   Output file: %s", outPath)
	log.Println("============================================================")

	if rep := newReporter(cfg); rep != nil {
		rep.AnnounceNew(result.Postings, result.InsertedIDs)
	}

	return nil
}
