package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/browser"
	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/scraper"
)

var describeCmd = &cobra.Command{
	Use:   "describe <job-url>",
	Short: "Fetch one posting's full description",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	cfg.Headless = !flagNoHeadless

	session, err := browser.NewSession(browser.Options{Headless: cfg.Headless, Timeout: cfg.Timeout})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer session.Close()

	s := scraper.New(session.Page(), cfg, nil)

	details, err := s.FetchDetails(cmd.Context(), args[0])
	if err != nil {
		log.Fatalf("❌ Error getting job details: %v", err)
	}

	if details.Description == "" && len(details.Extras) == 0 {
		log.Println("⚠️ No details found, the posting may have expired.")
		return nil
	}

	fmt.Println(details.Description)
	if len(details.Extras) > 0 {
		fmt.Println()
		for _, d := range details.Extras {
			fmt.Printf("%s: %s\n", d.Label, d.Value)
		}
	}
	return nil
}
