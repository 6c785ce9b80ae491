package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/browser"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download the playwright driver and chromium",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("📦 Installing playwright driver and chromium...")
		if err := browser.Install(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Println("✅ Browser ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
