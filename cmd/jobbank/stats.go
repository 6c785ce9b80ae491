package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	repo, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("❌ Error reading database: %v", err)
	}
	defer repo.Close()

	stats, err := repo.Stats(cmd.Context())
	if err != nil {
		log.Fatalf("❌ Error reading database: %v", err)
	}

	fmt.Println("============================================================")
	fmt.Println("📊 DATABASE STATISTICS")
	fmt.Println("============================================================")
	fmt.Printf("\n📋 Total jobs in database: %d\n", stats.TotalJobs)
	fmt.Printf("  ✓ Active jobs: %d\n", stats.ActiveJobs)
	fmt.Printf("  ✗ Inactive jobs: %d\n", stats.InactiveJobs)
	fmt.Printf("\n🆕 Added in last 24 hours: %d\n", stats.AddedLast24h)

	if len(stats.BySource) > 0 {
		fmt.Println("\n📦 Jobs by source:")
		for _, source := range sourcesByCount(stats.BySource) {
			fmt.Printf("  • %s: %d jobs\n", source, stats.BySource[source])
		}
	}

	fmt.Println("\n============================================================")
	return nil
}

// sourcesByCount orders sources busiest first, ties alphabetically.
func sourcesByCount(bySource map[string]int) []string {
	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool {
		if bySource[sources[i]] != bySource[sources[j]] {
			return bySource[sources[i]] > bySource[sources[j]]
		}
		return sources[i] < sources[j]
	})
	return sources
}
