package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/database"
	"github.com/sadeghianmr/JobBank-Scraper/internal/export"
)

var flagExportAll bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the database to a file",
	Long:  "Writes stored jobs to <file>. The format follows the file extension\n(.csv, .json or .xlsx) unless --format is given explicitly.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagExportAll, "all", false, "include inactive jobs")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outPath := args[0]

	var format export.Format
	var err error
	if cmd.Flags().Changed("format") {
		format, err = export.ParseFormat(flagFormat)
	} else {
		format, err = export.FormatForPath(outPath)
	}
	if err != nil {
		return err
	}

	cfg := config.Load()

	repo, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("❌ Error reading database: %v", err)
	}
	defer repo.Close()

	log.Printf("📥 Exporting database to %s...", outPath)
	count, err := repo.ExportAll(cmd.Context(), outPath, format, !flagExportAll)
	if err != nil {
		log.Fatalf("❌ Error exporting database: %v", err)
	}
	log.Printf("✅ Exported %d jobs", count)
	return nil
}
