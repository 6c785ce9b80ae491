// Save scraped jobs to CSV, JSON or Excel
// Column order mirrors the search results, bookkeeping columns last

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"

	DefaultFormat = FormatCSV
)

var postingHeader = []string{
	"job_id", "title", "company", "location", "salary",
	"job_type", "date_posted", "source", "url",
}

var recordHeader = append(append([]string{}, postingHeader...),
	"scraped_at", "last_seen", "is_active")

// ParseFormat validates a user-supplied format name. "xlsx" is accepted as a
// spelling of excel.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatForPath infers the format from a filename extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("cannot infer format from %q, use .csv, .json or .xlsx", filepath.Base(path))
	}
}

func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return string(f)
}

// WritePostings saves search results to path. An empty slice still produces a
// valid file: a header-only CSV or sheet, or an empty JSON array.
func WritePostings(postings []models.Posting, path string, format Format) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return writeCSV(path, postingHeader, postingRows(postings))
	case FormatJSON:
		if postings == nil {
			postings = []models.Posting{}
		}
		return writeJSON(path, postings)
	case FormatExcel:
		return writeExcel(path, postingHeader, postingRows(postings))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteRecords saves database records to path, appending the scraped_at,
// last_seen and is_active columns.
func WriteRecords(records []models.Record, path string, format Format) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return writeCSV(path, recordHeader, recordRows(records))
	case FormatJSON:
		if records == nil {
			records = []models.Record{}
		}
		return writeJSON(path, records)
	case FormatExcel:
		return writeExcel(path, recordHeader, recordRows(records))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func postingRows(postings []models.Posting) [][]string {
	rows := make([][]string, 0, len(postings))
	for _, p := range postings {
		rows = append(rows, postingRow(p))
	}
	return rows
}

func postingRow(p models.Posting) []string {
	return []string{
		p.JobID, p.Title, p.Company, p.Location, p.Salary,
		p.JobType, p.DatePosted, p.Source, p.URL,
	}
}

func recordRows(records []models.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		active := "0"
		if r.IsActive {
			active = "1"
		}
		rows = append(rows, append(postingRow(r.Posting),
			r.ScrapedAt.Format(models.TimeLayout),
			r.LastSeen.Format(models.TimeLayout),
			active))
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal jobs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeExcel(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Jobs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
