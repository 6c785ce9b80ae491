package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

func samplePostings() []models.Posting {
	return []models.Posting{
		{
			JobID:      "41558600",
			Title:      "software developer",
			Company:    "Maple Systems Inc.",
			Location:   "Toronto (ON)",
			Salary:     "$45.00 hourly",
			JobType:    "Remote",
			DatePosted: "August 20, 2025",
			URL:        "https://www.jobbank.gc.ca/jobsearch/jobposting/41558600",
			Source:     models.SourceJobBank,
		},
		{
			JobID:      "41558601",
			Title:      "data analyst",
			Company:    "Prairie Data Ltd.",
			Location:   "Winnipeg (MB)",
			DatePosted: "August 21, 2025",
			URL:        "https://www.jobbank.gc.ca/jobsearch/jobposting/41558601",
			Source:     models.SourceIndeed,
		},
	}
}

func TestWritePostingsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	require.NoError(t, WritePostings(samplePostings(), path, FormatCSV))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, postingHeader, rows[0])
	assert.Equal(t, "41558600", rows[1][0])
	assert.Equal(t, "software developer", rows[1][1])
	assert.Equal(t, "Indeed", rows[2][7])
}

func TestWritePostingsJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	postings := samplePostings()
	require.NoError(t, WritePostings(postings, path, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.Posting
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, postings, got)
}

func TestWritePostingsExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	require.NoError(t, WritePostings(samplePostings(), path, FormatExcel))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Jobs", "B2")
	require.NoError(t, err)
	assert.Equal(t, "software developer", title)

	header, err := f.GetCellValue("Jobs", "A1")
	require.NoError(t, err)
	assert.Equal(t, "job_id", header)
}

func TestWritePostingsEmpty(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "empty.csv")
	require.NoError(t, WritePostings(nil, csvPath, FormatCSV))

	file, err := os.Open(csvPath)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "empty export keeps the header row")
	assert.Equal(t, postingHeader, rows[0])

	jsonPath := filepath.Join(dir, "empty.json")
	require.NoError(t, WritePostings(nil, jsonPath, FormatJSON))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestWriteRecordsCSV(t *testing.T) {
	scraped := time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC)
	records := []models.Record{
		{
			Posting:   samplePostings()[0],
			ScrapedAt: scraped,
			LastSeen:  scraped.Add(48 * time.Hour),
			IsActive:  true,
		},
	}

	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, WriteRecords(records, path, FormatCSV))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, recordHeader, rows[0])
	assert.Equal(t, "2025-08-20 09:30:00", rows[1][9])
	assert.Equal(t, "2025-08-22 09:30:00", rows[1][10])
	assert.Equal(t, "1", rows[1][11])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "", want: FormatCSV},
		{in: "JSON", want: FormatJSON},
		{in: "excel", want: FormatExcel},
		{in: "xlsx", want: FormatExcel},
		{in: "parquet", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatForPath(t *testing.T) {
	got, err := FormatForPath("out/jobs.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, got)

	_, err = FormatForPath("jobs.txt")
	assert.Error(t, err)
}

func TestSearchFilename(t *testing.T) {
	got := SearchFilename("data", "python developer", "Montréal, QC", 1, FormatCSV)
	assert.Equal(t, filepath.Join("data", "python_developer_Montreal_QC.csv"), got)

	got = SearchFilename("data", "", "", 3, FormatJSON)
	assert.Equal(t, filepath.Join("data", "batch_search_3.json"), got)
}

func TestDefaultFilename(t *testing.T) {
	got := DefaultFilename("data", FormatExcel)
	assert.Contains(t, got, "jobbank_jobs_")
	assert.Equal(t, ".xlsx", filepath.Ext(got))
}
