package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sadeghianmr/JobBank-Scraper/internal/export"
	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS JobBank (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id TEXT UNIQUE NOT NULL,
    title TEXT NOT NULL,
    company TEXT,
    location TEXT,
    salary TEXT,
    job_type TEXT,
    date_posted TEXT,
    url TEXT,
    source TEXT,
    scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    is_active BOOLEAN DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_job_id ON JobBank(job_id);
CREATE INDEX IF NOT EXISTS idx_source ON JobBank(source);
`

// Repository is the job record store: one SQLite file, one table keyed by
// job_id.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

type UpsertResult struct {
	Inserted int
	Updated  int
	Skipped  int

	//ids of the newly inserted postings, in upsert order
	InsertedIDs []string
}

// Open creates the database file if needed, applies the schema and verifies
// the connection. SQLite allows one writer, so the pool is capped at a single
// connection.
func Open(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Repository{db: db, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const upsertSQL = `
INSERT INTO JobBank (
    job_id, title, company, location, salary,
    job_type, date_posted, url, source, scraped_at, last_seen, is_active
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
ON CONFLICT(job_id) DO UPDATE SET
    title = excluded.title,
    company = excluded.company,
    location = excluded.location,
    salary = excluded.salary,
    job_type = excluded.job_type,
    date_posted = excluded.date_posted,
    url = excluded.url,
    source = excluded.source,
    last_seen = excluded.last_seen,
    is_active = 1
`

// Upsert stores postings by job_id: new ids are inserted, known ids get their
// mutable fields and last_seen refreshed while scraped_at stays put. Postings
// without a job_id are counted as skipped and never persisted.
func (r *Repository) Upsert(ctx context.Context, postings []models.Posting) (UpsertResult, error) {
	var result UpsertResult

	for _, p := range postings {
		if p.JobID == "" {
			result.Skipped++
			continue
		}

		exists, err := r.JobExists(ctx, p.JobID)
		if err != nil {
			return result, err
		}

		now := r.now().UTC().Format(models.TimeLayout)
		_, err = r.db.ExecContext(ctx, upsertSQL,
			p.JobID, p.Title, p.Company, p.Location, p.Salary,
			p.JobType, p.DatePosted, p.URL, p.Source, now, now)
		if err != nil {
			return result, fmt.Errorf("failed to upsert job %s: %w", p.JobID, err)
		}

		if exists {
			result.Updated++
		} else {
			result.Inserted++
			result.InsertedIDs = append(result.InsertedIDs, p.JobID)
		}
	}

	return result, nil
}

func (r *Repository) JobExists(ctx context.Context, jobID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM JobBank WHERE job_id = ?", jobID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check job %s: %w", jobID, err)
	}
	return true, nil
}

// Databases written by earlier versions of the tool store NULL for absent
// optional fields; COALESCE folds those to empty strings for scanning.
const selectColumns = `
    job_id, title, COALESCE(company, ''), COALESCE(location, ''),
    COALESCE(salary, ''), COALESCE(job_type, ''), COALESCE(date_posted, ''),
    COALESCE(url, ''), COALESCE(source, ''), scraped_at, last_seen, is_active
`

// GetAll returns records newest-first by scrape time.
func (r *Repository) GetAll(ctx context.Context, activeOnly bool) ([]models.Record, error) {
	query := "SELECT" + selectColumns + "FROM JobBank ORDER BY scraped_at DESC"
	if activeOnly {
		query = "SELECT" + selectColumns + "FROM JobBank WHERE is_active = 1 ORDER BY scraped_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetBySource returns active records from one source, newest-first.
func (r *Repository) GetBySource(ctx context.Context, source string) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT"+selectColumns+"FROM JobBank WHERE source = ? AND is_active = 1 ORDER BY scraped_at DESC",
		source)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs by source: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	var records []models.Record

	for rows.Next() {
		var rec models.Record
		var scrapedAt, lastSeen string
		var active int

		err := rows.Scan(
			&rec.JobID, &rec.Title, &rec.Company, &rec.Location, &rec.Salary,
			&rec.JobType, &rec.DatePosted, &rec.URL, &rec.Source,
			&scrapedAt, &lastSeen, &active)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}

		rec.ScrapedAt, err = time.Parse(models.TimeLayout, scrapedAt)
		if err != nil {
			return nil, fmt.Errorf("bad scraped_at for job %s: %w", rec.JobID, err)
		}
		rec.LastSeen, err = time.Parse(models.TimeLayout, lastSeen)
		if err != nil {
			return nil, fmt.Errorf("bad last_seen for job %s: %w", rec.JobID, err)
		}
		rec.IsActive = active == 1

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Stats aggregates totals, per-source counts and additions from the last day.
func (r *Repository) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{BySource: map[string]int{}}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM JobBank").Scan(&stats.TotalJobs); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM JobBank WHERE is_active = 1").Scan(&stats.ActiveJobs); err != nil {
		return nil, fmt.Errorf("failed to count active jobs: %w", err)
	}
	stats.InactiveJobs = stats.TotalJobs - stats.ActiveJobs

	rows, err := r.db.QueryContext(ctx, `
        SELECT COALESCE(source, '') AS source, COUNT(*) AS count
        FROM JobBank
        WHERE is_active = 1
        GROUP BY COALESCE(source, '')
        ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by source: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		stats.BySource[source] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM JobBank
        WHERE scraped_at >= datetime('now', '-1 day')`).Scan(&stats.AddedLast24h); err != nil {
		return nil, fmt.Errorf("failed to count recent jobs: %w", err)
	}

	return stats, nil
}

// MarkInactive flags listings that disappeared from the site. Nothing in the
// scrape flow calls this; it is operator tooling.
func (r *Repository) MarkInactive(ctx context.Context, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(jobIDs)), ",")
	args := make([]any, len(jobIDs))
	for i, id := range jobIDs {
		args[i] = id
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE JobBank SET is_active = 0 WHERE job_id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark jobs inactive: %w", err)
	}
	return res.RowsAffected()
}

// ExportAll writes the whole store to a file and returns the record count.
func (r *Repository) ExportAll(ctx context.Context, path string, format export.Format, activeOnly bool) (int, error) {
	records, err := r.GetAll(ctx, activeOnly)
	if err != nil {
		return 0, err
	}

	if err := export.WriteRecords(records, path, format); err != nil {
		return 0, err
	}
	return len(records), nil
}
