package models

import (
	"time"
)

const (
	SourceJobBank      = "Job Bank"
	SourceIndeed       = "Indeed"
	SourceCareerBeacon = "CareerBeacon"
)

// TimeLayout is how record timestamps are stored and exported. It matches
// SQLite's datetime() text form so date arithmetic works in queries.
const TimeLayout = "2006-01-02 15:04:05"

// Posting is one job listing as extracted from a search results page.
type Posting struct {
	JobID      string `json:"job_id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Salary     string `json:"salary"`
	JobType    string `json:"job_type"`
	DatePosted string `json:"date_posted"`
	URL        string `json:"url"`
	Source     string `json:"source"`
}

// Record is a Posting as stored in the database, with bookkeeping columns.
type Record struct {
	Posting
	ScrapedAt time.Time `json:"scraped_at"`
	LastSeen  time.Time `json:"last_seen"`
	IsActive  bool      `json:"is_active"`
}

// JobDetails holds the full description from a single posting page.
type JobDetails struct {
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Extras      []Detail `json:"extras,omitempty"`
}

// Detail is one dt/dd pair from the posting page's details section.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Stats struct {
	TotalJobs    int            `json:"total_jobs"`
	ActiveJobs   int            `json:"active_jobs"`
	InactiveJobs int            `json:"inactive_jobs"`
	AddedLast24h int            `json:"added_last_24h"`
	BySource     map[string]int `json:"by_source"`
}
