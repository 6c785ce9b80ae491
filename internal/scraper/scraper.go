// Orchestrates a Job Bank search: page fetch, fragment extraction,
// per-page database upsert, polite inter-page delay

package scraper

import (
	"context"
	"errors"
	"log"

	"github.com/PuerkitoBio/goquery"

	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/database"
	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

// Store is the part of the record store the search loop drives. A nil store
// means a file-only run.
type Store interface {
	Upsert(ctx context.Context, postings []models.Posting) (database.UpsertResult, error)
}

type SearchOptions struct {
	Keyword     string
	Location    string
	MaxPages    int
	JobBankOnly bool
}

// Result carries everything a caller needs to report a search, including
// partial outcomes when pagination halted early.
type Result struct {
	Postings       []models.Posting
	PagesRequested int
	PagesScraped   int

	//database counters, zero on file-only runs
	Inserted    int
	Updated     int
	Skipped     int
	InsertedIDs []string

	//set when an unrecoverable page failure stopped pagination
	PageErr error
}

type Scraper struct {
	nav   *Navigator
	cfg   *config.Config
	store Store
}

func New(page Page, cfg *config.Config, store Store) *Scraper {
	return &Scraper{
		nav:   NewNavigator(page, cfg),
		cfg:   cfg,
		store: store,
	}
}

// Search walks result pages in order until max pages, an empty page or an
// unrecoverable navigation failure. Whatever was collected before a failure
// stays in the result.
func (s *Scraper) Search(ctx context.Context, opts SearchOptions) (*Result, error) {
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1
	}
	result := &Result{PagesRequested: opts.MaxPages}

	log.Printf("🔍 Searching for: '%s' in '%s'", opts.Keyword, opts.Location)
	log.Printf("📄 Scraping up to %d page(s)...", opts.MaxPages)

	for pageNum := 1; pageNum <= opts.MaxPages; pageNum++ {
		log.Printf("📑 Scraping page %d...", pageNum)

		fragments, err := s.nav.FetchPage(ctx, opts.Keyword, opts.Location, pageNum)
		if err != nil {
			var unavailable *models.PageUnavailableError
			if errors.As(err, &unavailable) {
				log.Printf("❌ Error on page %d: %v", pageNum, err)
				result.PageErr = err
				break
			}
			return result, err
		}

		postings := s.extractAll(fragments, opts.JobBankOnly)
		if len(postings) == 0 {
			log.Printf("No more jobs found on page %d", pageNum)
			break
		}
		result.PagesScraped++

		if s.store != nil {
			counts, err := s.store.Upsert(ctx, postings)
			if err != nil {
				//file export still gets these postings, keep going
				log.Printf("⚠️ Database save failed on page %d: %v", pageNum, err)
			} else {
				result.Inserted += counts.Inserted
				result.Updated += counts.Updated
				result.Skipped += counts.Skipped
				result.InsertedIDs = append(result.InsertedIDs, counts.InsertedIDs...)
				log.Printf("✓ Found %d jobs on page %d (%d new, %d existing)",
					len(postings), pageNum, counts.Inserted, counts.Updated)
			}
		} else {
			log.Printf("✓ Found %d jobs on page %d", len(postings), pageNum)
		}

		result.Postings = append(result.Postings, postings...)

		if pageNum < opts.MaxPages {
			log.Printf("⏳ Waiting %s before next page...", s.cfg.PageDelay)
			if err := sleep(ctx, s.cfg.PageDelay); err != nil {
				return result, err
			}
		}
	}

	log.Printf("✅ Total jobs scraped: %d", len(result.Postings))
	if s.store != nil {
		log.Printf("   📊 Database: %d new, %d existing", result.Inserted, result.Updated)
	}
	return result, nil
}

// extractAll keeps fragment order, drops non-listings and applies the
// job-bank-only source filter.
func (s *Scraper) extractAll(fragments []*goquery.Selection, jobBankOnly bool) []models.Posting {
	postings := make([]models.Posting, 0, len(fragments))

	for _, sel := range fragments {
		p, err := ExtractPosting(sel, s.cfg.BaseURL)
		if err != nil {
			continue
		}
		if jobBankOnly && p.Source != models.SourceJobBank {
			continue
		}
		postings = append(postings, p)
	}

	return postings
}
