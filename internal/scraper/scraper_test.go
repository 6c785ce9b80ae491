package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadeghianmr/JobBank-Scraper/internal/database"
	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

// pageScript describes one results page of a scripted run.
type pageScript struct {
	gotoErr error //fails every load attempt for this page
	noJobs  bool
	html    string
}

// scriptedPage plays one pageScript per visited results page.
type scriptedPage struct {
	scripts   []pageScript
	visit     int
	gotoCalls int
}

func (s *scriptedPage) current() pageScript {
	if s.visit < len(s.scripts) {
		return s.scripts[s.visit]
	}
	return pageScript{noJobs: true}
}

func (s *scriptedPage) Goto(pageURL string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	s.gotoCalls++
	if err := s.current().gotoErr; err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *scriptedPage) WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	if s.current().noJobs {
		return nil, errors.New("timeout waiting for selector")
	}
	return nil, nil
}

func (s *scriptedPage) Content() (string, error) {
	html := s.current().html
	s.visit++
	return html, nil
}

func (s *scriptedPage) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	return []byte("png"), nil
}

type fakeStore struct {
	batches [][]models.Posting
	err     error
}

func (f *fakeStore) Upsert(ctx context.Context, postings []models.Posting) (database.UpsertResult, error) {
	if f.err != nil {
		return database.UpsertResult{}, f.err
	}
	f.batches = append(f.batches, postings)

	var res database.UpsertResult
	for _, p := range postings {
		if p.JobID == "" {
			res.Skipped++
		} else {
			res.Inserted++
			res.InsertedIDs = append(res.InsertedIDs, p.JobID)
		}
	}
	return res, nil
}

func listing(id, title, source string) string {
	badge := `<span class="postedonJB">Posted on Job Bank</span>`
	if source != models.SourceJobBank {
		badge = fmt.Sprintf(`<ul class="list-unstyled"><li class="source">%s</li></ul>`, source)
	}
	return fmt.Sprintf(
		`<a class="resultJobItem" href="/jobsearch/jobposting/%s"><span class="noctitle">%s</span>%s</a>`,
		id, title, badge)
}

func newTestScraper(t *testing.T, page Page, store Store) *Scraper {
	t.Helper()
	s := New(page, testConfig(t), store)
	s.nav.settle = func() {}
	return s
}

func jobIDs(postings []models.Posting) []string {
	ids := make([]string, len(postings))
	for i, p := range postings {
		ids[i] = p.JobID
	}
	return ids
}

func TestSearchWalksPagesInOrder(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{
		{html: listing("101", "first job", models.SourceJobBank) + listing("102", "second job", models.SourceJobBank)},
		{html: listing("201", "third job", models.SourceJobBank) + listing("202", "fourth job", models.SourceJobBank)},
	}}
	store := &fakeStore{}
	s := newTestScraper(t, page, store)

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "cook", MaxPages: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"101", "102", "201", "202"}, jobIDs(result.Postings),
		"postings keep page order then fragment order")
	assert.Equal(t, 2, result.PagesScraped)
	assert.Equal(t, 2, result.PagesRequested)
	assert.Nil(t, result.PageErr)

	require.Len(t, store.batches, 2, "each page is persisted as it is scraped")
	assert.Equal(t, []string{"101", "102"}, jobIDs(store.batches[0]))
	assert.Equal(t, 4, result.Inserted)
}

func TestSearchPartialResultOnNavigationFailure(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{
		{html: listing("101", "survivor", models.SourceJobBank)},
		{gotoErr: errors.New("net::ERR_TIMED_OUT")},
	}}
	s := newTestScraper(t, page, &fakeStore{})

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "cook", MaxPages: 3})
	require.NoError(t, err, "a halted search is a partial success, not a failure")

	assert.Equal(t, []string{"101"}, jobIDs(result.Postings), "page one results survive")
	assert.Equal(t, 1, result.PagesScraped)
	assert.Equal(t, 3, result.PagesRequested)

	var unavailable *models.PageUnavailableError
	require.ErrorAs(t, result.PageErr, &unavailable)
	assert.Equal(t, 2, unavailable.Page)
}

func TestSearchStopsOnEmptyPage(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{
		{html: listing("101", "only job", models.SourceJobBank)},
		{noJobs: true},
	}}
	s := newTestScraper(t, page, nil)

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "cook", MaxPages: 5})
	require.NoError(t, err)

	assert.Len(t, result.Postings, 1)
	assert.Equal(t, 1, result.PagesScraped)
	assert.Nil(t, result.PageErr, "running out of results is not an error")
}

func TestSearchJobBankOnlyFilter(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{
		{html: listing("101", "direct", models.SourceJobBank) +
			listing("102", "aggregated", "Posted on Indeed") +
			listing("103", "also direct", models.SourceJobBank)},
	}}
	s := newTestScraper(t, page, nil)

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "cook", MaxPages: 1, JobBankOnly: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"101", "103"}, jobIDs(result.Postings))
	for _, p := range result.Postings {
		assert.Equal(t, models.SourceJobBank, p.Source)
	}
}

func TestSearchSkipsNonListings(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{
		{html: `<a class="resultJobItem"><span class="noctitle">no link</span></a>` +
			listing("101", "real job", models.SourceJobBank)},
	}}
	s := newTestScraper(t, page, nil)

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "cook", MaxPages: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"101"}, jobIDs(result.Postings))
}

func TestSearchStoreFailureKeepsResults(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{
		{html: listing("101", "still yours", models.SourceJobBank)},
	}}
	s := newTestScraper(t, page, &fakeStore{err: errors.New("disk full")})

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "cook", MaxPages: 1})
	require.NoError(t, err, "persistence failure must not kill the search")

	assert.Len(t, result.Postings, 1, "postings stay exportable to file")
	assert.Zero(t, result.Inserted)
}

func TestSearchZeroResults(t *testing.T) {
	page := &scriptedPage{scripts: []pageScript{{noJobs: true}}}
	s := newTestScraper(t, page, &fakeStore{})

	result, err := s.Search(context.Background(), SearchOptions{Keyword: "unicorn wrangler", MaxPages: 2})
	require.NoError(t, err)

	assert.Empty(t, result.Postings)
	assert.Zero(t, result.PagesScraped)
	assert.Nil(t, result.PageErr)
}
