package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/sadeghianmr/JobBank-Scraper/internal/config"
	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
	"github.com/sadeghianmr/JobBank-Scraper/utils"
)

// Navigator drives the browser page across search results. It owns the
// polite-delay and retry behavior; extraction never touches the browser.
type Navigator struct {
	page   Page
	cfg    *config.Config
	shots  *utils.ScreenshotDebugger
	settle func()
}

func NewNavigator(page Page, cfg *config.Config) *Navigator {
	return &Navigator{
		page:  page,
		cfg:   cfg,
		shots: utils.NewScreenshotDebugger(cfg.DataDir),
		//let late scripts finish before reading the DOM
		settle: func() { utils.RandomDelay(1000, 2000) },
	}
}

func (n *Navigator) searchURL(keyword, location string, pageNum int) string {
	params := url.Values{}
	params.Set("searchstring", keyword)
	params.Set("locationstring", location)
	params.Set("sort", "D")
	if pageNum > 1 {
		params.Set("page", strconv.Itoa(pageNum))
	}
	return n.cfg.SearchURL() + "?" + params.Encode()
}

// FetchPage loads one results page and returns its listing fragments. A page
// that loads but shows no listings returns an empty slice and no error; a
// page that cannot be loaded after the retry budget returns
// models.PageUnavailableError.
func (n *Navigator) FetchPage(ctx context.Context, keyword, location string, pageNum int) ([]*goquery.Selection, error) {
	pageURL := n.searchURL(keyword, location, pageNum)

	var lastErr error
	loaded := false
	for attempt := 1; attempt <= n.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			log.Printf("⏳ Retrying page %d (attempt %d/%d)...", pageNum, attempt, n.cfg.MaxRetries)
			if err := sleep(ctx, n.cfg.PageDelay); err != nil {
				return nil, err
			}
		}

		_, err := n.page.Goto(pageURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(float64(n.cfg.Timeout.Milliseconds())),
		})
		if err == nil {
			loaded = true
			break
		}
		lastErr = err
		log.Printf("⚠️ Page %d load failed: %v", pageNum, err)
	}

	if !loaded {
		n.shots.CaptureAndLog(n.page, fmt.Sprintf("page-%d-unavailable", pageNum),
			fmt.Sprintf("Page %d still failing after %d attempts", pageNum, n.cfg.MaxRetries))
		return nil, &models.PageUnavailableError{Page: pageNum, Attempts: n.cfg.MaxRetries, Err: lastErr}
	}

	n.settle()

	if _, err := n.page.WaitForSelector(listingSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(n.cfg.SelectorTimeout.Milliseconds())),
	}); err != nil {
		log.Printf("⚠️ No job listings found on page %d", pageNum)
		return nil, nil
	}

	doc, err := n.document(pageNum)
	if err != nil {
		return nil, err
	}

	var fragments []*goquery.Selection
	doc.Find(listingSelector).Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, sel)
	})
	return fragments, nil
}

// OpenPosting loads one job posting page and returns its parsed document.
// Detail pages get a single attempt; they are best-effort extras.
func (n *Navigator) OpenPosting(ctx context.Context, jobURL string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := n.page.Goto(jobURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(n.cfg.Timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", jobURL, err)
	}

	n.settle()
	return n.document(0)
}

func (n *Navigator) document(pageNum int) (*goquery.Document, error) {
	content, err := n.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d content: %w", pageNum, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %d: %w", pageNum, err)
	}
	return doc, nil
}

// sleep waits the full duration unless the context is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
