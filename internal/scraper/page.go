package scraper

import (
	"github.com/playwright-community/playwright-go"
)

// Page is the slice of playwright.Page the scraper drives. Production passes
// the browser session's page straight through; tests script a fake.
type Page interface {
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)
	WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error)
	Content() (string, error)
	Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error)
}
