package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Install downloads the playwright driver and a chromium build. This is the
// one-time setup step the session errors point at.
func Install() error {
	err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
	if err != nil {
		return fmt.Errorf("playwright install failed: %w", err)
	}
	return nil
}
