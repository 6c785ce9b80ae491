package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

const (
	descriptionSelector = "section#job-description"
	detailsSection      = "section.job-details"
)

// FetchDetails opens a single posting page and pulls the full description
// plus the labelled details the search results never show.
func (s *Scraper) FetchDetails(ctx context.Context, jobURL string) (*models.JobDetails, error) {
	doc, err := s.nav.OpenPosting(ctx, jobURL)
	if err != nil {
		return nil, err
	}
	return parseDetails(doc, jobURL), nil
}

func parseDetails(doc *goquery.Document, jobURL string) *models.JobDetails {
	details := &models.JobDetails{URL: jobURL}
	details.Description = cleanText(doc.Find(descriptionSelector).Text())

	doc.Find(detailsSection + " dt").Each(func(_ int, dt *goquery.Selection) {
		label := cleanText(dt.Text())
		//the site sometimes puts helper spans between a dt and its dd
		value := cleanText(dt.NextAllFiltered("dd").First().Text())
		if label != "" && value != "" {
			details.Extras = append(details.Extras, models.Detail{Label: label, Value: value})
		}
	})

	return details
}
