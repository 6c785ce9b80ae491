package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

// Selectors for one result fragment, an <a class="resultJobItem"> anchor.
// Everything beyond the link and title is optional on the live site.
const (
	listingSelector = "a.resultJobItem"

	titleSelector    = "span.noctitle"
	detailsSelector  = "ul.list-unstyled"
	dateSelector     = "li.date"
	businessSelector = "li.business"
	locationSelector = "li.location"
	salarySelector   = "li.salary"
	teleworkSelector = "span.telework"
	postedOnSelector = "span.postedonJB"
	sourceSelector   = "li.source"
	jobSourceAux     = "span.job-source"
)

// ExtractPosting turns one result fragment into a Posting. A fragment without
// a job link or title is not a listing and yields ErrNoListing; any other
// missing field just stays empty.
func ExtractPosting(sel *goquery.Selection, baseURL string) (models.Posting, error) {
	var p models.Posting

	href, ok := sel.Attr("href")
	if !ok || href == "" {
		return p, models.ErrNoListing
	}
	p.URL = baseURL + href
	p.JobID = jobIDFromHref(href)

	title := sel.Find(titleSelector)
	if title.Length() == 0 {
		return p, models.ErrNoListing
	}
	p.Title = cleanText(title.Text())

	details := sel.Find(detailsSelector)
	if details.Length() > 0 {
		p.DatePosted = cleanText(details.Find(dateSelector).Text())
		p.Company = cleanText(details.Find(businessSelector).Text())
		p.Location = cleanText(details.Find(locationSelector).Text())
		p.Salary = cleanText(details.Find(salarySelector).Text())
	}

	p.JobType = cleanText(sel.Find(teleworkSelector).Text())
	p.Source = extractSource(sel, details)

	return p, nil
}

// jobIDFromHref takes the numeric id from a posting path such as
// /jobsearch/jobposting/41558600;jsessionid=....
func jobIDFromHref(href string) string {
	if !strings.Contains(href, "/") {
		return ""
	}
	tail := href[strings.LastIndex(href, "/")+1:]
	if i := strings.Index(tail, ";"); i >= 0 {
		tail = tail[:i]
	}
	return tail
}

// extractSource tells direct postings apart from aggregated ones. The site
// marks its own listings with a postedonJB badge; external ones name their
// board in a source item.
func extractSource(sel, details *goquery.Selection) string {
	if sel.Find(postedOnSelector).Length() > 0 {
		return models.SourceJobBank
	}

	var text string
	if details != nil && details.Length() > 0 {
		text = cleanText(details.Find(sourceSelector).Text())
	}
	if text == "" {
		text = cleanText(sel.Find(jobSourceAux).Text())
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "indeed"):
		return models.SourceIndeed
	case strings.Contains(lower, "careerbeacon"):
		return models.SourceCareerBeacon
	case text != "":
		return text
	default:
		return models.SourceJobBank
	}
}

var labelPrefixes = []string{"Location ", "Salary ", "Employer "}

// cleanText collapses whitespace and strips the site's field labels, which
// goquery returns glued to the values.
func cleanText(s string) string {
	cleaned := strings.Join(strings.Fields(s), " ")
	for _, prefix := range labelPrefixes {
		cleaned = strings.TrimPrefix(cleaned, prefix)
	}
	return strings.TrimSpace(cleaned)
}
