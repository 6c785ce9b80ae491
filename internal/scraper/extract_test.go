package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadeghianmr/JobBank-Scraper/internal/models"
)

const jobBankBase = "https://www.jobbank.gc.ca"

func fragment(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	sel := doc.Find(listingSelector)
	require.Equal(t, 1, sel.Length(), "test html must contain one listing")
	return sel.First()
}

func TestExtractPostingFullListing(t *testing.T) {
	sel := fragment(t, `
<a class="resultJobItem" href="/jobsearch/jobposting/41558600;jsessionid=1A2B3C">
  <h3 class="title"><span class="noctitle">software developer</span></h3>
  <ul class="list-unstyled">
    <li class="date">August 20, 2025</li>
    <li class="business">Maple Systems Inc.</li>
    <li class="location">Location Toronto (ON)</li>
    <li class="salary">Salary $45.00 hourly</li>
  </ul>
  <span class="telework">Remote</span>
  <span class="postedonJB">Posted on Job Bank</span>
</a>`)

	p, err := ExtractPosting(sel, jobBankBase)
	require.NoError(t, err)

	assert.Equal(t, "41558600", p.JobID, "id drops the session suffix")
	assert.Equal(t, "software developer", p.Title)
	assert.Equal(t, "Maple Systems Inc.", p.Company)
	assert.Equal(t, "Toronto (ON)", p.Location, "Location label prefix is stripped")
	assert.Equal(t, "$45.00 hourly", p.Salary, "Salary label prefix is stripped")
	assert.Equal(t, "Remote", p.JobType)
	assert.Equal(t, "August 20, 2025", p.DatePosted)
	assert.Equal(t, jobBankBase+"/jobsearch/jobposting/41558600;jsessionid=1A2B3C", p.URL)
	assert.Equal(t, models.SourceJobBank, p.Source)
}

func TestExtractPostingSources(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "postedonJB badge wins",
			html: `<a class="resultJobItem" href="/jobsearch/jobposting/1">
				<span class="noctitle">cook</span>
				<ul class="list-unstyled"><li class="source">Indeed</li></ul>
				<span class="postedonJB">Posted on Job Bank</span></a>`,
			want: models.SourceJobBank,
		},
		{
			name: "indeed in source item",
			html: `<a class="resultJobItem" href="/jobsearch/jobposting/2">
				<span class="noctitle">cook</span>
				<ul class="list-unstyled"><li class="source">Posted on Indeed.com</li></ul></a>`,
			want: models.SourceIndeed,
		},
		{
			name: "careerbeacon in job-source span",
			html: `<a class="resultJobItem" href="/jobsearch/jobposting/3">
				<span class="noctitle">cook</span>
				<span class="job-source">via CareerBeacon</span></a>`,
			want: models.SourceCareerBeacon,
		},
		{
			name: "unknown board kept verbatim",
			html: `<a class="resultJobItem" href="/jobsearch/jobposting/4">
				<span class="noctitle">cook</span>
				<ul class="list-unstyled"><li class="source">Workopolis</li></ul></a>`,
			want: "Workopolis",
		},
		{
			name: "no source info defaults to Job Bank",
			html: `<a class="resultJobItem" href="/jobsearch/jobposting/5">
				<span class="noctitle">cook</span></a>`,
			want: models.SourceJobBank,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ExtractPosting(fragment(t, tt.html), jobBankBase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Source)
		})
	}
}

func TestExtractPostingNotAListing(t *testing.T) {
	//no href at all
	_, err := ExtractPosting(fragment(t,
		`<a class="resultJobItem"><span class="noctitle">ghost job</span></a>`), jobBankBase)
	assert.ErrorIs(t, err, models.ErrNoListing)

	//link but no title
	_, err = ExtractPosting(fragment(t,
		`<a class="resultJobItem" href="/jobsearch/jobposting/99"><span class="wb-inv">hidden</span></a>`),
		jobBankBase)
	assert.ErrorIs(t, err, models.ErrNoListing)
}

func TestExtractPostingMissingDetailsTolerated(t *testing.T) {
	p, err := ExtractPosting(fragment(t, `
<a class="resultJobItem" href="/jobsearch/jobposting/314159">
  <span class="noctitle">greenhouse worker</span>
</a>`), jobBankBase)
	require.NoError(t, err)

	assert.Equal(t, "314159", p.JobID)
	assert.Equal(t, "greenhouse worker", p.Title)
	assert.Empty(t, p.Company)
	assert.Empty(t, p.Location)
	assert.Empty(t, p.Salary)
	assert.Empty(t, p.JobType)
}

func TestJobIDFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{href: "/jobsearch/jobposting/41558600;jsessionid=XYZ", want: "41558600"},
		{href: "/jobsearch/jobposting/41558600", want: "41558600"},
		{href: "41558600", want: ""},
		{href: "/jobsearch/jobposting/", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, jobIDFromHref(tt.href), tt.href)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  software   developer \n", want: "software developer"},
		{in: "Location Toronto (ON)", want: "Toronto (ON)"},
		{in: "Salary $22.50 to $25.00 hourly", want: "$22.50 to $25.00 hourly"},
		{in: "Employer Maple Systems Inc.", want: "Maple Systems Inc."},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanText(tt.in), tt.in)
	}
}
