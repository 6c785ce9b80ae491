package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFilename names a single-search output file, jobbank_jobs_<timestamp>.
func DefaultFilename(dataDir string, format Format) string {
	name := fmt.Sprintf("jobbank_jobs_%s", time.Now().Format("20060102_150405"))
	return filepath.Join(dataDir, name+"."+format.Extension())
}

// SearchFilename names a batch output file from its search terms, falling
// back to batch_search_<n> when both are empty.
func SearchFilename(dataDir, keyword, location string, n int, format Format) string {
	var parts []string
	if s := slug(keyword); s != "" {
		parts = append(parts, s)
	}
	if s := slug(location); s != "" {
		parts = append(parts, s)
	}

	name := strings.Join(parts, "_")
	if name == "" {
		name = fmt.Sprintf("batch_search_%d", n)
	}
	return filepath.Join(dataDir, name+"."+format.Extension())
}

// slug folds diacritics so "Montréal, QC" becomes Montreal_QC.
func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, ",", "")
	return strings.Join(strings.Fields(folded), "_")
}
