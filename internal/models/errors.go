package models

import (
	"errors"
	"fmt"
)

// ErrNoListing marks a result fragment that has no usable job link or title.
// Callers skip the fragment and move on.
var ErrNoListing = errors.New("fragment is not a job listing")

// PageUnavailableError is returned when a results page could not be loaded
// after all retry attempts. The search keeps whatever it collected so far.
type PageUnavailableError struct {
	Page     int
	Attempts int
	Err      error
}

func (e *PageUnavailableError) Error() string {
	return fmt.Sprintf("page %d unavailable after %d attempts: %v", e.Page, e.Attempts, e.Err)
}

func (e *PageUnavailableError) Unwrap() error {
	return e.Err
}
