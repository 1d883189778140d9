package report

import "time"

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// RepositoryRow models a single structured report record.
type RepositoryRow struct {
	FullURL string
	Name    string
}

// CSVRecord returns the row formatted for CSV encoding.
func (row RepositoryRow) CSVRecord() []string {
	return []string{
		row.FullURL,
		row.Name,
	}
}
