package util

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"venue-scraper/models/venue"
)

// CsvWriter serializes record collections to comma-delimited files. Columns
// follow the csv tags of the record type, so an empty collection still yields
// the header row.
type CsvWriter struct{}

func NewCsvWriter() *CsvWriter {
	return &CsvWriter{}
}

func (w *CsvWriter) WriteVenues(path string, venues []venue.Venue) error {
	return writeCSV(path, venues)
}

func (w *CsvWriter) WriteVenueImages(path string, images []venue.VenueImage) error {
	return writeCSV(path, images)
}

func (w *CsvWriter) WriteOpeningHours(path string, hours []venue.OpeningHour) error {
	return writeCSV(path, hours)
}

// writeCSV truncates path and writes records to it.
func writeCSV[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	if err := gocsv.Marshal(records, f); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}
