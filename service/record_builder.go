package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"venue-scraper/config"
	"venue-scraper/logging"
	"venue-scraper/models/place"
	"venue-scraper/models/venue"
)

const PRICE_LEVEL_UNKNOWN = "N/A"

// PhotoDownloader fetches one photo and returns the local path.
type PhotoDownloader interface {
	Download(ctx context.Context, req ImageRequest) (string, error)
}

// VenueRecords is everything built from one detail record.
type VenueRecords struct {
	Venue        venue.Venue
	Images       []venue.VenueImage
	OpeningHours []venue.OpeningHour
}

// RecordBuilder maps place details onto the venue schema.
type RecordBuilder struct {
	downloader PhotoDownloader
	unmatched  config.UnmatchedHoursPolicy
	dayIndex   config.DayIndexMode
	logger     *slog.Logger
	newID      func() string
}

// NewRecordBuilder creates a builder. downloader is only called for details
// that carry photo references.
func NewRecordBuilder(
	downloader PhotoDownloader,
	unmatched config.UnmatchedHoursPolicy,
	dayIndex config.DayIndexMode,
	logger *slog.Logger,
) *RecordBuilder {
	return &RecordBuilder{
		downloader: downloader,
		unmatched:  unmatched,
		dayIndex:   dayIndex,
		logger:     logging.Component(logger, "RecordBuilder"),
		newID:      func() string { return uuid.NewString() },
	}
}

// Slugify lowercases name and turns spaces into hyphens. Nothing else is
// touched, so slugs are neither unique nor guaranteed non-empty.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Build turns details into a venue with its images and opening hours. placeID
// is the search result's id, used as the image base name when the details
// payload has none.
func (b *RecordBuilder) Build(ctx context.Context, placeID string, details *place.PlaceDetails, createdAt venue.Timestamp) (*VenueRecords, error) {
	if details == nil {
		details = &place.PlaceDetails{}
	}

	venueID := b.newID()
	overview := details.Overview()

	records := &VenueRecords{
		Venue: venue.Venue{
			ID:               venueID,
			Slug:             Slugify(details.Name),
			Name:             details.Name,
			VenueTypeID:      b.newID(),
			Summary:          overview,
			Description:      overview,
			Address:          details.FormattedAddress,
			PhoneNumber:      details.FormattedPhoneNumber,
			Website:          details.Website,
			PriceLevel:       priceLevel(details.PriceLevel),
			UserRatingsTotal: ratingsTotal(details.UserRatingsTotal),
			CreatedAt:        createdAt,
		},
		Images:       []venue.VenueImage{},
		OpeningHours: []venue.OpeningHour{},
	}

	// Hours first: a rejected line must fail the venue before anything is downloaded.
	hours, err := b.buildOpeningHours(venueID, details.WeekdayText(), createdAt)
	if err != nil {
		return nil, &StageError{Stage: StageHours, PlaceID: placeID, Err: err}
	}
	records.OpeningHours = hours

	images, err := b.buildImages(ctx, placeID, venueID, details, createdAt)
	if err != nil {
		return nil, err
	}
	records.Images = images

	return records, nil
}

func (b *RecordBuilder) buildImages(ctx context.Context, placeID, venueID string, details *place.PlaceDetails, createdAt venue.Timestamp) ([]venue.VenueImage, error) {
	images := []venue.VenueImage{}
	if len(details.Photos) == 0 {
		return images, nil
	}

	baseName := details.PlaceID
	if baseName == "" {
		baseName = placeID
	}

	var written []string
	for i, photo := range details.Photos {
		path, err := b.downloader.Download(ctx, ImageRequest{
			PhotoReference: photo.PhotoReference,
			VenueID:        venueID,
			BaseName:       baseName,
			Sequence:       i,
		})
		if err != nil {
			b.removeImages(venueID, written)
			return nil, &StageError{Stage: StageDownload, PlaceID: placeID, Err: err}
		}
		written = append(written, path)
		b.logger.Debug("downloaded image", slog.String("venue_id", venueID), slog.String("path", path))

		images = append(images, venue.VenueImage{
			ID:          b.newID(),
			VenueID:     venueID,
			ImageURL:    filepath.Base(path),
			Featured:    true,
			Description: fmt.Sprintf("Image of %s", details.Name),
			CreatedAt:   createdAt,
		})
	}
	return images, nil
}

// removeImages deletes the files already downloaded for a venue that is being
// dropped, so no image on disk is left without a record.
func (b *RecordBuilder) removeImages(venueID string, paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn("removing partial image failed",
				slog.String("venue_id", venueID),
				slog.String("path", path),
				slog.Any("error", err))
		}
	}
}

func (b *RecordBuilder) buildOpeningHours(venueID string, weekdayText []string, createdAt venue.Timestamp) ([]venue.OpeningHour, error) {
	hours := []venue.OpeningHour{}
	for position, line := range weekdayText {
		if !hasHoursRange(line) {
			continue
		}

		parsed, err := parseHoursLine(line, position, b.dayIndex)
		if err != nil {
			switch b.unmatched {
			case config.HoursFail:
				return nil, err
			case config.HoursWarn:
				b.logger.Warn("skipping opening hours line",
					slog.String("venue_id", venueID),
					slog.Any("error", err))
			}
			continue
		}

		hours = append(hours, venue.OpeningHour{
			ID:          b.newID(),
			VenueID:     venueID,
			WeekDay:     parsed.Day,
			OpeningTime: parsed.OpeningTime,
			ClosingTime: parsed.ClosingTime,
			CreatedAt:   createdAt,
		})
	}
	return hours, nil
}

func priceLevel(level *int) string {
	if level == nil {
		return PRICE_LEVEL_UNKNOWN
	}
	return strconv.Itoa(*level)
}

func ratingsTotal(total *int) int {
	if total == nil {
		return 0
	}
	return *total
}
