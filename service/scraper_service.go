package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"venue-scraper/api/places"
	"venue-scraper/config"
	"venue-scraper/logging"
	"venue-scraper/models/venue"
)

// TabularWriter persists the three record collections.
type TabularWriter interface {
	WriteVenues(path string, venues []venue.Venue) error
	WriteVenueImages(path string, images []venue.VenueImage) error
	WriteOpeningHours(path string, hours []venue.OpeningHour) error
}

// VenueSink receives every built venue once the CSV files are written.
type VenueSink interface {
	UpsertVenueDocument(ctx context.Context, doc venue.VenueDocument) error
}

// MapRenderer draws the located venues into an HTML file.
type MapRenderer func(path, title string, docs []venue.VenueDocument) (int, error)

// OutputFiles are the artifacts of one run.
type OutputFiles struct {
	Venues       string
	VenueImages  string
	OpeningHours string
	Map          string
}

// RunReport is the result of one run. Failures lists the venues that were
// dropped when failed venues are skipped.
type RunReport struct {
	CreatedAt    venue.Timestamp
	Searched     int
	Venues       []venue.Venue
	Images       []venue.VenueImage
	OpeningHours []venue.OpeningHour
	Documents    []venue.VenueDocument
	Files        OutputFiles
	Failures     []*StageError
	Exported     int
}

// ScraperService runs search, details, record building and CSV output for
// one query.
type ScraperService struct {
	cfg       config.Config
	placesAPI places.PlacesAPI
	builder   *RecordBuilder
	writer    TabularWriter
	sink      VenueSink
	renderMap MapRenderer
	logger    *slog.Logger
	now       func() time.Time
}

// NewScraperService wires the pipeline. sink and renderMap may be nil.
func NewScraperService(
	cfg config.Config,
	placesAPI places.PlacesAPI,
	builder *RecordBuilder,
	writer TabularWriter,
	sink VenueSink,
	renderMap MapRenderer,
	logger *slog.Logger,
) *ScraperService {
	return &ScraperService{
		cfg:       cfg,
		placesAPI: placesAPI,
		builder:   builder,
		writer:    writer,
		sink:      sink,
		renderMap: renderMap,
		logger:    logging.Component(logger, "ScraperService"),
		now:       time.Now,
	}
}

// Run executes one scrape. Search and write failures always abort. A
// per-venue failure aborts too unless SkipFailedVenues is set, in which case
// the venue is dropped and recorded in the report.
func (s *ScraperService) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		CreatedAt:    venue.Timestamp{Time: s.now()},
		Venues:       []venue.Venue{},
		Images:       []venue.VenueImage{},
		OpeningHours: []venue.OpeningHour{},
		Documents:    []venue.VenueDocument{},
	}

	s.logger.Info("searching places",
		slog.String("query", s.cfg.Query),
		slog.String("location", s.cfg.Location),
		slog.Int("radius", s.cfg.RadiusMeters),
		slog.Int("max_results", s.cfg.MaxResults))

	summaries, err := s.placesAPI.SearchPlaces(ctx, places.SearchParams{
		Query:        s.cfg.Query,
		Location:     s.cfg.Location,
		RadiusMeters: s.cfg.RadiusMeters,
		MaxResults:   s.cfg.MaxResults,
	})
	if err != nil {
		return nil, &StageError{Stage: StageSearch, Err: err}
	}
	report.Searched = len(summaries)
	s.logger.Info("search finished", slog.Int("places", len(summaries)))

	for _, summary := range summaries {
		doc, err := s.processPlace(ctx, summary.PlaceID, report.CreatedAt)
		if err != nil {
			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				stageErr = &StageError{Stage: StageDetails, PlaceID: summary.PlaceID, Err: err}
			}
			if !s.cfg.SkipFailedVenues || ctx.Err() != nil {
				return nil, stageErr
			}
			s.logger.Warn("skipping venue", slog.String("place_id", summary.PlaceID), slog.Any("error", stageErr))
			report.Failures = append(report.Failures, stageErr)
			continue
		}

		report.Documents = append(report.Documents, *doc)
		report.Venues = append(report.Venues, doc.Venue)
		report.Images = append(report.Images, doc.Images...)
		report.OpeningHours = append(report.OpeningHours, doc.OpeningHours...)
	}

	if err := s.write(report); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	s.export(ctx, report)
	s.plot(report)

	s.logger.Info("run finished",
		slog.Int("venues", len(report.Venues)),
		slog.Int("images", len(report.Images)),
		slog.Int("opening_hours", len(report.OpeningHours)),
		slog.Int("failures", len(report.Failures)))
	return report, nil
}

func (s *ScraperService) processPlace(ctx context.Context, placeID string, createdAt venue.Timestamp) (*venue.VenueDocument, error) {
	details, err := s.placesAPI.GetPlaceDetails(ctx, placeID)
	if err != nil {
		return nil, &StageError{Stage: StageDetails, PlaceID: placeID, Err: err}
	}
	s.logger.Debug("fetched details", slog.String("place_id", placeID), slog.String("name", details.Name))

	records, err := s.builder.Build(ctx, placeID, details, createdAt)
	if err != nil {
		return nil, err
	}

	doc := &venue.VenueDocument{
		Venue:        records.Venue,
		Images:       records.Images,
		OpeningHours: records.OpeningHours,
		PlaceID:      placeID,
	}
	if lat, lng, ok := details.Coordinates(); ok {
		doc.Lat, doc.Lng, doc.HasLocation = lat, lng, true
	}
	return doc, nil
}

func (s *ScraperService) write(report *RunReport) error {
	venuesPath, imagesPath, hoursPath := s.cfg.OutputFiles()

	if err := s.writer.WriteVenues(venuesPath, report.Venues); err != nil {
		return err
	}
	if err := s.writer.WriteVenueImages(imagesPath, report.Images); err != nil {
		return err
	}
	if err := s.writer.WriteOpeningHours(hoursPath, report.OpeningHours); err != nil {
		return err
	}

	report.Files.Venues = venuesPath
	report.Files.VenueImages = imagesPath
	report.Files.OpeningHours = hoursPath
	return nil
}

// export pushes the run into the venue sink. The CSV files are the primary
// output, so failures here are only logged.
func (s *ScraperService) export(ctx context.Context, report *RunReport) {
	if s.sink == nil {
		return
	}
	for _, doc := range report.Documents {
		if !doc.HasLocation {
			s.logger.Debug("not exporting venue without location", slog.String("venue_id", doc.Venue.ID))
			continue
		}
		if err := s.sink.UpsertVenueDocument(ctx, doc); err != nil {
			s.logger.Warn("venue export failed", slog.String("venue_id", doc.Venue.ID), slog.Any("error", err))
			continue
		}
		report.Exported++
	}
	s.logger.Info("venues exported", slog.Int("exported", report.Exported))
}

func (s *ScraperService) plot(report *RunReport) {
	if !s.cfg.RenderMap || s.renderMap == nil {
		return
	}
	path := s.cfg.MapFile()
	n, err := s.renderMap(path, s.cfg.Query, report.Documents)
	if err != nil {
		s.logger.Warn("venue map not rendered", slog.Any("error", err))
		return
	}
	report.Files.Map = path
	s.logger.Info("venue map rendered", slog.String("path", path), slog.Int("points", n))
}

// CompletionMessage is the one-line summary printed after a successful run.
func CompletionMessage(cfg config.Config, report *RunReport) string {
	return fmt.Sprintf("Data saved to %s, %s, and %s. Images are stored in the '%s' folder.",
		report.Files.Venues, report.Files.VenueImages, report.Files.OpeningHours, cfg.ImageDir)
}
