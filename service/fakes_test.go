package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"venue-scraper/api/places"
	"venue-scraper/models"
	"venue-scraper/models/place"
	"venue-scraper/models/venue"
)

// fakeDownloader records requests and pretends to write "<dir>/<name>".
type fakeDownloader struct {
	requests []ImageRequest
	failOn   string
}

func (f *fakeDownloader) Download(ctx context.Context, req ImageRequest) (string, error) {
	f.requests = append(f.requests, req)
	if req.PhotoReference == f.failOn {
		return "", errors.New("connection reset by peer")
	}
	return "images/" + ImageFilename(req.BaseName, req.VenueID, req.Sequence), nil
}

// fakePlacesAPI serves canned search results, details and photo bytes.
type fakePlacesAPI struct {
	summaries   []models.PlaceSummary
	searchErr   error
	details     map[string]*place.PlaceDetails
	detailErrs  map[string]error
	photo       []byte
	photoErr    error
	photoErrs   map[string]error
	detailCalls []string
	photoCalls  []string
}

func (f *fakePlacesAPI) SearchPlaces(ctx context.Context, params places.SearchParams) ([]models.PlaceSummary, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := f.summaries
	if len(out) > params.MaxResults {
		out = out[:params.MaxResults]
	}
	return out, nil
}

func (f *fakePlacesAPI) GetPlaceDetails(ctx context.Context, placeID string) (*place.PlaceDetails, error) {
	f.detailCalls = append(f.detailCalls, placeID)
	if err := f.detailErrs[placeID]; err != nil {
		return nil, err
	}
	if d, ok := f.details[placeID]; ok {
		return d, nil
	}
	return &place.PlaceDetails{}, nil
}

func (f *fakePlacesAPI) DownloadPhoto(ctx context.Context, photoReference string, maxWidth int, w io.Writer) (int64, error) {
	f.photoCalls = append(f.photoCalls, fmt.Sprintf("%s@%d", photoReference, maxWidth))
	err := f.photoErr
	if e := f.photoErrs[photoReference]; e != nil {
		err = e
	}
	if err != nil {
		w.Write([]byte("partial"))
		return 7, err
	}
	n, err := w.Write(f.photo)
	return int64(n), err
}

// memorySink collects exported documents.
type memorySink struct {
	mu   sync.Mutex
	docs []venue.VenueDocument
	err  error
}

func (m *memorySink) UpsertVenueDocument(ctx context.Context, doc venue.VenueDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.docs = append(m.docs, doc)
	return nil
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func intPtr(i int) *int { return &i }
