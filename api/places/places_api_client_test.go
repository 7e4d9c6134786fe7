package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-scraper/api"
	"venue-scraper/models"
)

// pagedSearchServer serves total results split into pages of pageSize and
// records every query it sees.
func pagedSearchServer(t *testing.T, total, pageSize int, seen *[]map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != TEXT_SEARCH_ENDPOINT {
			t.Errorf("expected path %s; got %s", TEXT_SEARCH_ENDPOINT, r.URL.Path)
		}
		q := r.URL.Query()
		flat := map[string]string{}
		for k := range q {
			flat[k] = q.Get(k)
		}
		*seen = append(*seen, flat)

		page := 0
		if tok := q.Get("pagetoken"); tok != "" {
			fmt.Sscanf(tok, "page-%d", &page)
		}

		resp := models.SearchPlacesResponse{Status: STATUS_OK, Results: []models.PlaceSummary{}}
		for i := page * pageSize; i < total && i < (page+1)*pageSize; i++ {
			resp.Results = append(resp.Results, models.PlaceSummary{
				PlaceID: fmt.Sprintf("place-%d", i),
				Name:    fmt.Sprintf("Venue %d", i),
			})
		}
		if (page+1)*pageSize < total {
			resp.NextPageToken = fmt.Sprintf("page-%d", page+1)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(baseURL string) *PlacesApiClient {
	client := NewPlacesApiClient(api.NewHTTPClient(baseURL))
	client.SetCredentials("secret")
	return client
}

func TestSearchPlaces_ReturnsMinOfTotalAndCap(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		max          int
		wantLen      int
		wantRequests int
	}{
		{"single page under cap", 4, 10, 4, 1},
		{"cap inside first page", 20, 10, 10, 1},
		{"cap spans pages", 45, 25, 25, 2},
		{"all pages under cap", 45, 60, 45, 3},
		{"no results", 0, 10, 0, 1},
		{"exact page boundary", 40, 20, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []map[string]string
			srv := pagedSearchServer(t, tt.total, 20, &seen)
			defer srv.Close()

			got, err := newTestClient(srv.URL).SearchPlaces(context.Background(), SearchParams{
				Query:        "bars",
				Location:     "1.5,2.5",
				RadiusMeters: 5600,
				MaxResults:   tt.max,
			})

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Len(t, seen, tt.wantRequests)
			for i, p := range got {
				assert.Equal(t, fmt.Sprintf("place-%d", i), p.PlaceID)
			}
		})
	}
}

func TestSearchPlaces_FollowUpUsesTokenOnly(t *testing.T) {
	var seen []map[string]string
	srv := pagedSearchServer(t, 30, 20, &seen)
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchPlaces(context.Background(), SearchParams{
		Query: "bars", Location: "1.5,2.5", RadiusMeters: 5600, MaxResults: 30,
	})
	require.NoError(t, err)
	require.Len(t, seen, 2)

	assert.Equal(t, map[string]string{
		"query":    "bars",
		"location": "1.5,2.5",
		"radius":   "5600",
		"key":      "secret",
	}, seen[0])
	assert.Equal(t, map[string]string{
		"pagetoken": "page-1",
		"key":       "secret",
	}, seen[1])
}

func TestSearchPlaces_NonPositiveCapMakesNoRequest(t *testing.T) {
	var seen []map[string]string
	srv := pagedSearchServer(t, 5, 20, &seen)
	defer srv.Close()

	got, err := newTestClient(srv.URL).SearchPlaces(context.Background(), SearchParams{MaxResults: 0})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, seen)
}

func TestSearchPlaces_HTTPErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchPlaces(context.Background(), SearchParams{MaxResults: 10})

	require.Error(t, err)
	var statusErr *api.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestSearchPlaces_DeniedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid.", "results": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchPlaces(context.Background(), SearchParams{MaxResults: 10})

	var statusErr *APIStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "REQUEST_DENIED", statusErr.Status)
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestSearchPlaces_ZeroResultsStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).SearchPlaces(context.Background(), SearchParams{MaxResults: 10})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchPlaces_DeadlineWhileWaitingForToken(t *testing.T) {
	var seen []map[string]string
	srv := pagedSearchServer(t, 30, 20, &seen)
	defer srv.Close()

	client := newTestClient(srv.URL)
	client.SetPageTokenDelay(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := client.SearchPlaces(ctx, SearchParams{MaxResults: 30})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetPlaceDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PLACE_DETAILS_ENDPOINT, r.URL.Path)
		assert.Equal(t, "place-42", r.URL.Query().Get("place_id"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		w.Write([]byte(`{
			"status": "OK",
			"result": {
				"place_id": "place-42",
				"name": "Nightjar",
				"price_level": 2,
				"user_ratings_total": 1800,
				"photos": [{"photo_reference": "ref-1", "width": 800, "height": 600}],
				"opening_hours": {"weekday_text": ["Monday: 6:00 PM – 1:00 AM"]},
				"editorial_summary": {"overview": "Speakeasy with live jazz."}
			}
		}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GetPlaceDetails(context.Background(), "place-42")

	require.NoError(t, err)
	assert.Equal(t, "Nightjar", got.Name)
	require.NotNil(t, got.PriceLevel)
	assert.Equal(t, 2, *got.PriceLevel)
	assert.Equal(t, "Speakeasy with live jazz.", got.Overview())
	assert.Equal(t, []string{"Monday: 6:00 PM – 1:00 AM"}, got.WeekdayText())
	require.Len(t, got.Photos, 1)
	assert.Equal(t, "ref-1", got.Photos[0].PhotoReference)
}

func TestGetPlaceDetails_MissingEnvelopeIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"status": "NOT_FOUND"}`, `{"result": null}`} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			got, err := newTestClient(srv.URL).GetPlaceDetails(context.Background(), "gone")

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got.Name)
			assert.Empty(t, got.Photos)
			assert.Nil(t, got.OpeningHours)
			assert.Empty(t, got.Overview())
		})
	}
}

func TestDownloadPhoto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PLACE_PHOTO_ENDPOINT, r.URL.Path)
		assert.Equal(t, "1280", r.URL.Query().Get("maxwidth"))
		assert.Equal(t, "ref-9", r.URL.Query().Get("photoreference"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	n, err := newTestClient(srv.URL).DownloadPhoto(context.Background(), "ref-9", 1280, &buf)

	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.Equal(t, "jpeg-bytes", buf.String())
}
