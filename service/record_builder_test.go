package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-scraper/config"
	"venue-scraper/logging"
	"venue-scraper/models/place"
	"venue-scraper/models/venue"
)

var runCreatedAt = venue.Timestamp{Time: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)}

func newTestBuilder(d PhotoDownloader, policy config.UnmatchedHoursPolicy, mode config.DayIndexMode) *RecordBuilder {
	b := NewRecordBuilder(d, policy, mode, logging.Discard())
	b.newID = sequentialIDs("id")
	return b
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-blind-pig", Slugify("The Blind Pig"))
	assert.Equal(t, "bar-termini-centrale", Slugify("Bar Termini Centrale"))
	assert.Equal(t, "dishoom,-king's-cross", Slugify("Dishoom, King's Cross"))
	assert.Equal(t, "", Slugify(""))
}

func TestBuild_FullDetails(t *testing.T) {
	downloader := &fakeDownloader{}
	b := newTestBuilder(downloader, config.HoursSkip, config.DayIndexPosition)

	details := &place.PlaceDetails{
		PlaceID:              "ChIJ-pig",
		Name:                 "The Blind Pig",
		FormattedAddress:     "58 Poland St, London W1F 7NR, UK",
		FormattedPhoneNumber: "020 7993 3251",
		Website:              "https://socialeating.co.uk",
		PriceLevel:           intPtr(3),
		UserRatingsTotal:     intPtr(812),
		Photos: []place.Photo{
			{PhotoReference: "ref-a"},
			{PhotoReference: "ref-b"},
		},
		OpeningHours: &place.OpeningHours{WeekdayText: []string{
			"Monday: 9:00 AM – 5:00 PM",
			"Tuesday: Closed",
			"Wednesday: 5:00 PM – 1:00 AM",
		}},
		EditorialSummary: &place.EditorialSummary{Overview: "Cocktails above a restaurant."},
	}

	got, err := b.Build(context.Background(), "ChIJ-pig", details, runCreatedAt)
	require.NoError(t, err)

	want := &VenueRecords{
		Venue: venue.Venue{
			ID:               "id-1",
			Slug:             "the-blind-pig",
			Name:             "The Blind Pig",
			VenueTypeID:      "id-2",
			Summary:          "Cocktails above a restaurant.",
			Description:      "Cocktails above a restaurant.",
			Address:          "58 Poland St, London W1F 7NR, UK",
			PhoneNumber:      "020 7993 3251",
			Website:          "https://socialeating.co.uk",
			PriceLevel:       "3",
			UserRatingsTotal: 812,
			CreatedAt:        runCreatedAt,
		},
		Images: []venue.VenueImage{
			{ID: "id-5", VenueID: "id-1", ImageURL: "ChIJ-pig_id-1.jpg", Featured: true, Description: "Image of The Blind Pig", CreatedAt: runCreatedAt},
			{ID: "id-6", VenueID: "id-1", ImageURL: "ChIJ-pig_id-1_1.jpg", Featured: true, Description: "Image of The Blind Pig", CreatedAt: runCreatedAt},
		},
		OpeningHours: []venue.OpeningHour{
			{ID: "id-3", VenueID: "id-1", WeekDay: 0, OpeningTime: venue.NewClockTime(9, 0), ClosingTime: venue.NewClockTime(17, 0), CreatedAt: runCreatedAt},
			{ID: "id-4", VenueID: "id-1", WeekDay: 2, OpeningTime: venue.NewClockTime(17, 0), ClosingTime: venue.NewClockTime(1, 0), CreatedAt: runCreatedAt},
		},
	}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(venue.ClockTime{})); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, downloader.requests, 2)
	assert.Equal(t, ImageRequest{PhotoReference: "ref-a", VenueID: "id-1", BaseName: "ChIJ-pig", Sequence: 0}, downloader.requests[0])
	assert.Equal(t, 1, downloader.requests[1].Sequence)
}

func TestBuild_EmptyDetailsUsesDefaults(t *testing.T) {
	downloader := &fakeDownloader{}
	b := NewRecordBuilder(downloader, config.HoursSkip, config.DayIndexPosition, logging.Discard())

	got, err := b.Build(context.Background(), "p1", &place.PlaceDetails{}, runCreatedAt)
	require.NoError(t, err)

	assert.Equal(t, "N/A", got.Venue.PriceLevel)
	assert.Equal(t, 0, got.Venue.UserRatingsTotal)
	assert.Empty(t, got.Venue.Slug)
	assert.Empty(t, got.Venue.Summary)
	assert.Empty(t, got.Venue.EmailAddress)
	assert.Empty(t, got.Venue.Instagram)
	assert.Empty(t, got.Venue.Facebook)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.OpeningHours)
	assert.Empty(t, downloader.requests)

	_, err = uuid.Parse(got.Venue.ID)
	assert.NoError(t, err)
	_, err = uuid.Parse(got.Venue.VenueTypeID)
	assert.NoError(t, err)
	assert.NotEqual(t, got.Venue.ID, got.Venue.VenueTypeID)
}

func TestBuild_ZeroPhotosZeroImages(t *testing.T) {
	downloader := &fakeDownloader{}
	b := newTestBuilder(downloader, config.HoursSkip, config.DayIndexPosition)

	got, err := b.Build(context.Background(), "p1", &place.PlaceDetails{Name: "No Pics", Photos: []place.Photo{}}, runCreatedAt)

	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Empty(t, downloader.requests)
}

func TestBuild_ImageBaseNameFallsBackToSearchPlaceID(t *testing.T) {
	downloader := &fakeDownloader{}
	b := newTestBuilder(downloader, config.HoursSkip, config.DayIndexPosition)

	_, err := b.Build(context.Background(), "from-search", &place.PlaceDetails{Photos: []place.Photo{{PhotoReference: "r"}}}, runCreatedAt)

	require.NoError(t, err)
	require.Len(t, downloader.requests, 1)
	assert.Equal(t, "from-search", downloader.requests[0].BaseName)
}

func TestBuild_DownloadFailure(t *testing.T) {
	downloader := &fakeDownloader{failOn: "bad"}
	b := newTestBuilder(downloader, config.HoursSkip, config.DayIndexPosition)

	_, err := b.Build(context.Background(), "p1", &place.PlaceDetails{
		Photos: []place.Photo{{PhotoReference: "ok"}, {PhotoReference: "bad"}},
	}, runCreatedAt)

	require.Error(t, err)
	assert.Equal(t, StageDownload, StageOf(err))
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "p1", stageErr.PlaceID)
}

func TestBuild_ClosedDayIsSkipped(t *testing.T) {
	for _, policy := range []config.UnmatchedHoursPolicy{config.HoursSkip, config.HoursWarn, config.HoursFail} {
		t.Run(string(policy), func(t *testing.T) {
			b := newTestBuilder(&fakeDownloader{}, policy, config.DayIndexPosition)

			got, err := b.Build(context.Background(), "p1", &place.PlaceDetails{
				OpeningHours: &place.OpeningHours{WeekdayText: []string{
					"Saturday: Open 24 hours",
					"Sunday: Closed",
				}},
			}, runCreatedAt)

			require.NoError(t, err)
			assert.Empty(t, got.OpeningHours)
		})
	}
}

func TestBuild_UnmatchedHoursPolicy(t *testing.T) {
	weekdayText := []string{
		"Monday: 9:00 AM – 5:00 PM",
		"Tuesday: 11:00 AM – 3:00 PM, 6:00 – 11:00 PM",
		"Wednesday: 9:00 AM – 5:00 PM",
	}

	for _, policy := range []config.UnmatchedHoursPolicy{config.HoursSkip, config.HoursWarn} {
		t.Run(string(policy), func(t *testing.T) {
			b := newTestBuilder(&fakeDownloader{}, policy, config.DayIndexPosition)

			got, err := b.Build(context.Background(), "p1", &place.PlaceDetails{
				OpeningHours: &place.OpeningHours{WeekdayText: weekdayText},
			}, runCreatedAt)

			require.NoError(t, err)
			require.Len(t, got.OpeningHours, 2)
			assert.Equal(t, 0, got.OpeningHours[0].WeekDay)
			assert.Equal(t, 2, got.OpeningHours[1].WeekDay)
		})
	}

	t.Run(string(config.HoursFail), func(t *testing.T) {
		b := newTestBuilder(&fakeDownloader{}, config.HoursFail, config.DayIndexPosition)

		_, err := b.Build(context.Background(), "p1", &place.PlaceDetails{
			OpeningHours: &place.OpeningHours{WeekdayText: weekdayText},
		}, runCreatedAt)

		require.Error(t, err)
		assert.Equal(t, StageHours, StageOf(err))
		var parseErr *HoursParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 1, parseErr.Position)
	})
}

func TestBuild_WeekdayModeIgnoresPosition(t *testing.T) {
	b := newTestBuilder(&fakeDownloader{}, config.HoursSkip, config.DayIndexWeekday)

	got, err := b.Build(context.Background(), "p1", &place.PlaceDetails{
		OpeningHours: &place.OpeningHours{WeekdayText: []string{
			"Sunday: 12:00 PM – 10:00 PM",
			"Monday: 9:00 AM – 5:00 PM",
		}},
	}, runCreatedAt)

	require.NoError(t, err)
	require.Len(t, got.OpeningHours, 2)
	assert.Equal(t, 6, got.OpeningHours[0].WeekDay)
	assert.Equal(t, 0, got.OpeningHours[1].WeekDay)
}
