package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"venue-scraper/models/venue"
)

// PlotVenues renders an HTML map with one point per located venue and
// returns how many points were plotted.
func PlotVenues(path, title string, docs []venue.VenueDocument) (int, error) {
	points := make([]opts.GeoData, 0, len(docs))
	for _, d := range docs {
		if !d.HasLocation {
			continue
		}
		points = append(points, opts.GeoData{
			Name:  d.Venue.Name,
			Value: []float64{d.Lng, d.Lat},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Venues", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create map file %q: %w", path, err)
	}
	defer f.Close()

	if err := geo.Render(f); err != nil {
		return 0, fmt.Errorf("render map: %w", err)
	}
	return len(points), nil
}
