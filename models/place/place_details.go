package place

import "fmt"

// PlaceDetails is the expanded record of a single place. Every field is
// optional upstream, so pointers are used where absence and zero differ.
type PlaceDetails struct {
	PlaceID              string            `json:"place_id"`
	Name                 string            `json:"name"`
	FormattedAddress     string            `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string            `json:"formatted_phone_number,omitempty"`
	Website              string            `json:"website,omitempty"`
	PriceLevel           *int              `json:"price_level,omitempty"`
	Rating               float64           `json:"rating,omitempty"`
	UserRatingsTotal     *int              `json:"user_ratings_total,omitempty"`
	Geometry             *Geometry         `json:"geometry,omitempty"`
	Photos               []Photo           `json:"photos,omitempty"`
	OpeningHours         *OpeningHours     `json:"opening_hours,omitempty"`
	EditorialSummary     *EditorialSummary `json:"editorial_summary,omitempty"`
}

// Overview returns the editorial summary text, or "" when there is none.
func (p *PlaceDetails) Overview() string {
	if p.EditorialSummary == nil {
		return ""
	}
	return p.EditorialSummary.Overview
}

// WeekdayText returns the human readable opening hours lines, if any.
func (p *PlaceDetails) WeekdayText() []string {
	if p.OpeningHours == nil {
		return nil
	}
	return p.OpeningHours.WeekdayText
}

// Coordinates reports the place location and whether it is known.
func (p *PlaceDetails) Coordinates() (lat, lng float64, ok bool) {
	if p.Geometry == nil {
		return 0, 0, false
	}
	return p.Geometry.Location.Lat, p.Geometry.Location.Lng, true
}

func (p *PlaceDetails) ToString() string {
	return fmt.Sprintf("Place(id=%s, name=%s, address=%s, photos=%d)",
		p.PlaceID, p.Name, p.FormattedAddress, len(p.Photos))
}

// Photo references one image asset of a place.
type Photo struct {
	PhotoReference   string   `json:"photo_reference"`
	Height           int      `json:"height"`
	Width            int      `json:"width"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// OpeningHours holds the weekly schedule. WeekdayText is usually Monday-first.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type EditorialSummary struct {
	Language string `json:"language,omitempty"`
	Overview string `json:"overview"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
