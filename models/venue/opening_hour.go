package venue

// OpeningHour is one parsed line of a venue's weekly schedule. WeekDay is
// 0-based; OpeningTime and ClosingTime are absent when the side reads "Closed".
type OpeningHour struct {
	ID          string    `csv:"id" json:"id"`
	VenueID     string    `csv:"venue_id" json:"venue_id"`
	WeekDay     int       `csv:"week_day" json:"week_day"`
	OpeningTime ClockTime `csv:"opening_time" json:"opening_time"`
	ClosingTime ClockTime `csv:"closing_time" json:"closing_time"`
	CreatedAt   Timestamp `csv:"created_at" json:"created_at"`
}
