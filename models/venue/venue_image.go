package venue

// VenueImage is one downloaded photo of a venue.
type VenueImage struct {
	ID          string    `csv:"id" json:"id"`
	VenueID     string    `csv:"venue_id" json:"venue_id"`
	ImageURL    string    `csv:"image_url" json:"image_url"`
	Featured    Flag      `csv:"featured" json:"featured"`
	Description string    `csv:"description" json:"description"`
	CreatedAt   Timestamp `csv:"created_at" json:"created_at"`
}
