package venue

import "fmt"

// Venue is the normalized output record for one place.
type Venue struct {
	ID               string    `csv:"id" json:"id"`
	Slug             string    `csv:"slug" json:"slug"`
	Name             string    `csv:"name" json:"name"`
	VenueTypeID      string    `csv:"venue_type_id" json:"venue_type_id"`
	Summary          string    `csv:"summary" json:"summary"`
	Description      string    `csv:"description" json:"description"`
	Address          string    `csv:"address" json:"address"`
	PhoneNumber      string    `csv:"phone_number" json:"phone_number"`
	EmailAddress     string    `csv:"email_address" json:"email_address,omitempty"`
	Website          string    `csv:"website" json:"website"`
	Instagram        string    `csv:"instagram" json:"instagram,omitempty"`
	Facebook         string    `csv:"facebook" json:"facebook,omitempty"`
	PriceLevel       string    `csv:"price_level" json:"price_level"`
	UserRatingsTotal int       `csv:"user_ratings_total" json:"user_ratings_total"`
	CreatedAt        Timestamp `csv:"created_at" json:"created_at"`
}

func (v *Venue) ToString() string {
	return fmt.Sprintf("Venue(id=%s, name=%s, address=%s)", v.ID, v.Name, v.Address)
}
