package venue

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ClockLayout     = "15:04:05"
	TimestampLayout = "2006-01-02 15:04:05.000000"
)

// ClockTime is an optional time of day. The zero value is "absent" and
// renders as an empty CSV cell and a JSON null.
type ClockTime struct {
	hour, minute int
	valid        bool
}

// NewClockTime returns a present time of day.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{hour: hour, minute: minute, valid: true}
}

// ClockTimeOf keeps only the hour and minute of t.
func ClockTimeOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Valid() bool { return c.valid }
func (c ClockTime) Hour() int   { return c.hour }
func (c ClockTime) Minute() int { return c.minute }

func (c ClockTime) String() string {
	if !c.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:00", c.hour, c.minute)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (c ClockTime) MarshalCSV() (string, error) {
	return c.String(), nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*c = ClockTime{}
		return nil
	}
	t, err := time.Parse(ClockLayout, *s)
	if err != nil {
		return fmt.Errorf("invalid clock time %q: %w", *s, err)
	}
	*c = ClockTimeOf(t)
	return nil
}

// Timestamp is the run-wide creation time shared by every record of a run.
type Timestamp struct {
	time.Time
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t Timestamp) MarshalCSV() (string, error) {
	return t.Format(TimestampLayout), nil
}
