package services

import (
	"strings"
	"time"

	"venue-scraper/config"
	"venue-scraper/models/venue"
)

const (
	hoursLabelSeparator = ": "
	hoursRangeSeparator = " – "
	hoursClosed         = "Closed"
	hoursClockLayout    = "3:04 PM"
)

var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// The provider pads the dash with thin spaces and puts a narrow no-break
// space before AM/PM.
var hoursSpaceReplacer = strings.NewReplacer(
	"\u2009", " ",
	"\u202f", " ",
	"\u00a0", " ",
)

// parsedHours is one weekday_text line in record form.
type parsedHours struct {
	Day         int
	OpeningTime venue.ClockTime
	ClosingTime venue.ClockTime
}

// hasHoursRange reports whether line carries an en-dash time range at all.
// Lines without one ("Sunday: Closed", "Saturday: Open 24 hours") are never
// turned into records.
func hasHoursRange(line string) bool {
	return strings.Contains(hoursSpaceReplacer.Replace(line), hoursRangeSeparator)
}

// parseHoursLine parses "Monday: 9:00 AM – 5:00 PM". Either side may read
// "Closed", which leaves that time absent. The day comes from position or
// from the label depending on mode.
func parseHoursLine(line string, position int, mode config.DayIndexMode) (parsedHours, error) {
	normalized := hoursSpaceReplacer.Replace(line)

	parts := strings.Split(normalized, hoursLabelSeparator)
	if len(parts) != 2 {
		return parsedHours{}, &HoursParseError{Line: line, Position: position, Reason: "expected one day label"}
	}
	label, timeRange := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	sides := strings.Split(timeRange, hoursRangeSeparator)
	if len(sides) != 2 {
		return parsedHours{}, &HoursParseError{Line: line, Position: position, Reason: "expected a single time range"}
	}

	opening, err := parseClock(sides[0])
	if err != nil {
		return parsedHours{}, &HoursParseError{Line: line, Position: position, Reason: "bad opening time"}
	}
	closing, err := parseClock(sides[1])
	if err != nil {
		return parsedHours{}, &HoursParseError{Line: line, Position: position, Reason: "bad closing time"}
	}

	day := position
	if mode == config.DayIndexWeekday {
		d, ok := weekdayIndex[strings.ToLower(label)]
		if !ok {
			return parsedHours{}, &HoursParseError{Line: line, Position: position, Reason: "unknown weekday"}
		}
		day = d
	}

	return parsedHours{Day: day, OpeningTime: opening, ClosingTime: closing}, nil
}

func parseClock(s string) (venue.ClockTime, error) {
	s = strings.TrimSpace(s)
	if s == hoursClosed {
		return venue.ClockTime{}, nil
	}
	t, err := time.Parse(hoursClockLayout, strings.ToUpper(s))
	if err != nil {
		return venue.ClockTime{}, err
	}
	return venue.ClockTimeOf(t), nil
}
