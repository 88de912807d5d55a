package entity

import (
	"fmt"
	"regexp"
	"slices"

	"tastelocal/internal/document"
)

// Weekdays lists the seven day names an hours table must cover, in order.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// BusinessHours is the opening window for one day of the week.
type BusinessHours struct {
	Day    string `json:"day" firestore:"day"`
	Open   string `json:"open" firestore:"open"`   // HH:MM
	Close  string `json:"close" firestore:"close"` // HH:MM
	Closed bool   `json:"closed" firestore:"closed"`
}

// Document encodes the entry.
func (h BusinessHours) Document() document.Map {
	return document.Map{
		"day":    h.Day,
		"open":   h.Open,
		"close":  h.Close,
		"closed": h.Closed,
	}
}

// DefaultHours is the table a new business starts with.
func DefaultHours() []BusinessHours {
	return []BusinessHours{
		{Day: "Monday", Open: "10:00", Close: "22:00"},
		{Day: "Tuesday", Open: "10:00", Close: "22:00"},
		{Day: "Wednesday", Open: "10:00", Close: "22:00"},
		{Day: "Thursday", Open: "10:00", Close: "22:00"},
		{Day: "Friday", Open: "10:00", Close: "23:00"},
		{Day: "Saturday", Open: "10:00", Close: "23:00"},
		{Day: "Sunday", Open: "12:00", Close: "20:00"},
	}
}

// CompleteWeek returns a table with exactly one entry per weekday. A table that
// already has that shape is returned as is. Otherwise entries for unknown or
// repeated days are dropped, the first entry of each day is kept, missing days
// come from DefaultHours, and the result is in weekday order.
func CompleteWeek(hours []BusinessHours) []BusinessHours {
	byDay := make(map[string]BusinessHours, len(Weekdays))
	for _, h := range hours {
		if !slices.Contains(Weekdays[:], h.Day) {
			continue
		}
		if _, ok := byDay[h.Day]; !ok {
			byDay[h.Day] = h
		}
	}
	if len(hours) == len(Weekdays) && len(byDay) == len(Weekdays) {
		return hours
	}

	defaults := DefaultHours()
	out := make([]BusinessHours, len(Weekdays))
	for i, day := range Weekdays {
		if h, ok := byDay[day]; ok {
			out[i] = h
		} else {
			out[i] = defaults[i]
		}
	}

	return out
}

// ValidateWeek checks that hours holds exactly one entry for each of the seven
// weekdays and that open days carry HH:MM times.
func ValidateWeek(hours []BusinessHours) error {
	if len(hours) != len(Weekdays) {
		return fmt.Errorf("expected %d days, got %d", len(Weekdays), len(hours))
	}

	seen := make(map[string]bool, len(hours))
	for _, h := range hours {
		if !slices.Contains(Weekdays[:], h.Day) {
			return fmt.Errorf("unknown day %q", h.Day)
		}
		if seen[h.Day] {
			return fmt.Errorf("duplicate day %q", h.Day)
		}
		seen[h.Day] = true

		if h.Closed {
			continue
		}
		if !timeOfDay.MatchString(h.Open) || !timeOfDay.MatchString(h.Close) {
			return fmt.Errorf("invalid time range %q-%q for %s", h.Open, h.Close, h.Day)
		}
	}

	return nil
}
