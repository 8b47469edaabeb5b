package models

import "strings"

// Event is one calendar entry. Its date is the key it is filed under.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EventsDocument maps a date string to the events on that date, in the
// order they were added.
type EventsDocument map[string][]Event

// Holidays are year-independent, keyed by MM-DD
var Holidays = map[string]string{
	"01-01": "New Year's Day",
	"02-25": "EDSA People Power Revolution",
	"04-17": "Maundy Thursday",
	"04-18": "Good Friday",
	"04-19": "Black Saturday",
	"05-01": "Labor Day",
	"06-12": "Independence Day",
	"08-21": "Ninoy Aquino Day",
	"08-25": "National Heroes Day",
	"11-30": "Bonifacio Day",
	"12-25": "Christmas Day",
	"12-30": "Rizal Day",
}

// HolidayFor returns the holiday falling on a YYYY-MM-DD date, if any.
func HolidayFor(date string) (string, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 5 {
		return "", false
	}
	name, ok := Holidays[date[len(date)-5:]]
	return name, ok
}
