package dayinfo

import (
	"fmt"
	"strings"
	"time"
)

// German is an offline Provider for German public holidays (federal holidays
// plus the NRW church holidays). No network access is needed; the movable
// feasts are derived from the Easter date.
type German struct{}

// NewGerman constructs the offline German holiday provider. Only the country
// code "de" is accepted.
func NewGerman(countryCode string) (*German, error) {
	if strings.ToLower(strings.TrimSpace(countryCode)) != "de" {
		return nil, fmt.Errorf("german: country code %q is not supported (want \"de\")", countryCode)
	}
	return &German{}, nil
}

// FetchDayInfo returns every German public holiday of year as an off day.
func (p *German) FetchDayInfo(year int) (map[string]DayInfo, error) {
	result := make(map[string]DayInfo, 11)
	mark := func(id string) { result[id] = Mark(true) }

	// Fixed holidays
	mark(formatDate(year, 1, 1))   // Neujahr
	mark(formatDate(year, 5, 1))   // Tag der Arbeit
	mark(formatDate(year, 10, 3))  // Tag der Deutschen Einheit
	mark(formatDate(year, 11, 1))  // Allerheiligen
	mark(formatDate(year, 12, 25)) // 1. Weihnachtstag
	mark(formatDate(year, 12, 26)) // 2. Weihnachtstag

	// Easter-based holidays (movable)
	easter := calculateEaster(year)
	mark(formatDateFromTime(easter.AddDate(0, 0, -2))) // Karfreitag
	mark(formatDateFromTime(easter.AddDate(0, 0, 1)))  // Ostermontag
	mark(formatDateFromTime(easter.AddDate(0, 0, 39))) // Christi Himmelfahrt
	mark(formatDateFromTime(easter.AddDate(0, 0, 50))) // Pfingstmontag
	mark(formatDateFromTime(easter.AddDate(0, 0, 60))) // Fronleichnam

	return result, nil
}

// calculateEaster calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func calculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	// Use noon to avoid timezone issues when formatting to YYYY-MM-DD
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year, month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, month, day)
}

// formatDateFromTime formats a time.Time as YYYY-MM-DD
func formatDateFromTime(t time.Time) string {
	return t.Format("2006-01-02")
}
