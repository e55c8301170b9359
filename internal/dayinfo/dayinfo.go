// Package dayinfo supplies supplementary per-date information (public
// holidays, transferred workdays) used to override the default weekend
// off-day rule. Overrides are keyed by date id ("YYYY-MM-DD") and resolved
// before the calendar entities are built, never patched in afterwards.
package dayinfo

import (
	"fmt"
	"sort"
)

// DayInfo holds supplementary information about one calendar day. A nil
// field means "no data - fall back to the default calendar logic".
type DayInfo struct {
	IsOffDay *bool
}

// Mark returns a DayInfo that overrides the off-day state of a date.
func Mark(off bool) DayInfo {
	return DayInfo{IsOffDay: &off}
}

// Provider fetches day information for a whole year at once.
//
// Implementations return a map keyed by date id ("YYYY-MM-DD"). Missing keys
// mean "no extra info". A non-nil error signals that the data source is
// unreachable or returned an unusable response; callers are expected to warn
// and continue with the default weekend-only policy.
type Provider interface {
	FetchDayInfo(year int) (map[string]DayInfo, error)
}

// Provider names accepted by New.
const (
	ProviderNagerDate = "nagerdate"
	ProviderIsDayOff  = "isdayoff"
	ProviderGerman    = "german"
	ProviderNone      = "none"
)

// New constructs a named provider for the given ISO 3166-1 alpha-2 country
// code. The name "none" (or an empty name) yields a nil provider.
func New(name, countryCode string) (Provider, error) {
	switch name {
	case "", ProviderNone:
		return nil, nil
	case ProviderNagerDate:
		return NewNagerDate(countryCode)
	case ProviderIsDayOff:
		return NewIsDayOff(countryCode)
	case ProviderGerman:
		return NewGerman(countryCode)
	}
	return nil, fmt.Errorf("unknown day-info provider %q (available: %s)", name, providerList())
}

func providerList() string {
	names := []string{ProviderNagerDate, ProviderIsDayOff, ProviderGerman, ProviderNone}
	sort.Strings(names)
	s := ""
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}

// isLeap reports whether year is a leap year under the Gregorian rule.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysIn returns the number of days in the given month of year.
func daysIn(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if isLeap(year) {
		return 29
	}
	return 28
}
