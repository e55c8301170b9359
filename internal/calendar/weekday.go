package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// WeekDay is one of the seven weekday slots. The calendar constructs exactly
// seven instances per configuration; every Day holds a reference into that
// shared set, never a copy.
type WeekDay struct {
	Value     int // 0 = Monday .. 6 = Sunday, regardless of display rotation
	Name      string
	ShortName string
	Letter    string
	IsOffDay  bool
}

func (w *WeekDay) String() string {
	return w.Name
}

// weekdayKeys are the English weekday names accepted by ParseWeekday.
var weekdayKeys = [7]string{
	"monday", "tuesday", "wednesday", "thursday",
	"friday", "saturday", "sunday",
}

// Countries where the week conventionally starts on Sunday.
var sundayStartCountries = map[string]bool{
	"ag": true, "as": true, "au": true, "bd": true, "br": true, "bs": true,
	"bt": true, "bw": true, "bz": true, "ca": true, "cn": true, "co": true,
	"dm": true, "do": true, "et": true, "gt": true, "gu": true, "hk": true,
	"hn": true, "id": true, "il": true, "in": true, "jm": true, "jp": true,
	"ke": true, "kh": true, "kr": true, "la": true, "mh": true, "mm": true,
	"mo": true, "mt": true, "mx": true, "mz": true, "ni": true, "np": true,
	"pa": true, "pe": true, "ph": true, "pk": true, "pr": true, "pt": true,
	"py": true, "sa": true, "sg": true, "sv": true, "th": true, "tt": true,
	"tw": true, "um": true, "us": true, "ve": true, "vi": true, "ws": true,
	"ye": true, "za": true, "zw": true,
}

// Countries where the week conventionally starts on Saturday.
var saturdayStartCountries = map[string]bool{
	"af": true, "bh": true, "dj": true, "dz": true, "eg": true, "ir": true,
	"iq": true, "jo": true, "kw": true, "ly": true, "om": true, "qa": true,
	"sd": true, "sy": true, "ae": true,
}

// FirstWeekdayForCountry returns the conventional first weekday for an ISO
// 3166-1 alpha-2 country code (case-insensitive). Unknown countries fall
// back to Monday.
func FirstWeekdayForCountry(countryCode string) int {
	cc := strings.ToLower(strings.TrimSpace(countryCode))
	if sundayStartCountries[cc] {
		return 6
	}
	if saturdayStartCountries[cc] {
		return 5
	}
	return 0
}

// ParseWeekday parses a weekday given as an English name or an integer
// string, where 0 = Monday and 6 = Sunday.
func ParseWeekday(value string) (int, error) {
	low := strings.ToLower(strings.TrimSpace(value))
	for i, name := range weekdayKeys {
		if low == name {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(low); err == nil && n >= 0 && n <= 6 {
		return n, nil
	}
	return 0, fmt.Errorf("invalid weekday %q: use a name (monday..sunday) or a number (0=monday .. 6=sunday)", value)
}
