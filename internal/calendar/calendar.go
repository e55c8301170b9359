// Package calendar computes the year/month/day model a planner template is
// rendered against: localized month and weekday names, a configurable first
// weekday, per-month table grids, and off-day defaults with optional
// provider-supplied overrides.
//
// All entities are immutable after construction and valid for exactly one
// render invocation; nothing is cached across invocations.
package calendar

import (
	"fmt"
	"iter"
	"log"
	"strconv"
	"time"

	"github.com/klabast/wb-services/planer/internal/dayinfo"
)

// Supported year range. Date ids are formatted as "YYYY-MM-DD", so years
// must stay within four digits.
const (
	MinYear = 1
	MaxYear = 9999
)

// Config carries every knob of a Calendar. Settings are threaded explicitly
// through construction so that concurrent calendars with different settings
// cannot interfere.
type Config struct {
	FirstWeekday int    // 0 = Monday .. 6 = Sunday
	Lang         string // language code, e.g. "en"
	Provider     dayinfo.Provider
	Strict       bool // fail on an unknown language instead of falling back
}

// Calendar is the stateless factory for Year instances.
type Calendar struct {
	FirstWeekday int
	Lang         string // resolved language code, after fallback

	all      [7]*WeekDay // canonical order, Monday first
	provider dayinfo.Provider
}

// New builds a Calendar from cfg. An unknown language falls back to
// DefaultLang with a logged warning unless cfg.Strict is set.
func New(cfg Config) (*Calendar, error) {
	if cfg.FirstWeekday < 0 || cfg.FirstWeekday > 6 {
		return nil, fmt.Errorf("calendar: first weekday %d out of range 0..6", cfg.FirstWeekday)
	}

	lang := cfg.Lang
	if lang == "" {
		lang = DefaultLang
	}
	table, ok := locales[lang]
	if !ok {
		if cfg.Strict {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, cfg.Lang)
		}
		log.Printf("No localization table for %q, falling back to %q", lang, DefaultLang)
		lang = DefaultLang
		table = locales[DefaultLang]
	}

	c := &Calendar{
		FirstWeekday: cfg.FirstWeekday,
		Lang:         lang,
		provider:     cfg.Provider,
	}
	for i := 0; i < 7; i++ {
		c.all[i] = &WeekDay{
			Value:     i,
			Name:      table.weekdayNames[i],
			ShortName: table.weekdayShort[i],
			Letter:    table.weekdayLetters[i],
			IsOffDay:  i == 5 || i == 6, // Saturday, Sunday
		}
	}
	return c, nil
}

// Weekdays returns the seven weekdays rotated so that the configured first
// weekday comes first.
func (c *Calendar) Weekdays() []*WeekDay {
	rotated := make([]*WeekDay, 7)
	for i := 0; i < 7; i++ {
		rotated[i] = c.all[(c.FirstWeekday+i)%7]
	}
	return rotated
}

// ValidateYear checks that value is inside the supported year range.
func ValidateYear(value int) error {
	if value < MinYear || value > MaxYear {
		return fmt.Errorf("%w: year %d (supported range %d..%d)", ErrInvalidDate, value, MinYear, MaxYear)
	}
	return nil
}

// IsLeap reports whether year is a leap year under the Gregorian rule.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Year builds the full calendar year. When the calendar was configured with
// a day-info provider it is queried for supplementary day information
// (holidays, transferred workdays); a provider failure is logged and the
// year falls back to the weekend-only off-day rule.
func (c *Calendar) Year(value int) (*Year, error) {
	if err := ValidateYear(value); err != nil {
		return nil, err
	}

	var overrides map[string]dayinfo.DayInfo
	if c.provider != nil {
		info, err := c.provider.FetchDayInfo(value)
		if err != nil {
			log.Printf("Day-info provider failed for %d: %v (continuing with weekend-only off days)", value, err)
		} else {
			overrides = info
		}
	}

	table := locales[c.Lang]
	year := &Year{
		Value:  value,
		IsLeap: IsLeap(value),
		ID:     strconv.Itoa(value),
		Months: make([]*Month, 0, 12),
	}

	for m := 1; m <= 12; m++ {
		count := daysInMonth(value, m)
		month := &Month{
			Value:     m,
			Name:      table.monthNames[m-1],
			ShortName: table.monthShort[m-1],
			ID:        fmt.Sprintf("%d-%02d", value, m),
			Days:      make([]*Day, 0, count),
		}
		for d := 1; d <= count; d++ {
			day := &Day{
				Value:   d,
				WeekDay: c.all[weekdayOf(value, m, d)],
				ID:      fmt.Sprintf("%d-%02d-%02d", value, m, d),
			}
			if info, ok := overrides[day.ID]; ok {
				day.Info = info
			}
			month.Days = append(month.Days, day)
		}
		month.Table = c.monthTable(month.Days)
		year.Months = append(year.Months, month)
	}
	return year, nil
}

// monthTable lays the days of one month out as week rows of exactly seven
// slots, columns in the rotated weekday order, nil marking slots outside the
// month.
func (c *Calendar) monthTable(days []*Day) [][]*Day {
	offset := (days[0].WeekDay.Value - c.FirstWeekday + 7) % 7
	total := offset + len(days)
	rows := (total + 6) / 7

	table := make([][]*Day, rows)
	for r := range table {
		table[r] = make([]*Day, 7)
		for col := 0; col < 7; col++ {
			idx := r*7 + col - offset
			if idx >= 0 && idx < len(days) {
				table[r][col] = days[idx]
			}
		}
	}
	return table
}

// weekdayOf returns the canonical weekday (0 = Monday) of a date in the
// proleptic Gregorian calendar.
func weekdayOf(year, month, day int) int {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	return (int(t.Weekday()) + 6) % 7
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Year represents one calendar year.
type Year struct {
	Value  int
	IsLeap bool
	ID     string // "YYYY"
	Months []*Month
}

func (y *Year) String() string {
	return y.ID
}

// Days returns a lazy, restartable iterator over every day of the year in
// calendar order (365 or 366 items).
func (y *Year) Days() iter.Seq[*Day] {
	return func(yield func(*Day) bool) {
		for _, m := range y.Months {
			for _, d := range m.Days {
				if !yield(d) {
					return
				}
			}
		}
	}
}

// Month is one calendar month, owned by its Year.
type Month struct {
	Value     int // 1..12
	Name      string
	ShortName string
	ID        string   // "YYYY-MM"
	Days      []*Day   // 28..31 entries
	Table     [][]*Day // week rows of exactly 7 slots, nil = empty
}

func (m *Month) String() string {
	return m.Name
}

// Day is one calendar date, owned by its Month.
type Day struct {
	Value   int // 1..31
	WeekDay *WeekDay
	ID      string // "YYYY-MM-DD"
	Info    dayinfo.DayInfo
}

// String renders the day number. A nil receiver (an empty table slot)
// renders as the empty string so templates cannot print "<nil>".
func (d *Day) String() string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(d.Value)
}

// IsOffDay reports whether the day is off: a provider override wins,
// otherwise the weekday default applies.
func (d *Day) IsOffDay() bool {
	if d.Info.IsOffDay != nil {
		return *d.Info.IsOffDay
	}
	return d.WeekDay.IsOffDay
}
