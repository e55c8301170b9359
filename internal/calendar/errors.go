package calendar

import "errors"

// Sentinel errors for calendar construction failures.
var (
	// ErrInvalidDate is returned when a requested year is outside the
	// supported range.
	ErrInvalidDate = errors.New("calendar: date out of supported range")

	// ErrUnsupportedLocale is returned in strict mode when a language code
	// has no localization table.
	ErrUnsupportedLocale = errors.New("calendar: unsupported language code")
)
