package calendar

import "fmt"

// DefaultLang is the locale used when a requested language has no table.
const DefaultLang = "en"

// Kind selects which localized name table a lookup reads.
type Kind int

const (
	MonthFull Kind = iota
	MonthShort
	WeekdayFull
	WeekdayShort
	WeekdayLetter
)

// localeTable holds every localized name for one language. Weekday entries
// are in canonical order (Monday first), month entries January first.
type localeTable struct {
	weekdayNames   [7]string
	weekdayShort   [7]string
	weekdayLetters [7]string
	monthNames     [12]string
	monthShort     [12]string
}

var locales = map[string]*localeTable{
	"en": {
		weekdayNames: [7]string{
			"Monday", "Tuesday", "Wednesday", "Thursday",
			"Friday", "Saturday", "Sunday",
		},
		weekdayShort:   [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		weekdayLetters: [7]string{"M", "T", "W", "T", "F", "S", "S"},
		monthNames: [12]string{
			"January", "February", "March", "April",
			"May", "June", "July", "August",
			"September", "October", "November", "December",
		},
		monthShort: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
	},
	"de": {
		weekdayNames: [7]string{
			"Montag", "Dienstag", "Mittwoch", "Donnerstag",
			"Freitag", "Samstag", "Sonntag",
		},
		weekdayShort:   [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"},
		weekdayLetters: [7]string{"M", "D", "M", "D", "F", "S", "S"},
		monthNames: [12]string{
			"Januar", "Februar", "März", "April",
			"Mai", "Juni", "Juli", "August",
			"September", "Oktober", "November", "Dezember",
		},
		monthShort: [12]string{
			"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
			"Jul", "Aug", "Sep", "Okt", "Nov", "Dez",
		},
	},
	"ru": {
		weekdayNames: [7]string{
			"Понедельник", "Вторник", "Среда", "Четверг",
			"Пятница", "Суббота", "Воскресенье",
		},
		weekdayShort:   [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"},
		weekdayLetters: [7]string{"П", "В", "С", "Ч", "П", "С", "В"},
		monthNames: [12]string{
			"Январь", "Февраль", "Март", "Апрель",
			"Май", "Июнь", "Июль", "Август",
			"Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
		},
		monthShort: [12]string{
			"Янв", "Фев", "Мар", "Апр", "Май", "Июн",
			"Июл", "Авг", "Сен", "Окт", "Ноя", "Дек",
		},
	},
	"kr": {
		weekdayNames: [7]string{
			"월요일", "화요일", "수요일", "목요일",
			"금요일", "토요일", "일요일",
		},
		weekdayShort:   [7]string{"월", "화", "수", "목", "금", "토", "일"},
		weekdayLetters: [7]string{"월", "화", "수", "목", "금", "토", "일"},
		monthNames: [12]string{
			"1월", "2월", "3월", "4월", "5월", "6월",
			"7월", "8월", "9월", "10월", "11월", "12월",
		},
		monthShort: [12]string{
			"1월", "2월", "3월", "4월", "5월", "6월",
			"7월", "8월", "9월", "10월", "11월", "12월",
		},
	},
}

// SupportedLangs returns the language codes with a localization table.
func SupportedLangs() []string {
	langs := make([]string, 0, len(locales))
	for lang := range locales {
		langs = append(langs, lang)
	}
	return langs
}

// LocalizedName is a pure lookup into the localization tables. The index is
// zero-based (0 = January / Monday). Safe for concurrent use.
func LocalizedName(lang string, kind Kind, index int) (string, error) {
	table, ok := locales[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, lang)
	}
	switch kind {
	case MonthFull, MonthShort:
		if index < 0 || index > 11 {
			return "", fmt.Errorf("calendar: month index %d out of range", index)
		}
		if kind == MonthFull {
			return table.monthNames[index], nil
		}
		return table.monthShort[index], nil
	case WeekdayFull, WeekdayShort, WeekdayLetter:
		if index < 0 || index > 6 {
			return "", fmt.Errorf("calendar: weekday index %d out of range", index)
		}
		switch kind {
		case WeekdayFull:
			return table.weekdayNames[index], nil
		case WeekdayShort:
			return table.weekdayShort[index], nil
		default:
			return table.weekdayLetters[index], nil
		}
	}
	return "", fmt.Errorf("calendar: unknown name kind %d", kind)
}
