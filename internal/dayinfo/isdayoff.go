package dayinfo

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const isDayOffBaseURL = "https://isdayoff.ru"

// Countries covered by the isdayoff.ru production calendar.
var isDayOffCountries = map[string]bool{
	"ru": true, "ua": true, "by": true, "kz": true,
	"uz": true, "tr": true, "ge": true, "us": true,
}

// IsDayOff is a Provider backed by the isdayoff.ru production-calendar API.
//
// Provides complete workday/off-day data including public holidays and
// transferred workdays, so it can also turn a weekend day into a workday.
// Free, no API key required.
type IsDayOff struct {
	countryCode string
	baseURL     string
	client      *http.Client
}

// NewIsDayOff constructs an IsDayOff provider for countryCode.
func NewIsDayOff(countryCode string) (*IsDayOff, error) {
	cc := strings.ToLower(strings.TrimSpace(countryCode))
	if !isDayOffCountries[cc] {
		return nil, fmt.Errorf("isdayoff: country code %q is not supported by isdayoff.ru", countryCode)
	}
	return &IsDayOff{
		countryCode: cc,
		baseURL:     isDayOffBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// FetchDayInfo fetches the production calendar of year. The API returns one
// character per day of the year: "1" for an off day, "0" for a working day.
func (p *IsDayOff) FetchDayInfo(year int) (map[string]DayInfo, error) {
	url := fmt.Sprintf("%s/api/getdata?year=%d&cc=%s", p.baseURL, year, p.countryCode)
	resp, err := p.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("isdayoff: fetching %d/%s: %w", year, p.countryCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("isdayoff: unexpected status %s for %d/%s", resp.Status, year, p.countryCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("isdayoff: reading response for %d/%s: %w", year, p.countryCode, err)
	}

	data := string(body)
	daysInYear := 365
	if isLeap(year) {
		daysInYear = 366
	}
	if len(data) != daysInYear {
		return nil, fmt.Errorf("isdayoff: unexpected response length %d for %d/%s (want %d)", len(data), year, p.countryCode, daysInYear)
	}

	result := make(map[string]DayInfo, daysInYear)
	idx := 0
	for month := 1; month <= 12; month++ {
		for day := 1; day <= daysIn(year, month); day++ {
			switch data[idx] {
			case '0':
				result[fmt.Sprintf("%d-%02d-%02d", year, month, day)] = Mark(false)
			case '1':
				result[fmt.Sprintf("%d-%02d-%02d", year, month, day)] = Mark(true)
			default:
				return nil, fmt.Errorf("isdayoff: unexpected character %q in response for %d/%s", data[idx], year, p.countryCode)
			}
			idx++
		}
	}
	return result, nil
}
