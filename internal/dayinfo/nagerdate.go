package dayinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const nagerDateBaseURL = "https://date.nager.at/api/v3"

// NagerDate is a Provider backed by the Nager.Date public-holiday API.
//
// Covers 100+ countries (ISO 3166-1 alpha-2 codes). Unlike isdayoff.ru this
// source only knows about public holidays - it cannot tell whether a weekend
// day has been transferred to a workday. Free, no API key required.
// https://date.nager.at
type NagerDate struct {
	countryCode string
	baseURL     string
	client      *http.Client
}

// NewNagerDate constructs a NagerDate provider for countryCode.
func NewNagerDate(countryCode string) (*NagerDate, error) {
	cc := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(cc) != 2 {
		return nil, fmt.Errorf("nagerdate: invalid country code %q (want ISO 3166-1 alpha-2)", countryCode)
	}
	return &NagerDate{
		countryCode: cc,
		baseURL:     nagerDateBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// FetchDayInfo fetches the public holidays of year. Every returned date is
// reported as an off day.
func (p *NagerDate) FetchDayInfo(year int) (map[string]DayInfo, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", p.baseURL, year, p.countryCode)
	resp, err := p.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("nagerdate: fetching %d/%s: %w", year, p.countryCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nagerdate: unexpected status %s for %d/%s", resp.Status, year, p.countryCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nagerdate: reading response for %d/%s: %w", year, p.countryCode, err)
	}

	var holidays []struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(body, &holidays); err != nil {
		return nil, fmt.Errorf("nagerdate: invalid JSON for %d/%s: %w", year, p.countryCode, err)
	}

	result := make(map[string]DayInfo, len(holidays))
	for _, h := range holidays {
		if h.Date != "" {
			result[h.Date] = Mark(true)
		}
	}
	return result, nil
}
