package dayinfo

import (
	"testing"
	"time"
)

func TestCalculateEaster(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2027, time.March, 28},
	}

	for _, tt := range tests {
		got := calculateEaster(tt.year)
		if got.Month() != tt.month || got.Day() != tt.day {
			t.Errorf("calculateEaster(%d) = %s, want %d %s", tt.year, got.Format("2006-01-02"), tt.day, tt.month)
		}
	}
}

func TestGermanHolidays(t *testing.T) {
	p, err := NewGerman("de")
	if err != nil {
		t.Fatalf("NewGerman failed: %v", err)
	}

	info, err := p.FetchDayInfo(2025)
	if err != nil {
		t.Fatalf("FetchDayInfo failed: %v", err)
	}

	want := []string{
		"2025-01-01", // Neujahr
		"2025-04-18", // Karfreitag
		"2025-04-21", // Ostermontag
		"2025-05-01", // Tag der Arbeit
		"2025-05-29", // Christi Himmelfahrt
		"2025-06-09", // Pfingstmontag
		"2025-06-19", // Fronleichnam
		"2025-10-03", // Tag der Deutschen Einheit
		"2025-11-01", // Allerheiligen
		"2025-12-25",
		"2025-12-26",
	}

	if len(info) != len(want) {
		t.Errorf("got %d holidays, want %d", len(info), len(want))
	}
	for _, id := range want {
		entry, ok := info[id]
		if !ok {
			t.Errorf("missing holiday %s", id)
			continue
		}
		if entry.IsOffDay == nil || !*entry.IsOffDay {
			t.Errorf("holiday %s is not marked as off", id)
		}
	}
}

func TestNewGermanCountryCheck(t *testing.T) {
	if _, err := NewGerman("DE"); err != nil {
		t.Errorf("NewGerman(DE) failed: %v", err)
	}
	if _, err := NewGerman("fr"); err == nil {
		t.Error("NewGerman(fr) succeeded, want error")
	}
}
