package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-08-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 15 {
		t.Fatalf("wrong date: %v", got)
	}
	if got.Location() != Cairo {
		t.Fatalf("expected Cairo location, got %v", got.Location())
	}

	if _, err := ParseDate("15/08/2026"); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestDayBounds(t *testing.T) {
	base, _ := ParseDate("2026-08-15")
	noon := base.Add(12 * time.Hour)

	start := StartOfDay(noon)
	if start.Hour() != 0 || start.Minute() != 0 || start.Day() != 15 {
		t.Fatalf("wrong start of day: %v", start)
	}

	end := EndOfDay(noon)
	if end.Hour() != 23 || end.Minute() != 59 || end.Day() != 15 {
		t.Fatalf("wrong end of day: %v", end)
	}
	if !end.After(start) {
		t.Fatal("end of day must be after start of day")
	}
}

func TestMonthKey(t *testing.T) {
	// 31 Dec 23:30 UTC is already 1 Jan in Cairo
	utc := time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC)
	if key := MonthKey(utc); key != "2026-01" {
		t.Fatalf("expected 2026-01, got %s", key)
	}
}
