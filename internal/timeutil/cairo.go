package timeutil

import (
	"time"
)

// Cairo is the shop's local timezone (UTC+2, no DST since 2023 reintroduction
// is handled by the tzdata entry).
var Cairo *time.Location

func init() {
	var err error
	Cairo, err = time.LoadLocation("Africa/Cairo")
	if err != nil {
		// Fallback: create fixed zone if Africa/Cairo not available
		Cairo = time.FixedZone("EET", 2*60*60) // UTC+2
	}
}

// Now returns the current time in Cairo local time
func Now() time.Time {
	return time.Now().In(Cairo)
}

// ToLocal converts any time to Cairo local time
func ToLocal(t time.Time) time.Time {
	return t.In(Cairo)
}

// ParseDate parses a YYYY-MM-DD string as a Cairo local date
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Cairo)
}

// StartOfDay returns the start of day (00:00:00) in Cairo time for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(Cairo)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Cairo)
}

// EndOfDay returns the end of day (23:59:59) in Cairo time for the given time
func EndOfDay(t time.Time) time.Time {
	local := t.In(Cairo)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, Cairo)
}

// MonthKey returns the year-month bucket key used by the dashboard P&L series
func MonthKey(t time.Time) string {
	return t.In(Cairo).Format("2006-01")
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
