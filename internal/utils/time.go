package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// PropertyTimezone is the calendar timezone of the property.
const PropertyTimezone = "America/Argentina/Buenos_Aires"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// PropertyLocation resolves the property timezone, falling back to UTC when
// tzdata is unavailable.
func PropertyLocation() *time.Location {
	loc, err := time.LoadLocation(PropertyTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate parses YYYY-MM-DD as a civil date (midnight UTC).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS".
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// Nights counts whole nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}
