// Package timezone holds the fixed timezone catalog and converts schedule
// clock times between its zones.
package timezone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned when a clock string is not HH:MM.
var ErrInvalidClock = errors.New("invalid clock time")

// Zone is a catalog entry. Offset is whole hours from UTC.
type Zone struct {
	ID           string
	Label        string
	Abbreviation string
	Offset       int
}

// Offsets are fixed and ignore daylight saving; EST is -4 on purpose so
// existing schedules keep rendering the same badges.
var catalog = []Zone{
	{ID: "pst", Label: "Pacific Standard Time", Abbreviation: "PST", Offset: -8},
	{ID: "pdt", Label: "Pacific Daylight Time", Abbreviation: "PDT", Offset: -7},
	{ID: "cst", Label: "Central Standard Time", Abbreviation: "CST", Offset: -6},
	{ID: "est", Label: "Eastern Standard Time", Abbreviation: "EST", Offset: -4},
	{ID: "gmt", Label: "Greenwich Mean Time", Abbreviation: "GMT", Offset: 0},
	{ID: "cet", Label: "Central European Time", Abbreviation: "CET", Offset: 1},
	{ID: "cest", Label: "Central European Summer Time", Abbreviation: "CEST", Offset: 2},
	{ID: "wib", Label: "Western Indonesia Time", Abbreviation: "WIB", Offset: 7},
	{ID: "jst", Label: "Japan Standard Time", Abbreviation: "JST", Offset: 9},
	{ID: "aest", Label: "Australian Eastern Standard Time", Abbreviation: "AEST", Offset: 10},
}

// All returns the catalog in display order.
func All() []Zone {
	out := make([]Zone, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a zone by id, ignoring case.
func Lookup(id string) (Zone, bool) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, z := range catalog {
		if z.ID == key {
			return z, true
		}
	}
	return Zone{}, false
}

// Offset returns the UTC offset for id. Unknown ids are treated as UTC.
func Offset(id string) int {
	z, ok := Lookup(id)
	if !ok {
		return 0
	}
	return z.Offset
}

// Next returns the zone after id in the catalog, wrapping in either direction.
func Next(id string, dir int) Zone {
	idx := 0
	key := strings.ToLower(strings.TrimSpace(id))
	for i, z := range catalog {
		if z.ID == key {
			idx = i
			break
		}
	}
	n := len(catalog)
	return catalog[((idx+dir)%n+n)%n]
}

// Converted is a clock time shifted into another zone.
type Converted struct {
	Time    string
	DayDiff int // -1 previous day, 0 same day, +1 next day
}

// Convert shifts an HH:MM clock time from one zone to another. Catalog offsets
// are bounded so a single day wrap is enough.
func Convert(clock, fromID, toID string) (Converted, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return Converted{}, err
	}

	hour += Offset(toID) - Offset(fromID)
	dayDiff := 0
	switch {
	case hour < 0:
		hour += 24
		dayDiff = -1
	case hour >= 24:
		hour -= 24
		dayDiff = 1
	}

	return Converted{Time: FormatClock(hour, minute), DayDiff: dayDiff}, nil
}

var dayLetters = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// DayLetter returns the weekday letter a converted time lands on, or "" when it
// stays on dayIndex (0 = Monday).
func DayLetter(dayIndex, dayDiff int) string {
	if dayDiff == 0 {
		return ""
	}
	return dayLetters[((dayIndex+dayDiff)%7+7)%7]
}

// ParseClock splits a 24h HH:MM string.
func ParseClock(clock string) (int, int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return hour, minute, nil
}

// FormatClock renders a zero padded HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
