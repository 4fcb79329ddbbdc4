package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/timezone"
)

// DayAbbrev labels the day chips, Monday first.
var DayAbbrev = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Format12h renders "HH:MM" as "hh:mm AM". Unparseable input is returned
// unchanged.
func Format12h(clock string) string {
	h, m, err := timezone.ParseClock(clock)
	if err != nil {
		return clock
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h
	switch {
	case h == 0:
		h12 = 12
	case h > 12:
		h12 = h - 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, suffix)
}

// FormatDate renders an ISO date as "JAN 01". Empty input gives "" and
// unparseable input is returned as is.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(schedule.DateLayout, iso)
	if err != nil {
		return iso
	}
	return strings.ToUpper(t.Format("Jan 02"))
}

// DateRange is the header line under the title.
func DateRange(start, end string) string {
	return FormatDate(start) + " - " + FormatDate(end)
}

var fallbackDates = []string{"01", "02", "03", "04", "05", "06", "07"}

// WeekDates returns the two-digit day of month for each day of the week
// starting at start. An empty start yields nil; a bad one the fallback
// sequence.
func WeekDates(start string) []string {
	if start == "" {
		return nil
	}
	t, err := time.Parse(schedule.DateLayout, start)
	if err != nil {
		return append([]string(nil), fallbackDates...)
	}
	out := make([]string, 7)
	for i := range out {
		out[i] = fmt.Sprintf("%02d", t.AddDate(0, 0, i).Day())
	}
	return out
}
