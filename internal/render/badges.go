package render

import (
	"strings"

	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/timezone"
)

// Badge is one time chip on a stream card.
type Badge struct {
	Label     string
	DayLetter string
	ColorSlot int
}

// TimeBadges builds one badge per enabled slot. Slot 0 shows the stored time;
// the rest are converted from slot 0's zone.
func TimeBadges(e schedule.Entry, dayIndex int, slots []schedule.TimezoneSlot, paletteLen int) []Badge {
	if len(slots) == 0 {
		return nil
	}
	ref := slots[0].ID
	out := make([]Badge, 0, len(slots))
	for i, tz := range slots {
		clock, dayDiff := e.Time, 0
		if i > 0 {
			if c, err := timezone.Convert(e.Time, ref, tz.ID); err == nil {
				clock, dayDiff = c.Time, c.DayDiff
			}
		}
		slot := 0
		if paletteLen > 0 {
			slot = i % paletteLen
		}
		out = append(out, Badge{
			Label:     Format12h(clock) + " (" + strings.ToUpper(tz.Abbreviation) + ")",
			DayLetter: timezone.DayLetter(dayIndex, dayDiff),
			ColorSlot: slot,
		})
	}
	return out
}
