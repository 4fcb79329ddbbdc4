package schedule

import (
	"fmt"

	"github.com/five82/streamcard/internal/timezone"
)

// EnabledTimezones returns the enabled slots in display order. The first one
// is the zone entry times are written in.
func (d *Data) EnabledTimezones() []TimezoneSlot {
	var out []TimezoneSlot
	for _, tz := range d.Timezones {
		if tz.Enabled {
			out = append(out, tz)
		}
	}
	return out
}

// ReferenceZone returns the zone entry times are authored in.
func (d *Data) ReferenceZone() (TimezoneSlot, bool) {
	enabled := d.EnabledTimezones()
	if len(enabled) == 0 {
		return TimezoneSlot{}, false
	}
	return enabled[0], true
}

// ToggleTimezone flips the enabled flag of a slot.
func (d *Data) ToggleTimezone(slot int) error {
	if slot < 0 || slot >= len(d.Timezones) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if !d.Timezones[slot].Enabled && len(d.EnabledTimezones()) >= MaxEnabledZones {
		return ErrTooManyTimezones
	}
	d.Timezones[slot].Enabled = !d.Timezones[slot].Enabled
	return nil
}

// SetTimezone reassigns a slot to another catalog zone, keeping its enabled
// flag.
func (d *Data) SetTimezone(slot int, id string) error {
	if slot < 0 || slot >= len(d.Timezones) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	z, ok := timezone.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTimezone, id)
	}
	enabled := d.Timezones[slot].Enabled
	d.Timezones[slot] = TimezoneSlot{ID: z.ID, Label: z.Label, Abbreviation: z.Abbreviation, Enabled: enabled}
	return nil
}
