package schedule

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/streamcard/internal/timezone"
)

// EntryType is what happens in a slot.
type EntryType string

const (
	EntryStream  EntryType = "stream"
	EntryOffline EntryType = "offline"
)

// Tags are the optional chips drawn under a stream card.
type Tags struct {
	Collab       bool   `json:"collab"`
	Announcement bool   `json:"announcement"`
	Custom       bool   `json:"custom"`
	CustomText   string `json:"customText"`
}

// Entry is one scheduled block. Time is HH:MM in the first enabled zone.
type Entry struct {
	ID          string    `json:"id"`
	Time        string    `json:"time"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Type        EntryType `json:"type"`
	MemberOnly  bool      `json:"memberOnly"`
	Tags        Tags      `json:"tags"`
	OfflineText string    `json:"offlineText,omitempty"`
}

// IsOffline reports whether the entry renders as an offline card.
func (e Entry) IsOffline() bool {
	return e.Type == EntryOffline
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Entries returns a copy of the entries for day.
func (d *Data) Entries(day string) []Entry {
	return append([]Entry(nil), d.Schedule[day]...)
}

// AddEntry appends a default stream entry to day.
func (d *Data) AddEntry(day string) (Entry, error) {
	if DayIndex(day) < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	if len(d.Schedule[day]) >= MaxEntriesPerDay {
		return Entry{}, ErrDayFull
	}
	entry := Entry{
		ID:       newID(),
		Time:     "09:00",
		Title:    "Stream title Here",
		Subtitle: "Description here",
		Type:     EntryStream,
	}
	if d.Schedule == nil {
		d.Schedule = map[string][]Entry{}
	}
	d.Schedule[day] = append(d.Schedule[day], entry)
	return entry, nil
}

// RemoveEntry deletes an entry from day.
func (d *Data) RemoveEntry(day, id string) error {
	idx, err := d.entryIndex(day, id)
	if err != nil {
		return err
	}
	entries := d.Schedule[day]
	d.Schedule[day] = append(entries[:idx:idx], entries[idx+1:]...)
	return nil
}

// UpdateEntry applies fn to an entry in place. Use SetEntryTime and
// SetEntryType for the validated fields.
func (d *Data) UpdateEntry(day, id string, fn func(*Entry)) error {
	idx, err := d.entryIndex(day, id)
	if err != nil {
		return err
	}
	fn(&d.Schedule[day][idx])
	return nil
}

// SetEntryTime stores a validated HH:MM time.
func (d *Data) SetEntryTime(day, id, clock string) error {
	hour, minute, err := timezone.ParseClock(clock)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return d.UpdateEntry(day, id, func(e *Entry) {
		e.Time = timezone.FormatClock(hour, minute)
	})
}

// SetEntryType switches between stream and offline. Going offline fills in the
// default banner text; going back to stream drops it.
func (d *Data) SetEntryType(day, id string, t EntryType) error {
	if t != EntryStream && t != EntryOffline {
		return fmt.Errorf("unknown entry type %q", t)
	}
	return d.UpdateEntry(day, id, func(e *Entry) {
		e.Type = t
		switch t {
		case EntryOffline:
			if strings.TrimSpace(e.OfflineText) == "" {
				e.OfflineText = DefaultOfflineText
			}
		case EntryStream:
			e.OfflineText = ""
		}
	})
}

func (d *Data) entryIndex(day, id string) (int, error) {
	if DayIndex(day) < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	for i, e := range d.Schedule[day] {
		if e.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s on %s", ErrUnknownEntry, id, day)
}
