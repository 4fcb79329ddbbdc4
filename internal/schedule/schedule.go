// Package schedule is the weekly schedule document the editor works on. Every
// nested value is owned by Data; Clone produces an independent copy.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/streamcard/internal/timezone"
	"github.com/five82/streamcard/internal/transform"
)

// Structural limits.
const (
	SlotCount          = 3
	MaxEnabledZones    = 3
	MaxEntriesPerDay   = 2
	MaxSocialHandles   = 5
	DefaultOfflineText = "OFFLINE"
	DateLayout         = "2006-01-02"
)

var (
	ErrTooManyTimezones = errors.New("at most 3 timezones can be enabled")
	ErrDayFull          = errors.New("a day holds at most 2 entries")
	ErrTooManyHandles   = errors.New("at most 5 social handles")
	ErrUnknownTimezone  = errors.New("unknown timezone")
	ErrUnknownDay       = errors.New("unknown day")
	ErrUnknownEntry     = errors.New("unknown entry")
	ErrUnknownHandle    = errors.New("unknown social handle")
	ErrUnknownPlatform  = errors.New("unknown platform")
	ErrInvalidTime      = errors.New("time must be HH:MM")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidPosition  = errors.New("position must be left or right")
	ErrInvalidSlot      = errors.New("timezone slot out of range")
)

// Days are the schedule keys, Monday first.
var Days = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayIndex returns the Monday-based index of day, or -1.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// Position is which side of the canvas the schedule column sits on.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// TimezoneSlot is one of the three zone positions on the card.
type TimezoneSlot struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Abbreviation string `json:"abbreviation"`
	Enabled      bool   `json:"enabled"`
}

// Data is the whole schedule document.
type Data struct {
	StartDate             string               `json:"startDate"`
	EndDate               string               `json:"endDate"`
	Timezones             []TimezoneSlot       `json:"timezones"`
	ArtistName            string               `json:"artistName"`
	ShowArtist            bool                 `json:"showArtist"`
	SocialMediaHandles    []Handle             `json:"socialMediaHandles"`
	ScheduleTitle         string               `json:"scheduleTitle"`
	Schedule              map[string][]Entry   `json:"schedule"`
	BackgroundImage       *string              `json:"backgroundImage"`
	ImageTransform        transform.Image      `json:"imageTransform"`
	BackgroundTransform   transform.Background `json:"backgroundTransform"`
	TransparentBackground bool                 `json:"transparentBackground"`
	SchedulePosition      Position             `json:"schedulePosition"`
}

// Defaults is the document a first run starts from. Dates are left empty; the
// loader fills in the current week.
func Defaults() Data {
	return Data{
		Timezones: []TimezoneSlot{
			slotFor("est", true),
			slotFor("cest", true),
			slotFor("jst", true),
		},
		ArtistName: "artist name",
		ShowArtist: true,
		SocialMediaHandles: []Handle{
			{ID: "1", Platform: PlatformYouTube, Handle: "@username"},
			{ID: "2", Platform: PlatformTwitch, Handle: "@username"},
			{ID: "3", Platform: PlatformTwitter, Handle: "@username"},
		},
		ScheduleTitle:       "SCHEDULE",
		Schedule:            map[string][]Entry{},
		ImageTransform:      transform.DefaultImage(),
		BackgroundTransform: transform.DefaultBackground(),
		SchedulePosition:    PositionRight,
	}
}

func slotFor(id string, enabled bool) TimezoneSlot {
	z, _ := timezone.Lookup(id)
	return TimezoneSlot{ID: z.ID, Label: z.Label, Abbreviation: z.Abbreviation, Enabled: enabled}
}

// CurrentWeek returns the Sunday-start week containing today.
func CurrentWeek(today time.Time) (start, end string) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	first := day.AddDate(0, 0, -int(today.Weekday()))
	return first.Format(DateLayout), first.AddDate(0, 0, 6).Format(DateLayout)
}

// SetStartDate sets the week start and derives the end six days later.
func (d *Data) SetStartDate(iso string) error {
	start, err := time.Parse(DateLayout, strings.TrimSpace(iso))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	d.StartDate = start.Format(DateLayout)
	d.EndDate = start.AddDate(0, 0, 6).Format(DateLayout)
	return nil
}

// SetPosition moves the schedule column.
func (d *Data) SetPosition(p Position) error {
	if p != PositionLeft && p != PositionRight {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, p)
	}
	d.SchedulePosition = p
	return nil
}

// HasImage reports whether an image is loaded.
func (d *Data) HasImage() bool {
	return d.BackgroundImage != nil && *d.BackgroundImage != ""
}

// SetImage installs a freshly uploaded image and resets the foreground
// transform.
func (d *Data) SetImage(dataURI string) {
	d.BackgroundImage = &dataURI
	d.ImageTransform = transform.DefaultImage()
}

// RestoreImage puts back a previously saved image without touching transforms.
func (d *Data) RestoreImage(dataURI string) {
	d.BackgroundImage = &dataURI
}

// ClearImage removes the image and resets both transforms.
func (d *Data) ClearImage() {
	d.BackgroundImage = nil
	d.ImageTransform = transform.DefaultImage()
	d.BackgroundTransform = transform.DefaultBackground()
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := d
	out.Timezones = append([]TimezoneSlot(nil), d.Timezones...)
	out.SocialMediaHandles = append([]Handle(nil), d.SocialMediaHandles...)
	out.Schedule = make(map[string][]Entry, len(d.Schedule))
	for day, entries := range d.Schedule {
		out.Schedule[day] = append([]Entry(nil), entries...)
	}
	if d.BackgroundImage != nil {
		img := *d.BackgroundImage
		out.BackgroundImage = &img
	}
	return out
}

// uniqueID keeps id unless it is blank or already taken, in which case a
// fresh one is issued.
func uniqueID(id string, seen map[string]bool) string {
	if strings.TrimSpace(id) == "" || seen[id] {
		id = newID()
	}
	seen[id] = true
	return id
}

// repairClock pads legacy times such as "9:5" to HH:MM. Anything else that
// does not parse is returned unchanged.
func repairClock(clock string) string {
	if h, m, err := timezone.ParseClock(clock); err == nil {
		return timezone.FormatClock(h, m)
	}
	hh, mm, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || len(mm) != 1 {
		return clock
	}
	h, m, err := timezone.ParseClock(hh + ":0" + mm)
	if err != nil {
		return clock
	}
	return timezone.FormatClock(h, m)
}

// Normalize clamps a loaded document back into the structural limits. Excess
// entries, handles and enabled zones are dropped in order.
func (d *Data) Normalize() {
	defaults := Defaults()

	for len(d.Timezones) < SlotCount {
		d.Timezones = append(d.Timezones, defaults.Timezones[len(d.Timezones)])
	}
	d.Timezones = d.Timezones[:SlotCount]
	enabled := 0
	for i := range d.Timezones {
		if z, ok := timezone.Lookup(d.Timezones[i].ID); ok {
			d.Timezones[i].ID, d.Timezones[i].Label, d.Timezones[i].Abbreviation = z.ID, z.Label, z.Abbreviation
		}
		if d.Timezones[i].Enabled {
			enabled++
			if enabled > MaxEnabledZones {
				d.Timezones[i].Enabled = false
			}
		}
	}

	if len(d.SocialMediaHandles) > MaxSocialHandles {
		d.SocialMediaHandles = d.SocialMediaHandles[:MaxSocialHandles]
	}
	seen := map[string]bool{}
	entryIDs := map[string]bool{}
	for i := range d.SocialMediaHandles {
		d.SocialMediaHandles[i].ID = uniqueID(d.SocialMediaHandles[i].ID, seen)
	}
	if d.Schedule == nil {
		d.Schedule = map[string][]Entry{}
	}
	for day, entries := range d.Schedule {
		if DayIndex(day) < 0 {
			delete(d.Schedule, day)
			continue
		}
		if len(entries) > MaxEntriesPerDay {
			d.Schedule[day] = entries[:MaxEntriesPerDay]
		}
		for i := range d.Schedule[day] {
			e := &d.Schedule[day][i]
			e.ID = uniqueID(e.ID, entryIDs)
			e.Time = repairClock(e.Time)
		}
	}

	if d.SchedulePosition != PositionLeft {
		d.SchedulePosition = PositionRight
	}
	d.ImageTransform = d.ImageTransform.Clamp()
	d.BackgroundTransform = d.BackgroundTransform.Clamp()
}
