package render

import (
	"strconv"

	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/transform"
)

// ImageMode says how the uploaded image is placed.
type ImageMode int

const (
	ImageNone ImageMode = iota
	// ImageForeground draws the image behind the schedule with the affine
	// image transform.
	ImageForeground
	// ImageBackground fills the whole card, sized and positioned by the
	// background transform.
	ImageBackground
)

// ImageLayer is the image placement of a projection.
type ImageLayer struct {
	Mode       ImageMode
	Source     string
	Affine     transform.Affine
	CSS        string
	Background transform.Background
	Size       string
	Position   string
}

// Projection is everything needed to draw the card, derived from a schedule
// and a theme.
type Projection struct {
	Title         string
	DateRange     string
	Days          [7]DayView
	Artist        string
	Handles       []schedule.Handle
	Position      schedule.Position
	ScheduleFirst bool
	Transparent   bool
	Image         ImageLayer
	Theme         Theme
}

// Project derives the card from d. It never mutates d.
func Project(d schedule.Data, theme Theme) Projection {
	p := Projection{
		Title:         d.ScheduleTitle,
		DateRange:     DateRange(d.StartDate, d.EndDate),
		Handles:       d.VisibleHandles(),
		Position:      d.SchedulePosition,
		ScheduleFirst: d.SchedulePosition == schedule.PositionLeft,
		Transparent:   d.TransparentBackground,
		Theme:         theme,
	}
	if d.ShowArtist {
		p.Artist = d.ArtistName
	}

	slots := d.EnabledTimezones()
	dates := WeekDates(d.StartDate)
	for i, name := range schedule.Days {
		date := ""
		if i < len(dates) {
			date = dates[i]
		}
		p.Days[i] = Day(name, i, date, d.Schedule[name], slots, len(theme.TimeBadgeSet))
	}

	if d.HasImage() {
		p.Image.Source = *d.BackgroundImage
		if d.TransparentBackground {
			bg := d.BackgroundTransform
			p.Image.Mode = ImageBackground
			p.Image.Background = bg
			p.Image.Size = strconv.FormatFloat(bg.Scale*100, 'f', -1, 64) + "%"
			p.Image.Position = strconv.FormatFloat(bg.PositionX, 'f', -1, 64) + "% " +
				strconv.FormatFloat(bg.PositionY, 'f', -1, 64) + "%"
		} else {
			p.Image.Mode = ImageForeground
			p.Image.Affine = transform.Compose(d.ImageTransform)
			p.Image.CSS = p.Image.Affine.CSS()
		}
	}
	return p
}
