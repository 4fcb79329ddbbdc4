package render

import (
	"github.com/five82/streamcard/internal/schedule"
)

// Layout is how a day row is drawn, chosen by its entry count.
type Layout int

const (
	LayoutEmpty Layout = iota
	LayoutSingle
	LayoutPair
)

func (l Layout) String() string {
	switch l {
	case LayoutSingle:
		return "single"
	case LayoutPair:
		return "pair"
	default:
		return "empty"
	}
}

// EmptyText is shown on a day without entries.
const EmptyText = "No Activities"

// CardKind distinguishes stream and offline cards.
type CardKind int

const (
	CardStream CardKind = iota
	CardOffline
)

// TagRole picks the theme colour of a tag chip.
type TagRole int

const (
	TagSecondary TagRole = iota
	TagPrimary
	TagTertiary
)

// Tag is a chip under a stream card's subtitle.
type Tag struct {
	Label string
	Role  TagRole
}

// Card is one entry as drawn.
type Card struct {
	Kind        CardKind
	Title       string
	Subtitle    string
	OfflineText string
	MemberOnly  bool
	Tags        []Tag
	Badges      []Badge
}

// DayView is one row of the week.
type DayView struct {
	Name      string
	Index     int
	Abbrev    string
	Date      string
	ChipColor int // index into the theme's primary set
	Layout    Layout
	Cards     []Card
}

// Day projects a day's entries. Entries past the second are ignored.
func Day(name string, index int, date string, entries []schedule.Entry, slots []schedule.TimezoneSlot, paletteLen int) DayView {
	v := DayView{Name: name, Index: index, Date: date, ChipColor: index}
	if index >= 0 && index < len(DayAbbrev) {
		v.Abbrev = DayAbbrev[index]
	}
	if len(entries) > schedule.MaxEntriesPerDay {
		entries = entries[:schedule.MaxEntriesPerDay]
	}

	switch len(entries) {
	case 0:
		v.Layout = LayoutEmpty
		return v
	case 1:
		v.Layout = LayoutSingle
	default:
		v.Layout = LayoutPair
	}
	for _, e := range entries {
		v.Cards = append(v.Cards, cardFor(e, index, slots, paletteLen))
	}
	return v
}

func cardFor(e schedule.Entry, dayIndex int, slots []schedule.TimezoneSlot, paletteLen int) Card {
	if e.IsOffline() {
		text := e.OfflineText
		if text == "" {
			text = schedule.DefaultOfflineText
		}
		return Card{Kind: CardOffline, OfflineText: text}
	}
	return Card{
		Kind:       CardStream,
		Title:      e.Title,
		Subtitle:   e.Subtitle,
		MemberOnly: e.MemberOnly,
		Tags:       Tags(e.Tags),
		Badges:     TimeBadges(e, dayIndex, slots, paletteLen),
	}
}

// Tags lists the chips for an entry's tags in display order.
func Tags(t schedule.Tags) []Tag {
	var out []Tag
	if t.Collab {
		out = append(out, Tag{Label: "COLLAB", Role: TagSecondary})
	}
	if t.Announcement {
		out = append(out, Tag{Label: "ANNOUNCEMENT", Role: TagPrimary})
	}
	if t.Custom && t.CustomText != "" {
		out = append(out, Tag{Label: t.CustomText, Role: TagTertiary})
	}
	return out
}
