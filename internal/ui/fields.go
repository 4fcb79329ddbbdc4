package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/streamcard/internal/render"
	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/timezone"
)

// fieldKind decides which keys a field answers to.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
	fieldCycle
	fieldRemove
	fieldAction
)

// field is one row of the editor form. The callbacks close over the ids of
// the item they edit, so a rebuilt form still targets the same item.
type field struct {
	section string
	label   string
	value   string
	kind    fieldKind

	// placeholder is shown in the text input for empty values.
	placeholder string

	// set applies edited text (fieldText).
	set func(m *Model, text string) tea.Cmd
	// act runs a toggle, remove or action; dir is the cycle step for
	// fieldCycle and 0 otherwise.
	act func(m *Model, dir int) tea.Cmd
}

const (
	sectionGeneral   = "General"
	sectionTimezones = "Timezones"
	sectionHandles   = "Social handles"
)

// fields builds the editor form for the current document.
func (m *Model) fields() []field {
	d := &m.data
	var out []field

	add := func(f field) { out = append(out, f) }

	// General
	add(field{
		section: sectionGeneral, label: "Title", value: d.ScheduleTitle, kind: fieldText,
		set: func(m *Model, s string) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { d.ScheduleTitle = s; return nil })
		},
	})
	add(field{
		section: sectionGeneral, label: "Week start", value: d.StartDate + " → " + d.EndDate, kind: fieldText,
		placeholder: "YYYY-MM-DD",
		set: func(m *Model, s string) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { return d.SetStartDate(s) })
		},
	})
	add(field{
		section: sectionGeneral, label: "Artist", value: d.ArtistName, kind: fieldText,
		set: func(m *Model, s string) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { d.ArtistName = s; return nil })
		},
	})
	add(field{
		section: sectionGeneral, label: "Show artist", value: onOff(d.ShowArtist), kind: fieldToggle,
		act: func(m *Model, _ int) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { d.ShowArtist = !d.ShowArtist; return nil })
		},
	})
	add(field{
		section: sectionGeneral, label: "Schedule side", value: string(d.SchedulePosition), kind: fieldCycle,
		act: func(m *Model, _ int) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error {
				if d.SchedulePosition == schedule.PositionLeft {
					return d.SetPosition(schedule.PositionRight)
				}
				return d.SetPosition(schedule.PositionLeft)
			})
		},
	})
	add(field{
		section: sectionGeneral, label: "Full background", value: onOff(d.TransparentBackground), kind: fieldToggle,
		act: func(m *Model, _ int) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { d.TransparentBackground = !d.TransparentBackground; return nil })
		},
	})
	imageValue := "none"
	if d.HasImage() {
		imageValue = m.imageName
		if imageValue == "" {
			imageValue = "loaded"
		}
	}
	add(field{
		section: sectionGeneral, label: "Image", value: imageValue, kind: fieldText,
		placeholder: "path to a PNG, JPEG, GIF or WebP file",
		set: func(m *Model, s string) tea.Cmd {
			path := strings.TrimSpace(s)
			if path == "" {
				return nil
			}
			m.setFlash("Loading "+path+"…", false)
			return loadImageCmd(path)
		},
	})
	if d.HasImage() {
		add(field{
			section: sectionGeneral, label: "Remove image", kind: fieldRemove,
			act: func(m *Model, _ int) tea.Cmd { return m.clearImage() },
		})
	}
	add(field{
		section: sectionGeneral, label: "Card theme", value: m.themes.Current().Name, kind: fieldCycle,
		act: func(m *Model, dir int) tea.Cmd { return m.cycleTheme(dir) },
	})
	add(field{
		section: sectionGeneral, label: "Dark mode", value: onOff(m.themes.Dark()), kind: fieldToggle,
		act: func(m *Model, _ int) tea.Cmd { return m.toggleDark() },
	})

	// Timezones
	for i, slot := range d.Timezones {
		add(field{
			section: sectionTimezones, label: fmt.Sprintf("Zone %d", i+1),
			value: slot.Abbreviation + " · " + slot.Label, kind: fieldCycle,
			act: func(m *Model, dir int) tea.Cmd {
				if dir == 0 {
					dir = 1
				}
				return m.mutate(func(d *schedule.Data) error {
					return d.SetTimezone(i, timezone.Next(d.Timezones[i].ID, dir).ID)
				})
			},
		})
		add(field{
			section: sectionTimezones, label: fmt.Sprintf("Zone %d shown", i+1),
			value: onOff(slot.Enabled), kind: fieldToggle,
			act: func(m *Model, _ int) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { return d.ToggleTimezone(i) })
			},
		})
	}

	// Social handles
	for _, h := range d.SocialMediaHandles {
		id := h.ID
		add(field{
			section: sectionHandles, label: "Platform", value: string(h.Platform), kind: fieldCycle,
			act: func(m *Model, dir int) tea.Cmd {
				if dir == 0 {
					dir = 1
				}
				return m.mutate(func(d *schedule.Data) error {
					for _, cur := range d.SocialMediaHandles {
						if cur.ID == id {
							return d.SetHandlePlatform(id, schedule.NextPlatform(cur.Platform, dir))
						}
					}
					return schedule.ErrUnknownHandle
				})
			},
		})
		add(field{
			section: sectionHandles, label: "  Handle", value: h.Handle, kind: fieldText,
			placeholder: h.Platform.Placeholder(),
			set: func(m *Model, s string) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { return d.SetHandleText(id, s) })
			},
		})
		add(field{
			section: sectionHandles, label: "  Shown", value: onOff(h.Enabled), kind: fieldToggle,
			act: func(m *Model, _ int) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { return d.ToggleHandle(id) })
			},
		})
		add(field{
			section: sectionHandles, label: "  Remove handle", kind: fieldRemove,
			act: func(m *Model, _ int) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { return d.RemoveHandle(id) })
			},
		})
	}
	if len(d.SocialMediaHandles) < schedule.MaxSocialHandles {
		add(field{
			section: sectionHandles, label: "+ Add handle", kind: fieldAction,
			act: func(m *Model, _ int) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { _, err := d.AddHandle(); return err })
			},
		})
	}

	// Selected day
	day := schedule.Days[m.day]
	daySection := day
	entries := d.Schedule[day]
	add(field{
		section: daySection, label: "Day", kind: fieldCycle,
		value: fmt.Sprintf("%s (%d/%d)", day, len(entries), schedule.MaxEntriesPerDay),
		act: func(m *Model, dir int) tea.Cmd {
			if dir == 0 {
				dir = 1
			}
			m.day = ((m.day+dir)%len(schedule.Days) + len(schedule.Days)) % len(schedule.Days)
			return nil
		},
	})
	for n, e := range entries {
		out = append(out, entryFields(daySection, day, n, e)...)
	}
	if len(entries) < schedule.MaxEntriesPerDay {
		add(field{
			section: daySection, label: "+ Add entry", kind: fieldAction,
			act: func(m *Model, _ int) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { _, err := d.AddEntry(day); return err })
			},
		})
	}
	return out
}

// entryFields are the rows for one entry of day.
func entryFields(section, day string, n int, e schedule.Entry) []field {
	id := e.ID
	update := func(fn func(*schedule.Entry)) func(m *Model, _ int) tea.Cmd {
		return func(m *Model, _ int) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { return d.UpdateEntry(day, id, fn) })
		}
	}
	setText := func(fn func(*schedule.Entry, string)) func(m *Model, s string) tea.Cmd {
		return func(m *Model, s string) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error {
				return d.UpdateEntry(day, id, func(e *schedule.Entry) { fn(e, s) })
			})
		}
	}

	out := []field{
		{
			section: section, label: fmt.Sprintf("Entry %d type", n+1), value: string(e.Type), kind: fieldCycle,
			act: func(m *Model, _ int) tea.Cmd {
				next := schedule.EntryOffline
				if e.IsOffline() {
					next = schedule.EntryStream
				}
				return m.mutate(func(d *schedule.Data) error { return d.SetEntryType(day, id, next) })
			},
		},
		{
			section: section, label: "  Time", value: e.Time + " (" + render.Format12h(e.Time) + ")", kind: fieldText,
			placeholder: "HH:MM",
			set: func(m *Model, s string) tea.Cmd {
				return m.mutate(func(d *schedule.Data) error { return d.SetEntryTime(day, id, s) })
			},
		},
	}
	if e.IsOffline() {
		out = append(out, field{
			section: section, label: "  Offline text", value: e.OfflineText, kind: fieldText,
			placeholder: schedule.DefaultOfflineText,
			set:         setText(func(e *schedule.Entry, s string) { e.OfflineText = s }),
		})
	} else {
		out = append(out,
			field{
				section: section, label: "  Title", value: e.Title, kind: fieldText,
				set: setText(func(e *schedule.Entry, s string) { e.Title = s }),
			},
			field{
				section: section, label: "  Subtitle", value: e.Subtitle, kind: fieldText,
				set: setText(func(e *schedule.Entry, s string) { e.Subtitle = s }),
			},
			field{
				section: section, label: "  Member only", value: onOff(e.MemberOnly), kind: fieldToggle,
				act: update(func(e *schedule.Entry) { e.MemberOnly = !e.MemberOnly }),
			},
			field{
				section: section, label: "  Collab tag", value: onOff(e.Tags.Collab), kind: fieldToggle,
				act: update(func(e *schedule.Entry) { e.Tags.Collab = !e.Tags.Collab }),
			},
			field{
				section: section, label: "  Announcement tag", value: onOff(e.Tags.Announcement), kind: fieldToggle,
				act: update(func(e *schedule.Entry) { e.Tags.Announcement = !e.Tags.Announcement }),
			},
			field{
				section: section, label: "  Custom tag", value: onOff(e.Tags.Custom), kind: fieldToggle,
				act: update(func(e *schedule.Entry) { e.Tags.Custom = !e.Tags.Custom }),
			},
		)
		if e.Tags.Custom {
			out = append(out, field{
				section: section, label: "  Custom text", value: e.Tags.CustomText, kind: fieldText,
				set: setText(func(e *schedule.Entry, s string) { e.Tags.CustomText = s }),
			})
		}
	}
	out = append(out, field{
		section: section, label: "  Remove entry", kind: fieldRemove,
		act: func(m *Model, _ int) tea.Cmd {
			return m.mutate(func(d *schedule.Data) error { return d.RemoveEntry(day, id) })
		},
	})
	return out
}
