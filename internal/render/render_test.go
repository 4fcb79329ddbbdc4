package render

import (
	"reflect"
	"testing"

	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/transform"
)

func TestFormat12h(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:05", "09:05 AM"},
		{"12:00", "12:00 PM"},
		{"13:45", "01:45 PM"},
		{"23:59", "11:59 PM"},
		{"7:00", "07:00 AM"},
		{"nope", "nope"},
	}
	for _, tt := range tests {
		if got := Format12h(tt.in); got != tt.want {
			t.Errorf("Format12h(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-01-01"); got != "JAN 01" {
		t.Fatalf("FormatDate = %q, want JAN 01", got)
	}
	if got := FormatDate(""); got != "" {
		t.Fatalf("FormatDate(\"\") = %q", got)
	}
	if got := FormatDate("someday"); got != "someday" {
		t.Fatalf("FormatDate(bad) = %q, want input back", got)
	}
	if got := DateRange("2024-12-29", "2025-01-04"); got != "DEC 29 - JAN 04" {
		t.Fatalf("DateRange = %q", got)
	}
}

func TestWeekDates(t *testing.T) {
	want := []string{"29", "30", "31", "01", "02", "03", "04"}
	if got := WeekDates("2024-12-29"); !reflect.DeepEqual(got, want) {
		t.Fatalf("WeekDates = %v, want %v", got, want)
	}
	if got := WeekDates("bad"); !reflect.DeepEqual(got, fallbackDates) {
		t.Fatalf("WeekDates(bad) = %v, want fallback", got)
	}
	if got := WeekDates(""); got != nil {
		t.Fatalf("WeekDates(\"\") = %v, want nil", got)
	}
}

func slot(id, abbr string) schedule.TimezoneSlot {
	return schedule.TimezoneSlot{ID: id, Abbreviation: abbr, Enabled: true}
}

func TestTimeBadges_MondayEveningESTToJST(t *testing.T) {
	entry := schedule.Entry{Time: "23:00", Type: schedule.EntryStream}
	slots := []schedule.TimezoneSlot{slot("est", "EST"), slot("jst", "JST")}

	got := TimeBadges(entry, 0, slots, 3)
	want := []Badge{
		{Label: "11:00 PM (EST)", DayLetter: "", ColorSlot: 0},
		{Label: "12:00 PM (JST)", DayLetter: "T", ColorSlot: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TimeBadges = %+v, want %+v", got, want)
	}
}

func TestTimeBadges_PaletteWrapsAndEmptyPalette(t *testing.T) {
	entry := schedule.Entry{Time: "01:00"}
	slots := []schedule.TimezoneSlot{slot("jst", "jst"), slot("est", "EST"), slot("gmt", "GMT")}

	got := TimeBadges(entry, 0, slots, 2)
	if got[2].ColorSlot != 0 {
		t.Fatalf("third badge ColorSlot = %d, want 0", got[2].ColorSlot)
	}
	if got[0].Label != "01:00 AM (JST)" {
		t.Fatalf("abbreviation should be upper-cased: %q", got[0].Label)
	}
	// jst 01:00 Monday is est 12:00 Sunday.
	if got[1].Label != "12:00 PM (EST)" || got[1].DayLetter != "S" {
		t.Fatalf("second badge = %+v", got[1])
	}
	for _, b := range TimeBadges(entry, 0, slots, 0) {
		if b.ColorSlot != 0 {
			t.Fatalf("empty palette ColorSlot = %d, want 0", b.ColorSlot)
		}
	}
	if TimeBadges(entry, 0, nil, 3) != nil {
		t.Fatal("no slots should give no badges")
	}
}

func TestDay_Layouts(t *testing.T) {
	slots := []schedule.TimezoneSlot{slot("est", "EST")}
	stream := schedule.Entry{ID: "a", Time: "18:00", Title: "Karaoke", Subtitle: "songs", Type: schedule.EntryStream,
		Tags: schedule.Tags{Collab: true, Custom: true, CustomText: "???"}}
	offline := schedule.Entry{ID: "b", Time: "18:00", Title: "ignored", Subtitle: "ignored", Type: schedule.EntryOffline}

	empty := Day("Monday", 0, "01", nil, slots, 3)
	if empty.Layout != LayoutEmpty || len(empty.Cards) != 0 || empty.Abbrev != "MON" {
		t.Fatalf("empty day = %+v", empty)
	}

	single := Day("Tuesday", 1, "02", []schedule.Entry{offline}, slots, 3)
	if single.Layout != LayoutSingle || len(single.Cards) != 1 {
		t.Fatalf("single day = %+v", single)
	}
	card := single.Cards[0]
	if card.Kind != CardOffline || card.OfflineText != "OFFLINE" || card.Title != "" || card.Badges != nil {
		t.Fatalf("offline card = %+v", card)
	}

	pair := Day("Wednesday", 2, "03", []schedule.Entry{stream, offline, stream}, slots, 3)
	if pair.Layout != LayoutPair || len(pair.Cards) != 2 {
		t.Fatalf("pair day = %+v", pair)
	}
	s := pair.Cards[0]
	if s.Kind != CardStream || s.Title != "Karaoke" || len(s.Badges) != 1 {
		t.Fatalf("stream card = %+v", s)
	}
	wantTags := []Tag{{Label: "COLLAB", Role: TagSecondary}, {Label: "???", Role: TagTertiary}}
	if !reflect.DeepEqual(s.Tags, wantTags) {
		t.Fatalf("tags = %+v, want %+v", s.Tags, wantTags)
	}
	if pair.Cards[1].Kind != CardOffline {
		t.Fatalf("second card = %+v", pair.Cards[1])
	}
}

func TestProject(t *testing.T) {
	d := schedule.Defaults()
	_ = d.SetStartDate("2024-01-01")
	d.SocialMediaHandles = append(d.SocialMediaHandles, schedule.Handle{ID: "9", Platform: schedule.PlatformTwitch, Handle: "me", Enabled: true})
	_, _ = d.AddEntry("Monday")
	d.ShowArtist = false
	d.SchedulePosition = schedule.PositionLeft

	p := Project(d, DefaultTheme())
	if p.Title != "SCHEDULE" || p.DateRange != "JAN 01 - JAN 07" {
		t.Fatalf("header = %q / %q", p.Title, p.DateRange)
	}
	if p.Artist != "" {
		t.Fatalf("Artist = %q, want hidden", p.Artist)
	}
	if len(p.Handles) != 1 || p.Handles[0].Handle != "me" {
		t.Fatalf("Handles = %+v", p.Handles)
	}
	if !p.ScheduleFirst {
		t.Fatal("ScheduleFirst = false for left layout")
	}
	if p.Days[0].Layout != LayoutSingle || p.Days[0].Date != "01" || p.Days[6].Date != "07" {
		t.Fatalf("days = %+v", p.Days)
	}
	if got := len(p.Days[0].Cards[0].Badges); got != 3 {
		t.Fatalf("badges = %d, want 3 for the default zones", got)
	}
	if p.Image.Mode != ImageNone {
		t.Fatalf("Image.Mode = %v, want none", p.Image.Mode)
	}
}

func TestProject_ImageModes(t *testing.T) {
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AA==")
	d.ImageTransform = transform.Image{X: 10, Y: -5, Scale: 1.5, Rotation: 90, FlipX: true}

	p := Project(d, DefaultTheme())
	if p.Image.Mode != ImageForeground {
		t.Fatalf("Mode = %v, want foreground", p.Image.Mode)
	}
	if p.Image.CSS != "translate(10px, -5px) scale(-1.5, 1.5) rotate(90deg)" {
		t.Fatalf("CSS = %q", p.Image.CSS)
	}

	d.TransparentBackground = true
	d.BackgroundTransform = transform.Background{Scale: 1.5, PositionX: 100, PositionY: 0}
	p = Project(d, DefaultTheme())
	if p.Image.Mode != ImageBackground || p.Image.Size != "150%" || p.Image.Position != "100% 0%" {
		t.Fatalf("background layer = %+v", p.Image)
	}
	if p.Image.CSS != "" {
		t.Fatalf("foreground CSS should not apply in background mode: %q", p.Image.CSS)
	}
}

func TestThemeState(t *testing.T) {
	s := NewThemeState("sakura", false)
	if s.Current().ID != "sakura" || s.Dark() {
		t.Fatalf("state = %s dark=%v", s.Current().ID, s.Dark())
	}
	if !s.ToggleDark() || s.Current().ID != "sakura-dark" || !s.Dark() {
		t.Fatalf("after toggle = %s dark=%v", s.Current().ID, s.Dark())
	}
	if !s.SetTheme("ocean") || s.Current().ID != "ocean-dark" {
		t.Fatalf("SetTheme in dark mode = %s", s.Current().ID)
	}
	// mono has no dark variant: dark mode switches off.
	if !s.SetTheme("mono") || s.Current().ID != "mono" || s.Dark() {
		t.Fatalf("SetTheme(mono) = %s dark=%v", s.Current().ID, s.Dark())
	}
	if s.ToggleDark() || s.Dark() {
		t.Fatal("ToggleDark without a dark variant should do nothing")
	}
	if s.SetTheme("nope") || s.Current().ID != "mono" {
		t.Fatalf("unknown id changed theme to %s", s.Current().ID)
	}

	if got := NewThemeState("missing", true).Current().ID; got != "default-dark" {
		t.Fatalf("NewThemeState(missing, dark) = %s, want default-dark", got)
	}
}

func TestThemeColors(t *testing.T) {
	mono, _ := LookupTheme("mono")
	bg, fg := mono.BadgeColor(0)
	if bg != mono.Primary || fg != "#ffffff" {
		t.Fatalf("slot 0 fallback = %s/%s", bg, fg)
	}
	bg, _ = mono.BadgeColor(1)
	if bg != mono.Secondary {
		t.Fatalf("slot 1 fallback = %s", bg)
	}
	def := DefaultTheme()
	if bg, _ := def.BadgeColor(4); bg != def.TimeBadgeSet[1] {
		t.Fatalf("BadgeColor(4) = %s, want wrap to %s", bg, def.TimeBadgeSet[1])
	}
	if got := def.TagColor(TagTertiary); got != def.Tertiary {
		t.Fatalf("TagColor(tertiary) = %s", got)
	}
	for _, th := range BaseThemes() {
		if th.Dark {
			t.Fatalf("BaseThemes includes dark theme %s", th.ID)
		}
	}
}
