package render

import "strings"

// Theme is a card colour scheme. Colours are "#rrggbb".
type Theme struct {
	ID             string
	Name           string
	Dark           bool
	Primary        string
	Secondary      string
	Tertiary       string
	CardBackground string
	CardBorder     string
	TextPrimary    string
	TextSecondary  string
	ButtonColor    string
	BorderLight    string
	Stripe1        string
	Stripe2        string
	Surface        string
	SurfaceText    string
	Footer         string
	PrimarySet     []string
	TextSet        []string
	TimeBadgeSet   []string
}

var themes = []Theme{
	{
		ID: "default", Name: "Pastel Pop",
		Primary: "#ff6f91", Secondary: "#845ec2", Tertiary: "#ffc75f",
		CardBackground: "#fff5f8", CardBorder: "#ffd1dc",
		TextPrimary: "#4a3b52", TextSecondary: "#9a8aa3",
		ButtonColor: "#ff6f91", BorderLight: "#f3e6ee",
		Stripe1: "#ffe4ec", Stripe2: "#fff0f5",
		Surface: "#fffafc", SurfaceText: "#4a3b52", Footer: "#ffe4ec",
		PrimarySet:   []string{"#ff6f91", "#ff9671", "#ffc75f", "#00c9a7", "#4d8076", "#845ec2", "#d65db1"},
		TextSet:      []string{"#ffffff", "#ffffff", "#4a3b52"},
		TimeBadgeSet: []string{"#ff6f91", "#845ec2", "#00c9a7"},
	},
	{
		ID: "default-dark", Name: "Pastel Pop Dark", Dark: true,
		Primary: "#ff6f91", Secondary: "#b39cd0", Tertiary: "#ffc75f",
		CardBackground: "#2b2233", CardBorder: "#4b3a5a",
		TextPrimary: "#fbeaff", TextSecondary: "#b8a7c2",
		ButtonColor: "#ff6f91", BorderLight: "#3a2f44",
		Stripe1: "#231b2a", Stripe2: "#2b2233",
		Surface: "#1c1622", SurfaceText: "#fbeaff", Footer: "#231b2a",
		PrimarySet:   []string{"#ff6f91", "#ff9671", "#ffc75f", "#00c9a7", "#4d8076", "#845ec2", "#d65db1"},
		TextSet:      []string{"#ffffff", "#ffffff", "#1c1622"},
		TimeBadgeSet: []string{"#ff6f91", "#b39cd0", "#00c9a7"},
	},
	{
		ID: "sakura", Name: "Sakura",
		Primary: "#e75480", Secondary: "#c16b8f", Tertiary: "#8fb996",
		CardBackground: "#fff0f4", CardBorder: "#f7c6d4",
		TextPrimary: "#5b2333", TextSecondary: "#a06a7b",
		ButtonColor: "#e75480", BorderLight: "#f6dde5",
		Stripe1: "#fde2ea", Stripe2: "#fff5f8",
		Surface: "#fffafb", SurfaceText: "#5b2333", Footer: "#fde2ea",
		PrimarySet:   []string{"#e75480", "#f08fa8", "#c16b8f", "#8fb996", "#e75480", "#f08fa8", "#c16b8f"},
		TextSet:      []string{"#ffffff"},
		TimeBadgeSet: []string{"#e75480", "#c16b8f", "#8fb996"},
	},
	{
		ID: "sakura-dark", Name: "Sakura Night", Dark: true,
		Primary: "#f08fa8", Secondary: "#c16b8f", Tertiary: "#8fb996",
		CardBackground: "#2e1a22", CardBorder: "#5a3142",
		TextPrimary: "#ffe3ec", TextSecondary: "#c79aab",
		ButtonColor: "#f08fa8", BorderLight: "#44252f",
		Stripe1: "#24141a", Stripe2: "#2e1a22",
		Surface: "#1d1015", SurfaceText: "#ffe3ec", Footer: "#24141a",
		PrimarySet:   []string{"#f08fa8", "#e75480", "#c16b8f", "#8fb996", "#f08fa8", "#e75480", "#c16b8f"},
		TextSet:      []string{"#1d1015"},
		TimeBadgeSet: []string{"#f08fa8", "#c16b8f", "#8fb996"},
	},
	{
		ID: "ocean", Name: "Ocean",
		Primary: "#0077b6", Secondary: "#00b4d8", Tertiary: "#f4a261",
		CardBackground: "#f0faff", CardBorder: "#b8e3f5",
		TextPrimary: "#03304a", TextSecondary: "#5c8aa3",
		ButtonColor: "#0077b6", BorderLight: "#d8eef8",
		Stripe1: "#caf0f8", Stripe2: "#e6f8fc",
		Surface: "#f7fdff", SurfaceText: "#03304a", Footer: "#caf0f8",
		PrimarySet:   []string{"#03045e", "#023e8a", "#0077b6", "#0096c7", "#00b4d8", "#48cae4", "#90e0ef"},
		TextSet:      []string{"#ffffff", "#ffffff", "#03304a"},
		TimeBadgeSet: []string{"#0077b6", "#00b4d8", "#f4a261"},
	},
	{
		ID: "ocean-dark", Name: "Deep Sea", Dark: true,
		Primary: "#48cae4", Secondary: "#0096c7", Tertiary: "#f4a261",
		CardBackground: "#0b2233", CardBorder: "#164a66",
		TextPrimary: "#e0f7ff", TextSecondary: "#8fb8cc",
		ButtonColor: "#48cae4", BorderLight: "#12354a",
		Stripe1: "#071825", Stripe2: "#0b2233",
		Surface: "#05111a", SurfaceText: "#e0f7ff", Footer: "#071825",
		PrimarySet:   []string{"#90e0ef", "#48cae4", "#00b4d8", "#0096c7", "#0077b6", "#023e8a", "#03045e"},
		TextSet:      []string{"#05111a", "#05111a", "#ffffff"},
		TimeBadgeSet: []string{"#48cae4", "#0096c7", "#f4a261"},
	},
	{
		ID: "mono", Name: "Monochrome",
		Primary: "#222222", Secondary: "#555555", Tertiary: "#888888",
		CardBackground: "#ffffff", CardBorder: "#dddddd",
		TextPrimary: "#111111", TextSecondary: "#777777",
		ButtonColor: "#222222", BorderLight: "#eeeeee",
		Stripe1: "#f2f2f2", Stripe2: "#fafafa",
		Surface: "#ffffff", SurfaceText: "#111111", Footer: "#f2f2f2",
		PrimarySet: []string{"#222222"},
	},
}

const darkSuffix = "-dark"

// Themes returns every theme, light and dark variants included.
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// BaseThemes returns the selectable themes, without dark variants.
func BaseThemes() []Theme {
	var out []Theme
	for _, t := range themes {
		if !strings.HasSuffix(t.ID, darkSuffix) {
			out = append(out, t)
		}
	}
	return out
}

// LookupTheme finds a theme by exact id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// DefaultTheme is the first catalog entry.
func DefaultTheme() Theme {
	return themes[0]
}

// BaseID strips a dark suffix.
func (t Theme) BaseID() string {
	return strings.TrimSuffix(t.ID, darkSuffix)
}

// BadgeColor returns background and text colours for a time badge slot.
func (t Theme) BadgeColor(slot int) (bg, fg string) {
	bg = pick(t.TimeBadgeSet, slot)
	if bg == "" {
		bg = t.Secondary
		if slot == 0 {
			bg = t.Primary
		}
	}
	fg = pick(t.TextSet, slot)
	if fg == "" {
		fg = "#a9a9a9"
		if slot == 0 {
			fg = "#ffffff"
		}
	}
	return bg, fg
}

// ChipColor returns background and text colours for a day chip.
func (t Theme) ChipColor(day int) (bg, fg string) {
	bg = pick(t.PrimarySet, day)
	if bg == "" {
		bg = t.Primary
	}
	fg = pick(t.TextSet, day)
	if fg == "" {
		fg = "#ffffff"
	}
	return bg, fg
}

// TagColor returns the chip colour for a tag role.
func (t Theme) TagColor(r TagRole) string {
	switch r {
	case TagPrimary:
		return t.Primary
	case TagTertiary:
		if t.Tertiary != "" {
			return t.Tertiary
		}
		return t.Secondary
	default:
		return t.Secondary
	}
}

func pick(set []string, i int) string {
	if len(set) == 0 || i < 0 {
		return ""
	}
	return set[i%len(set)]
}

// ThemeState is the selected theme plus the dark mode flag.
type ThemeState struct {
	current Theme
	dark    bool
}

// NewThemeState restores a saved choice. Unknown ids fall back to the default
// theme.
func NewThemeState(id string, dark bool) ThemeState {
	s := ThemeState{current: DefaultTheme(), dark: dark}
	if !s.SetTheme(id) {
		s.SetTheme(DefaultTheme().ID)
	}
	return s
}

// Current returns the active theme.
func (s ThemeState) Current() Theme { return s.current }

// Dark reports whether dark mode is on.
func (s ThemeState) Dark() bool { return s.dark }

// SetTheme selects a theme by base id. In dark mode the dark variant is used
// when one exists; otherwise dark mode is switched off. Unknown ids are
// ignored and reported as false.
func (s *ThemeState) SetTheme(id string) bool {
	base, ok := LookupTheme(id)
	if !ok {
		return false
	}
	if s.dark {
		if dark, ok := LookupTheme(base.BaseID() + darkSuffix); ok {
			s.current = dark
			return true
		}
		s.dark = false
	}
	s.current = base
	return true
}

// ToggleDark switches between a theme and its dark variant. Nothing changes
// when the target variant does not exist.
func (s *ThemeState) ToggleDark() bool {
	base := s.current.BaseID()
	target := base + darkSuffix
	if s.dark {
		target = base
	}
	t, ok := LookupTheme(target)
	if !ok {
		return false
	}
	s.current = t
	s.dark = !s.dark
	return true
}
