package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	Tab        key.Binding
	Export     key.Binding
	CycleTheme key.Binding
	ToggleDark key.Binding
	Logs       key.Binding
	Escape     key.Binding

	// Editor
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Remove   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	AddEntry key.Binding

	// Preview image controls
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	ScaleUp   key.Binding
	ScaleDown key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	FlipX     key.Binding
	FlipY     key.Binding
	Reset     key.Binding
	Preset    key.Binding

	// Modals
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Editor / Preview"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "Export image"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle card theme"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Toggle dark mode"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Show log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / cancel"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next field"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First field"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last field"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit / run"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous choice"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next choice"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next day"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add entry"),
		),

		MoveLeft: key.NewBinding(
			key.WithKeys("left", "shift+left"),
			key.WithHelp("←", "Move image left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("right", "shift+right"),
			key.WithHelp("→", "Move image right"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("up", "shift+up"),
			key.WithHelp("↑", "Move image up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("down", "shift+down"),
			key.WithHelp("↓", "Move image down"),
		),
		ScaleUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Zoom in"),
		),
		ScaleDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Zoom out"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rotate 90° right"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Rotate 90° left"),
		),
		FlipX: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Flip horizontal"),
		),
		FlipY: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Flip vertical"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Reset image"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Background focal preset"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Export, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Edit, k.Toggle, k.Prev, k.Next, k.Remove, k.PrevDay, k.NextDay, k.AddEntry},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown, k.ScaleUp, k.ScaleDown, k.RotateCW, k.RotateCCW, k.FlipX, k.FlipY, k.Reset, k.Preset},
		{k.Tab, k.Export, k.CycleTheme, k.ToggleDark, k.Logs, k.Help, k.Quit},
	}
}
