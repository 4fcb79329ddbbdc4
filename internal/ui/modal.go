package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/schedule"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal closed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// textModal edits one text field.
type textModal struct {
	title string
	input textinput.Model
	apply func(m *Model, text string) tea.Cmd
}

func newTextModal(f field) *textModal {
	in := textinput.New()
	in.Placeholder = f.placeholder
	in.CharLimit = 256
	in.Width = 48
	value := f.value
	if strings.Contains(value, " → ") {
		// Week start shows the derived end date too.
		value, _, _ = strings.Cut(value, " → ")
	}
	if i := strings.Index(value, " ("); i > 0 && f.placeholder == "HH:MM" {
		value = value[:i]
	}
	if f.label == "Image" {
		value = ""
	}
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return &textModal{title: strings.TrimSpace(f.label), input: in, apply: f.set}
}

func (t *textModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return t, nil, true
		case key.Matches(k, keys.Confirm):
			value := t.input.Value()
			apply := t.apply
			return t, func() tea.Msg { return textSubmittedMsg{apply: apply, value: value} }, true
		}
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd, false
}

func (t *textModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Edit " + t.title))
	b.WriteString("\n\n")
	b.WriteString(t.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter save · esc cancel"))
	return placeModal(theme, width, height, 56, b.String())
}

// exportModal picks the export format and quality.
type exportModal struct {
	opts export.Options
	row  int
}

func newExportModal(opts export.Options) *exportModal {
	return &exportModal{opts: opts}
}

func (e *exportModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil, false
	}
	switch {
	case key.Matches(k, keys.Escape):
		return e, nil, true
	case key.Matches(k, keys.Confirm):
		opts := e.opts
		return e, func() tea.Msg { return exportRequestMsg{opts: opts} }, true
	case key.Matches(k, keys.Up), key.Matches(k, keys.Down):
		e.row = 1 - e.row
	case key.Matches(k, keys.Prev), key.Matches(k, keys.Next), key.Matches(k, keys.Toggle):
		if e.row == 0 {
			if e.opts.Format == export.FormatPNG {
				e.opts.Format = export.FormatJPEG
			} else {
				e.opts.Format = export.FormatPNG
			}
		} else {
			if e.opts.Quality == export.QualityHigh {
				e.opts.Quality = export.QualityStandard
			} else {
				e.opts.Quality = export.QualityHigh
			}
		}
	}
	return e, nil, false
}

func (e *exportModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	rows := []struct{ label, value string }{
		{"Format", strings.ToUpper(string(e.opts.Format))},
		{"Quality", string(e.opts.Quality)},
	}
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Export image"))
	b.WriteString("\n\n")
	for i, r := range rows {
		line := padRight(r.label, 10) + "‹ " + r.value + " ›"
		if i == e.row {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	plan := export.NewPlan(e.opts, schedule.Data{})
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(
		strings.ToUpper(string(plan.Format)) + " · " +
			strconv.Itoa(plan.PixelWidth()) + "×" + strconv.Itoa(plan.PixelHeight())))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("←/→ change · enter export · esc cancel"))
	return placeModal(theme, width, height, 44, b.String())
}

// placeModal centres a bordered box on the screen.
func placeModal(theme Theme, width, height, boxWidth int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
