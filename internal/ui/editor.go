package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/streamcard/internal/schedule"
)

// handleEditorKey processes keyboard input for the editor form.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.fields()
	if len(fields) == 0 {
		return m, nil
	}
	m.cursor = clampIndex(m.cursor, len(fields))
	f := fields[m.cursor]

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampIndex(m.cursor-1, len(fields))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampIndex(m.cursor+1, len(fields))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(fields) - 1
	case key.Matches(msg, m.keys.PrevDay):
		m.day = (m.day + len(schedule.Days) - 1) % len(schedule.Days)
	case key.Matches(msg, m.keys.NextDay):
		m.day = (m.day + 1) % len(schedule.Days)
	case key.Matches(msg, m.keys.AddEntry):
		day := schedule.Days[m.day]
		cmd = m.mutate(func(d *schedule.Data) error { _, err := d.AddEntry(day); return err })
	case key.Matches(msg, m.keys.Prev):
		if f.kind == fieldCycle {
			cmd = f.act(&m, -1)
		}
	case key.Matches(msg, m.keys.Next):
		if f.kind == fieldCycle {
			cmd = f.act(&m, 1)
		}
	case key.Matches(msg, m.keys.Toggle):
		if f.kind == fieldToggle || f.kind == fieldCycle {
			cmd = f.act(&m, 1)
		}
	case key.Matches(msg, m.keys.Remove):
		if f.kind == fieldRemove {
			cmd = f.act(&m, 0)
		}
	case key.Matches(msg, m.keys.Edit):
		switch f.kind {
		case fieldText:
			m.modal = newTextModal(f)
		default:
			cmd = f.act(&m, 1)
		}
	}

	// The form may have grown or shrunk.
	m.cursor = clampIndex(m.cursor, len(m.fields()))
	return m, cmd
}

// renderEditor renders the form into a height-line viewport that keeps the
// cursor visible.
func (m Model) renderEditor(height int) string {
	styles := m.theme.Styles()
	fields := m.fields()
	cursor := clampIndex(m.cursor, len(fields))

	var b strings.Builder
	cursorLine := 0
	line := 0
	section := ""
	for i, f := range fields {
		if f.section != section {
			if section != "" {
				b.WriteString("\n")
				line++
			}
			section = f.section
			b.WriteString(styles.AccentText.Bold(true).Render(section))
			b.WriteString("\n")
			line++
		}
		if i == cursor {
			cursorLine = line
		}
		b.WriteString(m.renderField(f, i == cursor, styles))
		b.WriteString("\n")
		line++
	}

	vp := viewport.New(m.width, height)
	vp.SetContent(strings.TrimSuffix(b.String(), "\n"))
	if cursorLine >= height {
		vp.SetYOffset(cursorLine - height/2)
	}
	return vp.View()
}

func (m Model) renderField(f field, selected bool, styles Styles) string {
	label := padRight(f.label, labelWidth)
	value := f.value
	switch f.kind {
	case fieldToggle:
		mark := "[ ]"
		if value == "on" {
			mark = "[x]"
		}
		value = mark
	case fieldCycle:
		value = "‹ " + value + " ›"
	case fieldRemove, fieldAction:
		value = ""
	case fieldText:
		if value == "" {
			value = styles.FaintText.Render(f.placeholder)
		}
	}
	maxValue := m.width - labelWidth - 4
	if f.kind != fieldText || f.value != "" {
		value = truncate(value, maxValue)
	}

	if selected {
		return styles.Selected.Render("▸ "+label) + " " + value
	}
	labelStyle := styles.MutedText
	switch f.kind {
	case fieldRemove:
		labelStyle = styles.DangerText
	case fieldAction:
		labelStyle = styles.AccentText
	}
	return "  " + labelStyle.Render(label) + " " + styles.Text.Render(value)
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
