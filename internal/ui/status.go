package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the header, the tab bar, the active pane and the footer.
func (m Model) renderMain() string {
	height := m.height - chromeLines
	if height < 1 {
		height = 1
	}
	var body string
	if m.tab == TabPreview {
		body = m.renderPreview(height)
	} else {
		body = m.renderEditor(height)
	}
	body = lipgloss.NewStyle().Height(height).MaxHeight(height).Render(body)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the save status, export state and the latest message.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("streamcard", styles.Logo)}
	parts = append(parts, m.saveStatus(styles, bg, compact))
	if m.exporting {
		parts = append(parts, bg.Render("● exporting", styles.WarningText))
	}
	if m.flash != "" {
		style := styles.Text
		if m.flashDanger {
			style = styles.DangerText
		}
		limit := 80
		if compact {
			limit = 40
		}
		parts = append(parts, bg.Render(truncate(m.flash, limit), style))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// saveStatus summarises persistence health.
func (m Model) saveStatus(styles Styles, bg BgStyle, compact bool) string {
	s := m.snapshot
	switch {
	case s.LastError != nil:
		label := "● save failed"
		if s.IsDegraded() {
			label = fmt.Sprintf("● save failed ×%d", s.ConsecutiveFailures)
		}
		out := bg.Render(label, styles.DangerText)
		if !compact {
			out += bg.Space() + bg.Render(truncate(s.LastError.Error(), 60), styles.MutedText)
		}
		return out
	case s.Pending:
		return bg.Render("● saving", styles.WarningText)
	case !s.LastSaved.IsZero():
		return bg.Render("● saved", styles.SuccessText) + bg.Space() +
			bg.Render(formatSince(s.LastSaved, time.Now()), styles.MutedText)
	default:
		return bg.Render("● no changes", styles.MutedText)
	}
}

// formatSince renders a save time with a relative hint.
func formatSince(at, now time.Time) string {
	out := at.Format("15:04:05")
	since := now.Sub(at)
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	var tabs []string
	for _, t := range []Tab{TabEditor, TabPreview} {
		if t == m.tab {
			tabs = append(tabs, styles.ActiveTab.Render(t.String()))
		} else {
			tabs = append(tabs, styles.Tab.Render(t.String()))
		}
	}
	th := m.themes.Current()
	palette := swatch(th.Primary) + swatch(th.Secondary) + swatch(th.Tertiary)
	return strings.Join(tabs, " ") + "  " + palette + " " + styles.MutedText.Render(th.Name)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.AccentText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	if m.tab == TabEditor {
		parts = append(parts, bg.Render("[ ]", styles.AccentText)+bg.Space()+bg.Render("day", styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}
