package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/streamcard/internal/logtail"
)

// logModal shows the tail of the log file, newest at the bottom.
type logModal struct {
	path    string
	entries []logtail.Entry
	vp      viewport.Model
}

func newLogModal(path string, entries []logtail.Entry, width, height int) *logModal {
	w, h := logViewSize(width, height)
	return &logModal{path: path, entries: entries, vp: viewport.New(w, h)}
}

func logViewSize(width, height int) (int, int) {
	w := width - 12
	if w < 40 {
		w = 40
	}
	h := height - 12
	if h < 5 {
		h = 5
	}
	return w, h
}

func (l *logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil, false
	}
	switch {
	case key.Matches(k, keys.Escape), key.Matches(k, keys.Logs):
		return l, nil, true
	case key.Matches(k, keys.Up):
		l.vp.ScrollUp(1)
	case key.Matches(k, keys.Down):
		l.vp.ScrollDown(1)
	case key.Matches(k, keys.Top):
		l.vp.GotoTop()
	case key.Matches(k, keys.Bottom):
		l.vp.GotoBottom()
	}
	return l, nil, false
}

func (l *logModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	w, h := logViewSize(width, height)
	l.vp.Width = w
	l.vp.Height = h

	var body strings.Builder
	if len(l.entries) == 0 {
		body.WriteString(styles.FaintText.Render("No log entries yet"))
	}
	for i, e := range l.entries {
		if i > 0 {
			body.WriteByte('\n')
		}
		line := truncate(e.String(), w)
		switch {
		case e.IsProblem():
			body.WriteString(styles.DangerText.Render(line))
		case e.Level == "debug":
			body.WriteString(styles.FaintText.Render(line))
		default:
			body.WriteString(styles.Text.Render(line))
		}
	}
	atBottom := l.vp.AtBottom() || l.vp.TotalLineCount() == 0
	l.vp.SetContent(body.String())
	if atBottom {
		l.vp.GotoBottom()
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Log"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(truncateMiddle(l.path, w-6)))
	b.WriteString("\n\n")
	b.WriteString(l.vp.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k scroll · g/G top/bottom · esc close"))
	return placeModal(theme, width, height, w+6, b.String())
}
