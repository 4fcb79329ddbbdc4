package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/render"
	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/transform"
)

// handlePreviewKey runs the image transform controls.
func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.data.HasImage() {
		if isImageKey(msg, m.keys) {
			m.setFlash("Load an image in the editor first", false)
		}
		return m, nil
	}
	if m.exporting {
		return m, nil
	}

	step := imageNudge
	if strings.HasPrefix(msg.String(), "shift+") {
		step = imageNudgeLarge
	}
	full := m.data.TransparentBackground

	var fn func(d *schedule.Data)
	switch {
	case key.Matches(msg, m.keys.MoveLeft):
		fn = moveImage(full, -step, 0)
	case key.Matches(msg, m.keys.MoveRight):
		fn = moveImage(full, step, 0)
	case key.Matches(msg, m.keys.MoveUp):
		fn = moveImage(full, 0, -step)
	case key.Matches(msg, m.keys.MoveDown):
		fn = moveImage(full, 0, step)
	case key.Matches(msg, m.keys.ScaleUp):
		fn = scaleImage(full, 1)
	case key.Matches(msg, m.keys.ScaleDown):
		fn = scaleImage(full, -1)
	case key.Matches(msg, m.keys.RotateCW):
		fn = foregroundOnly(full, func(t transform.Image) transform.Image { return transform.RotateBy(t, transform.RotateStep) })
	case key.Matches(msg, m.keys.RotateCCW):
		fn = foregroundOnly(full, func(t transform.Image) transform.Image { return transform.RotateBy(t, -transform.RotateStep) })
	case key.Matches(msg, m.keys.FlipX):
		fn = foregroundOnly(full, func(t transform.Image) transform.Image { return transform.Flip(t, true) })
	case key.Matches(msg, m.keys.FlipY):
		fn = foregroundOnly(full, func(t transform.Image) transform.Image { return transform.Flip(t, false) })
	case key.Matches(msg, m.keys.Reset):
		fn = func(d *schedule.Data) {
			if full {
				d.BackgroundTransform = transform.DefaultBackground()
			} else {
				d.ImageTransform = transform.DefaultImage()
			}
		}
	case key.Matches(msg, m.keys.Preset):
		if !full {
			m.setFlash("Focal presets apply to the full background", false)
			return m, nil
		}
		i := int(msg.String()[0] - '1')
		fn = func(d *schedule.Data) { d.BackgroundTransform = transform.ApplyPreset(d.BackgroundTransform, i) }
	}
	if fn == nil {
		return m, nil
	}
	return m, m.mutate(func(d *schedule.Data) error { fn(d); return nil })
}

func isImageKey(msg tea.KeyMsg, k keyMap) bool {
	return key.Matches(msg, k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown, k.ScaleUp, k.ScaleDown,
		k.RotateCW, k.RotateCCW, k.FlipX, k.FlipY, k.Reset, k.Preset)
}

func moveImage(full bool, dx, dy float64) func(d *schedule.Data) {
	return func(d *schedule.Data) {
		if full {
			// Moving the focal point right shows more of the image's right side.
			k := focalNudge / imageNudge
			b := d.BackgroundTransform
			d.BackgroundTransform = transform.SetBackgroundPosition(b, b.PositionX+dx*k, b.PositionY+dy*k)
			return
		}
		t := d.ImageTransform
		d.ImageTransform = transform.SetPosition(t, t.X+dx, t.Y+dy)
	}
}

func scaleImage(full bool, n int) func(d *schedule.Data) {
	return func(d *schedule.Data) {
		if full {
			d.BackgroundTransform = transform.StepBackgroundScale(d.BackgroundTransform, n)
			return
		}
		d.ImageTransform = transform.StepScale(d.ImageTransform, n)
	}
}

func foregroundOnly(full bool, fn func(transform.Image) transform.Image) func(d *schedule.Data) {
	if full {
		return nil
	}
	return func(d *schedule.Data) { d.ImageTransform = fn(d.ImageTransform) }
}

// handleMouse drags the foreground image on the preview.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease {
		m.endDrag()
		return m, nil
	}
	if m.tab != TabPreview || m.modal != nil || m.showHelp {
		return m, nil
	}
	px, py, inside := m.canvasPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		if !transform.DragAllowed(m.data.HasImage(), m.exporting, m.data.TransparentBackground) {
			return m, nil
		}
		m.drag.Start(px, py, m.data.ImageTransform)
	case tea.MouseActionMotion:
		t, ok := m.drag.Apply(m.data.ImageTransform, px, py)
		if !ok {
			return m, nil
		}
		m.data.ImageTransform = t
	}
	return m, nil
}

// canvasPoint maps a terminal cell to card pixels.
func (m Model) canvasPoint(x, y int) (px, py float64, inside bool) {
	top := 2
	w := m.width
	h := m.height - chromeLines
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	px = float64(x) * export.Width / float64(w)
	py = float64(y-top) * export.Height / float64(h)
	inside = y >= top && y < top+h
	return px, py, inside
}

// renderPreview draws the card as text: title, the week and the credits.
func (m Model) renderPreview(height int) string {
	p := m.projection()
	th := p.Theme
	styles := m.theme.Styles()

	var lines []string
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true).Render(p.Title)
	lines = append(lines, title+"  "+styles.MutedText.Render(p.DateRange), "")

	for _, day := range p.Days {
		lines = append(lines, m.renderDayLine(th, day))
	}
	lines = append(lines, "")

	var credits []string
	if p.Artist != "" {
		credits = append(credits, styles.Text.Bold(true).Render(p.Artist))
	}
	for _, h := range p.Handles {
		credits = append(credits, styles.MutedText.Render(string(h.Platform)+" ")+styles.Text.Render(h.Handle))
	}
	if len(credits) > 0 {
		lines = append(lines, strings.Join(credits, "  ·  "))
	}

	side := "right"
	if p.ScheduleFirst {
		side = "left"
	}
	lines = append(lines, styles.FaintText.Render("schedule on the "+side+" · "+th.Name))
	lines = append(lines, m.renderImageLine(p))

	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDayLine(th render.Theme, day render.DayView) string {
	styles := m.theme.Styles()
	bg, fg := th.ChipColor(day.ChipColor)
	chip := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true).
		Padding(0, 1).
		Render(day.Abbrev + " " + day.Date)

	switch day.Layout {
	case render.LayoutEmpty:
		return chip + " " + styles.FaintText.Render(render.EmptyText)
	case render.LayoutPair:
		parts := make([]string, 0, len(day.Cards))
		for _, c := range day.Cards {
			parts = append(parts, m.renderCard(th, c, true))
		}
		return chip + " " + strings.Join(parts, styles.FaintText.Render(" │ "))
	default:
		return chip + " " + m.renderCard(th, day.Cards[0], false)
	}
}

func (m Model) renderCard(th render.Theme, c render.Card, compact bool) string {
	styles := m.theme.Styles()
	if c.Kind == render.CardOffline {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(th.Primary)).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 1).
			Render(c.OfflineText)
	}

	titleWidth := 28
	if compact {
		titleWidth = 16
	}
	parts := []string{styles.Text.Bold(true).Render(truncate(c.Title, titleWidth))}
	if !compact && c.Subtitle != "" {
		parts = append(parts, styles.MutedText.Render(truncate(c.Subtitle, 24)))
	}
	for _, b := range c.Badges {
		bg, fg := th.BadgeColor(b.ColorSlot)
		label := b.Label
		if b.DayLetter != "" {
			label += " (" + b.DayLetter + ")"
		}
		parts = append(parts, lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(fg)).
			Render(" "+label+" "))
	}
	if !compact {
		if c.MemberOnly {
			parts = append(parts, styles.WarningText.Render("MEMBER ONLY"))
		}
		for _, t := range c.Tags {
			parts = append(parts, lipgloss.NewStyle().
				Foreground(lipgloss.Color(th.TagColor(t.Role))).
				Bold(true).
				Render("#"+t.Label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderImageLine(p render.Projection) string {
	styles := m.theme.Styles()
	switch p.Image.Mode {
	case render.ImageForeground:
		hint := "drag or use arrows +/- r/R f/F 0"
		return styles.MutedText.Render("image: ") + styles.Text.Render(p.Image.CSS) + "  " + styles.FaintText.Render(hint)
	case render.ImageBackground:
		hint := "arrows move focus · +/- zoom · 1-4 presets · 0 reset"
		return styles.MutedText.Render("background: ") +
			styles.Text.Render(fmt.Sprintf("size %s · position %s", p.Image.Size, p.Image.Position)) +
			"  " + styles.FaintText.Render(hint)
	default:
		return styles.FaintText.Render("no image")
	}
}
