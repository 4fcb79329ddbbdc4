// Package raster draws a render.Projection into an image.
package raster

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/render"
	"github.com/five82/streamcard/internal/schedule"
)

// Logical layout of the 1600x900 card.
const (
	canvasW   = 1600.0
	canvasH   = 900.0
	columnW   = 720.0
	margin    = 20.0
	rowTop    = 150.0
	rowH      = 96.0
	rowGap    = 8.0
	dotTile   = 60.0
	dotRadius = 6.0
	chromeR   = 18.0
)

var dotOffsets = [][2]float64{{0, 0}, {30, 0}, {15, 30}, {45, 30}}

// Card is a drawable schedule card. It is safe for concurrent use.
type Card struct {
	mu     sync.Mutex
	proj   render.Projection
	img    image.Image
	chrome bool
}

var _ export.Surface = (*Card)(nil)

// NewCard builds a card with its chrome visible. img may be nil.
func NewCard(p render.Projection, img image.Image) *Card {
	return &Card{proj: p, img: img, chrome: true}
}

// HideChrome hides the editing controls until the returned func runs.
func (c *Card) HideChrome() func() {
	c.mu.Lock()
	prev := c.chrome
	c.chrome = false
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.chrome = prev
		c.mu.Unlock()
	}
}

// ChromeVisible reports whether the editing controls are drawn.
func (c *Card) ChromeVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chrome
}

// Render draws the card at width x height logical pixels times pixelRatio.
func (c *Card) Render(ctx context.Context, width, height int, pixelRatio float64) (image.Image, error) {
	c.mu.Lock()
	proj, img, chrome := c.proj, c.img, c.chrome
	c.mu.Unlock()

	if width <= 0 || height <= 0 {
		width, height = int(canvasW), int(canvasH)
	}
	p, err := newPainter(width, height, pixelRatio)
	if err != nil {
		return nil, err
	}
	defer p.close()
	// Layout is authored at 1600x900; other sizes scale uniformly.
	p.k *= math.Min(float64(width)/canvasW, float64(height)/canvasH)

	th := proj.Theme
	drawBackground(p, proj, img)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	colX := canvasW - columnW - margin
	infoX := margin
	if proj.ScheduleFirst {
		colX = margin
		infoX = columnW + 2*margin
	}
	drawHeader(p, proj, colX)
	for i, day := range proj.Days {
		drawDay(p, th, day, colX, rowTop+float64(i)*(rowH+rowGap))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	drawCredits(p, proj, infoX, canvasW-columnW-3*margin)
	if chrome {
		drawChrome(p, th)
	}
	return p.dst, nil
}

func drawBackground(p *painter, proj render.Projection, img image.Image) {
	th := proj.Theme
	if !proj.Transparent {
		p.fill(parseHex(th.Surface))
		p.dots(dotTile, dotRadius, dotOffsets, parseHex(th.Stripe1))
	}
	if img == nil {
		return
	}
	switch proj.Image.Mode {
	case render.ImageBackground:
		drawBackgroundFill(p, img, proj.Image)
	case render.ImageForeground:
		drawForeground(p, img, proj)
	}
}

// drawBackgroundFill places img like CSS background-size: N% with
// background-position: X% Y%.
func drawBackgroundFill(p *painter, img image.Image, layer render.ImageLayer) {
	sb := img.Bounds()
	if sb.Empty() {
		return
	}
	bg := layer.Background
	w := canvasW * bg.Scale
	h := w * float64(sb.Dy()) / float64(sb.Dx())
	left := (canvasW - w) * bg.PositionX / 100
	top := (canvasH - h) * bg.PositionY / 100

	sx := w / float64(sb.Dx()) * p.k
	sy := h / float64(sb.Dy()) * p.k
	m := f64.Aff3{
		sx, 0, left*p.k - float64(sb.Min.X)*sx,
		0, sy, top*p.k - float64(sb.Min.Y)*sy,
	}
	draw.CatmullRom.Transform(p.dst, m, img, sb, draw.Over, nil)
}

// drawForeground fits img into the half of the card not taken by the
// schedule and applies the image transform about its centre.
func drawForeground(p *painter, img image.Image, proj render.Projection) {
	sb := img.Bounds()
	if sb.Empty() {
		return
	}
	areaX, areaW := 0.0, canvasW-columnW-margin
	if proj.ScheduleFirst {
		areaX = columnW + 2*margin
		areaW = canvasW - areaX
	}
	fitK := math.Min(areaW/float64(sb.Dx()), canvasH/float64(sb.Dy()))
	fw, fh := float64(sb.Dx())*fitK, float64(sb.Dy())*fitK
	ox := areaX + (areaW-fw)/2
	oy := (canvasH - fh) / 2

	m := proj.Image.Affine.Matrix(ox+fw/2, oy+fh/2)
	a, b, c := m[0]*fitK, m[1]*fitK, m[0]*ox+m[1]*oy+m[2]
	d, e, f := m[3]*fitK, m[4]*fitK, m[3]*ox+m[4]*oy+m[5]
	// Source pixels start at sb.Min.
	c -= a*float64(sb.Min.X) + b*float64(sb.Min.Y)
	f -= d*float64(sb.Min.X) + e*float64(sb.Min.Y)

	k := p.k
	draw.CatmullRom.Transform(p.dst, f64.Aff3{a * k, b * k, c * k, d * k, e * k, f * k}, img, sb, draw.Over, nil)
}

func drawHeader(p *painter, proj render.Projection, colX float64) {
	th := proj.Theme
	cx := colX + columnW/2
	p.centerText(p.fit(proj.Title, columnW, 60, true), cx, 86, 60, true, parseHex(th.Primary))
	if proj.DateRange != "" {
		p.centerText(proj.DateRange, cx, 126, 26, true, parseHex(th.TextSecondary))
	}
}

func drawDay(p *painter, th render.Theme, day render.DayView, x, y float64) {
	cardX, cardY := x+16, y+6
	cardW, cardH := columnW-16, rowH-6

	offlineSingle := day.Layout == render.LayoutSingle && day.Cards[0].Kind == render.CardOffline
	if offlineSingle {
		p.roundRect(cardX, cardY, cardW, cardH, 10, parseHex(th.Primary))
	} else {
		p.borderRect(cardX, cardY, cardW, cardH, 10, 3, parseHex(th.CardBackground), parseHex(th.CardBorder))
	}

	// Date tile.
	tileX, tileY := cardX+14, cardY+(cardH-48)/2
	p.roundRect(tileX, tileY, 48, 48, 8, color.White)
	p.centerText(day.Date, tileX+24, tileY+33, 26, true, parseHex(th.Primary))

	contentX := tileX + 62
	contentW := cardX + cardW - contentX - 10

	switch day.Layout {
	case render.LayoutEmpty:
		p.text(render.EmptyText, contentX, cardY+cardH/2+11, 30, true, parseHex(th.TextPrimary))
	case render.LayoutSingle:
		card := day.Cards[0]
		if card.Kind == render.CardOffline {
			drawOffline(p, card.OfflineText, contentX, cardY, contentW, cardH, 40)
		} else {
			drawStream(p, th, card, contentX, cardY, contentW, cardH, false)
		}
	case render.LayoutPair:
		half := (contentW - 8) / 2
		for i, card := range day.Cards {
			cx := contentX + float64(i)*(half+8)
			if card.Kind == render.CardOffline {
				p.roundRect(cx, cardY+6, half, cardH-12, 8, parseHex(th.Primary))
				drawOffline(p, card.OfflineText, cx, cardY+6, half, cardH-12, 24)
				continue
			}
			drawStream(p, th, card, cx, cardY, half, cardH, true)
		}
	}

	// Day chip overlaps the card's top-left corner.
	bg, fg := th.ChipColor(day.ChipColor)
	p.pill(day.Abbrev, x, y, 26, 15, parseHex(bg), parseHex(fg))
}

func drawOffline(p *painter, text string, x, y, w, h, size float64) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	faint := withAlpha(white, 40)
	small := size / 2.5
	step := p.textWidth(text, small, true) + 12
	for row := 0.0; row < 3; row++ {
		offset := math.Mod(row*step/2, step)
		for cx := x - offset; cx < x+w-step; cx += step {
			if cx < x {
				continue
			}
			p.text(text, cx, y+small+4+row*(h/3), small, true, faint)
		}
	}
	p.centerText(p.fit(text, w-12, size, true), x+w/2, y+h/2+size*0.36, size, true, white)
}

func drawStream(p *painter, th render.Theme, card render.Card, x, y, w, h float64, compact bool) {
	titleC, subC := parseHex(th.TextPrimary), parseHex(th.TextSecondary)
	if card.MemberOnly {
		titleC = subC
	}

	if compact {
		p.text(p.fit(card.Title, w-8, 20, true), x+4, y+26, 20, true, titleC)
		p.text(p.fit(card.Subtitle, w-8, 14, false), x+4, y+44, 14, false, subC)
		if len(card.Badges) > 0 {
			bw := (w - 8) / float64(len(card.Badges))
			for i, b := range card.Badges {
				drawBadge(p, th, b, x+4+float64(i)*bw, y+54, bw-4, 20, 10)
			}
		}
		return
	}

	badgeW := 170.0
	textW := w - badgeW - 12
	p.text(p.fit(card.Title, textW, 26, true), x, y+32, 26, true, titleC)
	p.text(p.fit(card.Subtitle, textW, 17, false), x, y+54, 17, false, subC)

	tx := x
	if card.MemberOnly {
		tx += p.pill("MEMBER ONLY", tx, y+62, 20, 11, parseHex(th.TextSecondary), color.White) + 6
	}
	for _, tag := range card.Tags {
		if tx > x+textW-40 {
			break
		}
		tx += p.pill(p.fit(tag.Label, x+textW-tx-20, 11, true), tx, y+62, 20, 11, parseHex(th.TagColor(tag.Role)), color.White) + 6
	}

	for i, b := range card.Badges {
		drawBadge(p, th, b, x+w-badgeW, y+8+float64(i)*26, badgeW, 22, 12)
	}
}

func drawBadge(p *painter, th render.Theme, b render.Badge, x, y, w, h, size float64) {
	bg, fg := th.BadgeColor(b.ColorSlot)
	p.roundRect(x, y, w, h, h/2, parseHex(bg))
	label := b.Label
	if b.DayLetter != "" {
		label += " (" + b.DayLetter + ")"
	}
	p.centerText(p.fit(label, w-8, size, true), x+w/2, y+h/2+size*0.36, size, true, parseHex(fg))
}

func drawCredits(p *painter, proj render.Projection, x, w float64) {
	th := proj.Theme
	y := canvasH - margin
	panel := withAlpha(parseHex(th.CardBackground), 220)
	text := parseHex(th.TextPrimary)

	lines := len(proj.Handles)
	if proj.Artist != "" {
		lines++
	}
	if lines == 0 {
		return
	}
	const lineH = 30.0
	panelH := float64(lines)*lineH + 12
	p.roundRect(x, y-panelH, math.Min(w, 360), panelH, 10, panel)

	ly := y - panelH + 6 + 22
	for _, h := range proj.Handles {
		p.roundRect(x+12, ly-14, 16, 16, 8, platformColor(h.Platform))
		p.text(p.fit(string(h.Platform)+"  "+h.Handle, math.Min(w, 360)-48, 18, false), x+36, ly, 18, false, text)
		ly += lineH
	}
	if proj.Artist != "" {
		p.text(p.fit(proj.Artist, math.Min(w, 360)-24, 18, true), x+12, ly, 18, true, parseHex(th.TextSecondary))
	}
}

func platformColor(pl schedule.Platform) color.RGBA {
	switch pl {
	case schedule.PlatformYouTube:
		return parseHex("#ff0000")
	case schedule.PlatformTwitch:
		return parseHex("#9146ff")
	case schedule.PlatformTwitter:
		return parseHex("#1d9bf0")
	case schedule.PlatformDiscord:
		return parseHex("#5865f2")
	case schedule.PlatformTikTok:
		return parseHex("#111111")
	}
	return parseHex("#888888")
}

// drawChrome marks the settings and export buttons; they are hidden while
// exporting.
func drawChrome(p *painter, th render.Theme) {
	btn := parseHex(th.ButtonColor)
	for i := 0; i < 2; i++ {
		cx := canvasW - margin - chromeR - float64(i)*(2*chromeR+10)
		p.roundRect(cx-chromeR, margin, 2*chromeR, 2*chromeR, chromeR, btn)
		p.roundRect(cx-6, margin+chromeR-6, 12, 12, 6, color.White)
	}
}
