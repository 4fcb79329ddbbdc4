package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	fontsOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

type faceKey struct {
	size float64
	bold bool
}

// painter draws in logical card coordinates scaled by the pixel ratio.
type painter struct {
	dst   *image.RGBA
	k     float64
	faces map[faceKey]font.Face
}

func newPainter(w, h int, ratio float64) (*painter, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	if ratio <= 0 {
		ratio = 1
	}
	pw := int(math.Round(float64(w) * ratio))
	ph := int(math.Round(float64(h) * ratio))
	return &painter{
		dst:   image.NewRGBA(image.Rect(0, 0, pw, ph)),
		k:     ratio,
		faces: map[faceKey]font.Face{},
	}, nil
}

func (p *painter) close() {
	for _, f := range p.faces {
		_ = f.Close()
	}
}

func (p *painter) px(v float64) int {
	return int(math.Round(v * p.k))
}

func (p *painter) rect(x, y, w, h float64) image.Rectangle {
	return image.Rect(p.px(x), p.px(y), p.px(x+w), p.px(y+h))
}

func (p *painter) fill(c color.Color) {
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// roundRect fills a rounded rectangle.
func (p *painter) roundRect(x, y, w, h, radius float64, c color.Color) {
	r := p.rect(x, y, w, h)
	if r.Empty() {
		return
	}
	bw, bh := float32(r.Dx()), float32(r.Dy())
	rad := float32(math.Min(radius*p.k, math.Min(float64(bw), float64(bh))/2))

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.MoveTo(rad, 0)
	z.LineTo(bw-rad, 0)
	z.QuadTo(bw, 0, bw, rad)
	z.LineTo(bw, bh-rad)
	z.QuadTo(bw, bh, bw-rad, bh)
	z.LineTo(rad, bh)
	z.QuadTo(0, bh, 0, bh-rad)
	z.LineTo(0, rad)
	z.QuadTo(0, 0, rad, 0)
	z.ClosePath()
	z.Draw(p.dst, r, image.NewUniform(c), image.Point{})
}

// borderRect fills a rounded rectangle with a border of width bw.
func (p *painter) borderRect(x, y, w, h, radius, bw float64, fillC, borderC color.Color) {
	p.roundRect(x, y, w, h, radius, borderC)
	p.roundRect(x+bw, y+bw, w-2*bw, h-2*bw, math.Max(radius-bw, 0), fillC)
}

// dots fills a dotted pattern across the whole canvas in one pass.
func (p *painter) dots(tile, radius float64, offsets [][2]float64, c color.Color) {
	b := p.dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	r := float32(radius * p.k)
	const kappa = 0.5523
	for ty := 0.0; ty*p.k < float64(b.Dy())+tile*p.k; ty += tile {
		for tx := 0.0; tx*p.k < float64(b.Dx())+tile*p.k; tx += tile {
			for _, o := range offsets {
				cx, cy := float32((tx+o[0])*p.k), float32((ty+o[1])*p.k)
				if cx-r < 0 || cy-r < 0 || cx+r > float32(b.Dx()) || cy+r > float32(b.Dy()) {
					continue
				}
				z.MoveTo(cx+r, cy)
				z.CubeTo(cx+r, cy+r*kappa, cx+r*kappa, cy+r, cx, cy+r)
				z.CubeTo(cx-r*kappa, cy+r, cx-r, cy+r*kappa, cx-r, cy)
				z.CubeTo(cx-r, cy-r*kappa, cx-r*kappa, cy-r, cx, cy-r)
				z.CubeTo(cx+r*kappa, cy-r, cx+r, cy-r*kappa, cx+r, cy)
				z.ClosePath()
			}
		}
	}
	z.Draw(p.dst, b, image.NewUniform(c), image.Point{})
}

func (p *painter) face(size float64, isBold bool) font.Face {
	key := faceKey{size: size * p.k, bold: isBold}
	if f, ok := p.faces[key]; ok {
		return f
	}
	src := regular
	if isBold {
		src = bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: key.size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		f = basicFallback()
	}
	p.faces[key] = f
	return f
}

// textWidth is the logical width of s.
func (p *painter) textWidth(s string, size float64, isBold bool) float64 {
	adv := font.MeasureString(p.face(size, isBold), s)
	return float64(adv) / 64 / p.k
}

// text draws s with its baseline at y.
func (p *painter) text(s string, x, y, size float64, isBold bool, c color.Color) {
	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(c),
		Face: p.face(size, isBold),
		Dot:  fixed.P(p.px(x), p.px(y)),
	}
	d.DrawString(s)
}

// centerText draws s centred on cx.
func (p *painter) centerText(s string, cx, y, size float64, isBold bool, c color.Color) {
	p.text(s, cx-p.textWidth(s, size, isBold)/2, y, size, isBold, c)
}

// fit shortens s with an ellipsis until it fits maxW.
func (p *painter) fit(s string, maxW, size float64, isBold bool) string {
	if p.textWidth(s, size, isBold) <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		cand := strings.TrimSpace(string(runes)) + "…"
		if p.textWidth(cand, size, isBold) <= maxW {
			return cand
		}
	}
	return ""
}

// pill draws a rounded label and returns its logical width.
func (p *painter) pill(label string, x, y, h, size float64, bg, fg color.Color) float64 {
	w := p.textWidth(label, size, true) + h
	p.roundRect(x, y, w, h, h/2, bg)
	p.text(label, x+h/2, y+h/2+size*0.36, size, true, fg)
	return w
}

// parseHex turns "#rrggbb" or "#rgb" into a colour. Bad input is magenta so
// it stands out.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{R: 255, B: 255, A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func basicFallback() font.Face {
	return basicfont.Face7x13
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
