// Package transform models the placement of the uploaded image: a free
// foreground layer that can be dragged, scaled, rotated and mirrored, or a
// canvas-filling background with a zoom and focal point.
package transform

import (
	"fmt"
	"math"
	"strconv"
)

// Foreground and background bounds.
const (
	MinScale           = 0.1
	MaxScale           = 3.0
	MinBackgroundScale = 0.5
	MaxBackgroundScale = 3.0
	ScaleStep          = 0.1
	MaxOffset          = 1000.0
	RotateStep         = 90.0
)

// Image is the foreground layer transform. X and Y are pixel offsets.
type Image struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	FlipX    bool    `json:"flipX"`
	FlipY    bool    `json:"flipY"`
}

// Background places the image as a canvas fill. Positions are percentages.
type Background struct {
	Scale     float64 `json:"scale"`
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
}

// DefaultImage is the untouched foreground transform.
func DefaultImage() Image {
	return Image{Scale: 1}
}

// DefaultBackground centres the image at its natural fill size.
func DefaultBackground() Background {
	return Background{Scale: 1, PositionX: 50, PositionY: 50}
}

// Affine is the composed transform: translate, then scale, then rotate, all
// about the element centre.
type Affine struct {
	TranslateX  float64
	TranslateY  float64
	ScaleX      float64
	ScaleY      float64
	RotationDeg float64
}

// Compose folds the discrete controls into an Affine. Mirroring is a negative
// scale on that axis.
func Compose(t Image) Affine {
	sx, sy := t.Scale, t.Scale
	if t.FlipX {
		sx = -sx
	}
	if t.FlipY {
		sy = -sy
	}
	return Affine{
		TranslateX:  t.X,
		TranslateY:  t.Y,
		ScaleX:      sx,
		ScaleY:      sy,
		RotationDeg: t.Rotation,
	}
}

// CSS renders the transform the way a browser would apply it.
func (a Affine) CSS() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s, %s) rotate(%sdeg)",
		num(a.TranslateX), num(a.TranslateY), num(a.ScaleX), num(a.ScaleY), num(a.RotationDeg))
}

// Matrix returns the row-major 2x3 matrix mapping element-local points to the
// parent, with the origin at (cx, cy):
// T(c) * T(translate) * S(scale) * R(rotation) * T(-c).
func (a Affine) Matrix(cx, cy float64) [6]float64 {
	rad := a.RotationDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	// S * R
	m00 := a.ScaleX * cos
	m01 := -a.ScaleX * sin
	m10 := a.ScaleY * sin
	m11 := a.ScaleY * cos

	tx := cx + a.TranslateX - (m00*cx + m01*cy)
	ty := cy + a.TranslateY - (m10*cx + m11*cy)
	return [6]float64{m00, m01, tx, m10, m11, ty}
}

// RotateBy adds delta degrees and wraps into [0, 360).
func RotateBy(t Image, delta float64) Image {
	t.Rotation = wrapDegrees(t.Rotation + delta)
	return t
}

// SetRotation sets an absolute rotation, wrapped into [0, 360).
func SetRotation(t Image, deg float64) Image {
	t.Rotation = wrapDegrees(deg)
	return t
}

// Flip mirrors the image on one axis.
func Flip(t Image, horizontal bool) Image {
	if horizontal {
		t.FlipX = !t.FlipX
	} else {
		t.FlipY = !t.FlipY
	}
	return t
}

// SetScale clamps scale into the foreground bounds.
func SetScale(t Image, scale float64) Image {
	t.Scale = clamp(roundStep(scale), MinScale, MaxScale)
	return t
}

// StepScale moves the scale by n steps.
func StepScale(t Image, n int) Image {
	return SetScale(t, t.Scale+float64(n)*ScaleStep)
}

// SetPosition clamps the pixel offset into the practical range.
func SetPosition(t Image, x, y float64) Image {
	t.X = clamp(x, -MaxOffset, MaxOffset)
	t.Y = clamp(y, -MaxOffset, MaxOffset)
	return t
}

// Clamp pulls every field of t back into bounds.
func (t Image) Clamp() Image {
	if t.Scale == 0 {
		t.Scale = 1
	}
	t.Scale = clamp(t.Scale, MinScale, MaxScale)
	t = SetPosition(t, t.X, t.Y)
	t.Rotation = wrapDegrees(t.Rotation)
	return t
}

// SetBackgroundScale clamps scale into the background bounds.
func SetBackgroundScale(b Background, scale float64) Background {
	b.Scale = clamp(roundStep(scale), MinBackgroundScale, MaxBackgroundScale)
	return b
}

// StepBackgroundScale moves the fill zoom by n steps.
func StepBackgroundScale(b Background, n int) Background {
	return SetBackgroundScale(b, b.Scale+float64(n)*ScaleStep)
}

// SetBackgroundPosition clamps the focal point into [0, 100] percent.
func SetBackgroundPosition(b Background, x, y float64) Background {
	b.PositionX = clamp(x, 0, 100)
	b.PositionY = clamp(y, 0, 100)
	return b
}

// Clamp pulls every field of b back into bounds.
func (b Background) Clamp() Background {
	if b.Scale == 0 {
		b.Scale = 1
	}
	b.Scale = clamp(b.Scale, MinBackgroundScale, MaxBackgroundScale)
	return SetBackgroundPosition(b, b.PositionX, b.PositionY)
}

// Preset is a named background focal point.
type Preset struct {
	Name string
	X, Y float64
}

// Presets lists the quick focal points offered for full-background mode.
var Presets = []Preset{
	{Name: "Top Left", X: 0, Y: 0},
	{Name: "Top Right", X: 100, Y: 0},
	{Name: "Center", X: 50, Y: 50},
	{Name: "Bottom", X: 50, Y: 100},
}

// ApplyPreset moves the focal point to preset i. Out of range is a no-op.
func ApplyPreset(b Background, i int) Background {
	if i < 0 || i >= len(Presets) {
		return b
	}
	return SetBackgroundPosition(b, Presets[i].X, Presets[i].Y)
}

func wrapDegrees(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 || r == 0 {
		r = 0
	}
	return r
}

func roundStep(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func num(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
