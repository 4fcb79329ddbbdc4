package export

import (
	"fmt"
	"strings"

	"github.com/five82/streamcard/internal/schedule"
)

// Format is the output image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// Quality picks the pixel ratio.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

// Canvas size and encoder settings.
const (
	Width           = 1600
	Height          = 900
	HighPixelRatio  = 1.2
	JPEGQuality     = 95
	filenamePattern = "stream-schedule-%s-to-%s.%s"
)

// Options are what the user picks in the export dialog.
type Options struct {
	Format  Format
	Quality Quality
}

// DefaultOptions is PNG at standard quality.
func DefaultOptions() Options {
	return Options{Format: FormatPNG, Quality: QualityStandard}
}

// ParseFormat accepts png, jpeg and jpg in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unknown export format %q (want png or jpeg)", s)
}

// ParseQuality accepts standard and high.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return QualityStandard, nil
	case "high":
		return QualityHigh, nil
	}
	return "", fmt.Errorf("unknown export quality %q (want standard or high)", s)
}

// Plan is the concrete encoding job for one export.
type Plan struct {
	Format      Format
	Filename    string
	ContentType string
	Width       int
	Height      int
	PixelRatio  float64
	JPEGQuality int
}

// PixelWidth is the rendered width in pixels.
func (p Plan) PixelWidth() int { return int(float64(p.Width)*p.PixelRatio + 0.5) }

// PixelHeight is the rendered height in pixels.
func (p Plan) PixelHeight() int { return int(float64(p.Height)*p.PixelRatio + 0.5) }

// NewPlan resolves opts against the schedule's week.
func NewPlan(opts Options, d schedule.Data) Plan {
	format := opts.Format
	if format != FormatJPEG {
		format = FormatPNG
	}
	p := Plan{
		Format:      format,
		Filename:    fmt.Sprintf(filenamePattern, d.StartDate, d.EndDate, format),
		ContentType: "image/png",
		Width:       Width,
		Height:      Height,
		PixelRatio:  1,
	}
	if opts.Quality == QualityHigh {
		p.PixelRatio = HighPixelRatio
	}
	if format == FormatJPEG {
		p.ContentType = "image/jpeg"
		p.JPEGQuality = JPEGQuality
	}
	return p
}
