// Package export turns the rendered card into a PNG or JPEG file.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/streamcard/internal/schedule"
)

// SettleDelay lets the last edit reach the surface before it is captured.
const SettleDelay = 200 * time.Millisecond

var (
	ErrPreviewNotFound  = errors.New("schedule preview not found, make sure the preview is visible")
	ErrExportInProgress = errors.New("an export is already running")
)

// Surface is something that can be rasterized.
type Surface interface {
	// HideChrome hides editing controls and returns a func that shows them
	// again.
	HideChrome() (restore func())
	Render(ctx context.Context, width, height int, pixelRatio float64) (image.Image, error)
}

// Result describes a finished export.
type Result struct {
	Plan      Plan
	Size      int
	Locations []string
}

// Exporter runs one export at a time.
type Exporter struct {
	sink   Sink
	settle time.Duration
	busy   atomic.Bool
}

// NewExporter builds an Exporter writing to sink.
func NewExporter(sink Sink) *Exporter {
	return &Exporter{sink: sink, settle: SettleDelay}
}

// InProgress reports whether an export is running.
func (e *Exporter) InProgress() bool {
	return e.busy.Load()
}

// Export rasterizes surface and hands the encoded bytes to the sink. A call
// made while another export runs fails with ErrExportInProgress.
func (e *Exporter) Export(ctx context.Context, surface Surface, d schedule.Data, opts Options) (Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Result{}, ErrExportInProgress
	}
	defer e.busy.Store(false)

	plan := NewPlan(opts, d)
	res := Result{Plan: plan}

	if surface == nil {
		return res, ErrPreviewNotFound
	}

	if e.settle > 0 {
		timer := time.NewTimer(e.settle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return res, ctx.Err()
		case <-timer.C:
		}
	}

	data, err := e.capture(ctx, surface, plan)
	if err != nil {
		log.Error().Err(err).Str("file", plan.Filename).Msg("export failed")
		return res, err
	}
	res.Size = len(data)

	if e.sink == nil {
		return res, errors.New("export: no sink configured")
	}
	locs, err := e.sink.Put(ctx, plan.Filename, plan.ContentType, data)
	res.Locations = locs
	if err != nil {
		log.Error().Err(err).Str("file", plan.Filename).Msg("export write failed")
		return res, fmt.Errorf("export: store %s: %w", plan.Filename, err)
	}
	log.Info().Str("file", plan.Filename).Int("bytes", len(data)).Strs("locations", locs).Msg("export finished")
	return res, nil
}

func (e *Exporter) capture(ctx context.Context, surface Surface, plan Plan) ([]byte, error) {
	restore := surface.HideChrome()
	if restore != nil {
		defer restore()
	}

	img, err := surface.Render(ctx, plan.Width, plan.Height, plan.PixelRatio)
	if err != nil {
		return nil, fmt.Errorf("export: render: %w", err)
	}
	return Encode(img, plan)
}

// Encode writes img in the plan's format.
func Encode(img image.Image, plan Plan) ([]byte, error) {
	var buf bytes.Buffer
	switch plan.Format {
	case FormatJPEG:
		q := plan.JPEGQuality
		if q <= 0 {
			q = JPEGQuality
		}
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("export: encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("export: encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// flatten composites img over white; JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
