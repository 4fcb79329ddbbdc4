package app

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/five82/streamcard/internal/config"
	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/persist"
	"github.com/five82/streamcard/internal/raster"
	"github.com/five82/streamcard/internal/render"
)

// sinkFor writes exports to the export dir and, when configured, uploads them
// to Spaces as well.
func sinkFor(cfg config.Config) (export.Sink, error) {
	dir := export.DirSink{Dir: cfg.ExportDir}
	if !cfg.Spaces.Enabled() {
		return dir, nil
	}
	spaces, err := export.NewSpacesSink(
		cfg.Spaces.Endpoint,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.CDNURL,
		cfg.Spaces.AccessKey,
		cfg.Spaces.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("init spaces upload: %w", err)
	}
	return export.MultiSink{dir, spaces}, nil
}

// Export renders the saved schedule without starting the editor.
func Export(ctx context.Context, s session, opts export.Options) (export.Result, error) {
	sink, err := sinkFor(s.cfg)
	if err != nil {
		return export.Result{}, err
	}

	data := s.data.Clone()
	if !data.HasImage() {
		rec, err := persist.LoadImage(ctx, s.store)
		switch {
		case err == nil:
			data.RestoreImage(rec.Data)
		case !errors.Is(err, kv.ErrNotFound):
			log.Warn().Err(err).Msg("restore image")
		}
	}

	var img image.Image
	if data.HasImage() {
		img, err = raster.DecodeDataURI(*data.BackgroundImage)
		if err != nil {
			log.Warn().Err(err).Msg("decode saved image, exporting without it")
			data.ClearImage()
			img = nil
		}
	}

	theme := render.NewThemeState(s.prefs.ThemeID, s.prefs.DarkMode).Current()
	card := raster.NewCard(render.Project(data, theme), img)

	res, err := export.NewExporter(sink).Export(ctx, card, data, opts)
	if err != nil {
		return res, fmt.Errorf("export %s: %w", res.Plan.Filename, err)
	}
	return res, nil
}
