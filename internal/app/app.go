package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/streamcard/internal/config"
	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/logging"
	"github.com/five82/streamcard/internal/persist"
	"github.com/five82/streamcard/internal/prefs"
	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/state"
	"github.com/five82/streamcard/internal/ui"
)

// Options configure a streamcard run.
type Options struct {
	ConfigPath string
	EnvFile    string // empty loads ./.env when present
	// Export switches to a headless export of the saved schedule.
	Export  bool
	Format  export.Format
	Quality export.Quality
}

// session is everything loaded before the UI or an export starts.
type session struct {
	cfg   config.Config
	store kv.Store
	prefs prefs.Prefs
	data  schedule.Data
}

// Run boots streamcard until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closer, err := logging.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	s, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.store.Close()

	exportOpts := export.Options{Format: opts.Format, Quality: opts.Quality}
	defaults := export.DefaultOptions()
	if exportOpts.Format == "" {
		exportOpts.Format = defaults.Format
	}
	if exportOpts.Quality == "" {
		exportOpts.Quality = defaults.Quality
	}

	if opts.Export {
		res, err := Export(ctx, s, exportOpts)
		if err != nil {
			return err
		}
		for _, loc := range res.Locations {
			fmt.Println(loc)
		}
		return nil
	}
	return runUI(ctx, s, exportOpts)
}

func open(ctx context.Context, cfg config.Config) (session, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return session{}, err
	}

	data, err := persist.LoadSchedule(ctx, store, schedule.Defaults(), time.Now())
	switch {
	case errors.Is(err, persist.ErrCorruptSnapshot):
		log.Warn().Err(err).Str("key", persist.DataKey).Msg("saved schedule is corrupt, starting from defaults")
	case err != nil:
		log.Error().Err(err).Str("key", persist.DataKey).Msg("load schedule")
	}

	return session{
		cfg:   cfg,
		store: store,
		prefs: prefs.Load(ctx, store),
		data:  data,
	}, nil
}

func openStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		store, err := kv.NewRedisStore(ctx, kv.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return store, nil
	default:
		store, err := kv.NewFileStore(cfg.DataDir, kv.DefaultQuota)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nil
	}
}

func runUI(ctx context.Context, s session, exportOpts export.Options) error {
	sink, err := sinkFor(s.cfg)
	if err != nil {
		return err
	}

	status := &state.Store{}
	saver := persist.NewSaver(s.store, status, s.cfg.SaveDebounce)
	saver.Start(ctx)

	log.Info().
		Str("storage", s.cfg.Storage).
		Str("week", s.data.StartDate).
		Str("theme", s.prefs.ThemeID).
		Msg("starting editor")

	final, runErr := ui.Run(ui.Options{
		Context:  ctx,
		Data:     s.data,
		Prefs:    s.prefs,
		Store:    s.store,
		Saver:    saver,
		Status:   status,
		Exporter: export.NewExporter(sink),
		Export:   exportOpts,
		LogFile:  s.cfg.LogFile,
	})

	// Quitting inside the debounce window must not lose the last edit.
	saver.Schedule(final)
	if err := saver.Flush(ctx); err != nil {
		log.Error().Err(err).Msg("final save failed")
	}
	// A signal cancels ctx; the program reports that as killed.
	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("run editor: %w", runErr)
	}
	return nil
}
