package ui

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/logtail"
	"github.com/five82/streamcard/internal/persist"
	"github.com/five82/streamcard/internal/prefs"
	"github.com/five82/streamcard/internal/raster"
	"github.com/five82/streamcard/internal/schedule"
)

// storageTimeout bounds background reads and writes started by the UI.
const storageTimeout = 5 * time.Second

// logLines is how much of the log file the log view loads.
const logLines = 300

// Messages

type tickMsg time.Time

type textSubmittedMsg struct {
	apply func(m *Model, text string) tea.Cmd
	value string
}

type exportRequestMsg struct {
	opts export.Options
}

type exportDoneMsg struct {
	res export.Result
	err error
}

type imageLoadedMsg struct {
	path string
	file raster.ImageFile
	err  error
}

type imageSavedMsg struct {
	err error
}

type imageDecodedMsg struct {
	img image.Image
	err error
}

type imageRestoredMsg struct {
	rec persist.ImageRecord
	img image.Image
	err error
}

type prefsSavedMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := raster.ReadImageFile(path)
		return imageLoadedMsg{path: path, file: f, err: err}
	}
}

func saveImageCmd(ctx context.Context, store kv.Store, rec persist.ImageRecord) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, storageTimeout)
		defer cancel()
		return imageSavedMsg{err: persist.SaveImage(ctx, store, rec)}
	}
}

func clearImageCmd(ctx context.Context, store kv.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, storageTimeout)
		defer cancel()
		return imageSavedMsg{err: persist.ClearImage(ctx, store)}
	}
}

func decodeImageCmd(dataURI string) tea.Cmd {
	return func() tea.Msg {
		img, err := raster.DecodeDataURI(dataURI)
		return imageDecodedMsg{img: img, err: err}
	}
}

// restoreImageCmd reads the last uploaded image. Any failure is reported in
// the message and ignored by the model.
func restoreImageCmd(ctx context.Context, store kv.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, storageTimeout)
		defer cancel()
		rec, err := persist.LoadImage(ctx, store)
		if err != nil {
			return imageRestoredMsg{err: err}
		}
		img, err := raster.DecodeDataURI(rec.Data)
		if err != nil {
			return imageRestoredMsg{err: err}
		}
		return imageRestoredMsg{rec: rec, img: img}
	}
}

func savePrefsCmd(ctx context.Context, store kv.Store, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, storageTimeout)
		defer cancel()
		return prefsSavedMsg{err: prefs.Save(ctx, store, p)}
	}
}

func exportCmd(ctx context.Context, e *export.Exporter, surface export.Surface, d schedule.Data, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		res, err := e.Export(ctx, surface, d, opts)
		return exportDoneMsg{res: res, err: err}
	}
}

type logsLoadedMsg struct {
	path    string
	entries []logtail.Entry
	err     error
}

func logsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logLines)
		return logsLoadedMsg{path: path, entries: entries, err: err}
	}
}
