package ui

import (
	"context"
	"errors"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/five82/streamcard/internal/export"
	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/persist"
	"github.com/five82/streamcard/internal/prefs"
	"github.com/five82/streamcard/internal/raster"
	"github.com/five82/streamcard/internal/render"
	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/state"
	"github.com/five82/streamcard/internal/transform"
)

// Tab is the active pane.
type Tab int

const (
	TabEditor Tab = iota
	TabPreview
)

func (t Tab) String() string {
	if t == TabPreview {
		return "Preview"
	}
	return "Editor"
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Data     schedule.Data
	Prefs    prefs.Prefs
	Store    kv.Store
	Saver    *persist.Saver
	Status   *state.Store
	Exporter *export.Exporter
	Export   export.Options
	PollTick time.Duration
	LogFile  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    kv.Store
	saver    *persist.Saver
	status   *state.Store
	exporter *export.Exporter
	pollTick time.Duration
	logFile  string
	keys     keyMap

	// Document state
	data      schedule.Data
	image     image.Image
	imageName string
	themes    render.ThemeState

	// UI state
	theme    Theme
	tab      Tab
	width    int
	height   int
	ready    bool
	cursor   int
	day      int
	showHelp bool
	modal    Modal
	drag     transform.Drag

	exportOpts export.Options
	exporting  bool

	// Status
	snapshot    state.Snapshot
	quotaShown  bool
	flash       string
	flashDanger bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	status := opts.Status
	if status == nil && opts.Saver != nil {
		status = opts.Saver.Status()
	}
	exportOpts := opts.Export
	if exportOpts.Format == "" {
		exportOpts = export.DefaultOptions()
	}
	themes := render.NewThemeState(opts.Prefs.ThemeID, opts.Prefs.DarkMode)

	return Model{
		ctx:        ctx,
		store:      opts.Store,
		saver:      opts.Saver,
		status:     status,
		exporter:   opts.Exporter,
		pollTick:   pollTick,
		keys:       DefaultKeyMap(),
		data:       opts.Data.Clone(),
		themes:     themes,
		theme:      ThemeFor(themes.Current()),
		exportOpts: exportOpts,
		logFile:    opts.LogFile,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.data.HasImage() {
		cmds = append(cmds, decodeImageCmd(*m.data.BackgroundImage))
	} else if m.store != nil {
		cmds = append(cmds, restoreImageCmd(m.ctx, m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		if m.status != nil {
			m.applySnapshot(m.status.Snapshot())
		}
		return m, tickCmd(m.pollTick)

	case textSubmittedMsg:
		if msg.apply == nil {
			return m, nil
		}
		cmd := msg.apply(&m, msg.value)
		return m, cmd

	case exportRequestMsg:
		return m.startExport(msg.opts)

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case imageLoadedMsg:
		return m.handleImageLoaded(msg)

	case imageSavedMsg:
		m.handleImageSaved(msg)
		return m, nil

	case imageDecodedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("decode stored image")
			m.setFlash("Stored image could not be decoded", true)
			return m, nil
		}
		m.image = msg.img
		return m, nil

	case imageRestoredMsg:
		return m.handleImageRestored(msg)

	case prefsSavedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("save theme preference")
		}
		return m, nil

	case logsLoadedMsg:
		if msg.err != nil {
			m.setFlash("Could not read log: "+msg.err.Error(), true)
			return m, nil
		}
		m.endDrag()
		m.modal = newLogModal(msg.path, msg.entries, m.width, m.height)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.endDrag()
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.endDrag()
		if m.tab == TabEditor {
			m.tab = TabPreview
		} else {
			m.tab = TabEditor
		}
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.endDrag()
		m.modal = newExportModal(m.exportOpts)
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		if m.logFile == "" {
			m.setFlash("Logging is off", false)
			return m, nil
		}
		return m, logsCmd(m.logFile)
	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme(1)
	case key.Matches(msg, m.keys.ToggleDark):
		return m, m.toggleDark()
	case key.Matches(msg, m.keys.Escape):
		m.flash = ""
		return m, nil
	}

	if m.tab == TabPreview {
		return m.handlePreviewKey(msg)
	}
	return m.handleEditorKey(msg)
}

// mutate applies fn to the document and schedules a save when it succeeds.
// Errors are shown in the status line and leave the document unchanged.
func (m *Model) mutate(fn func(d *schedule.Data) error) tea.Cmd {
	next := m.data.Clone()
	if err := fn(&next); err != nil {
		m.setFlash(err.Error(), true)
		return nil
	}
	m.data = next
	m.touch()
	return nil
}

// endDrag finishes a drag whose release will not reach the preview and
// saves where it left the image.
func (m *Model) endDrag() {
	if !m.drag.Active() {
		return
	}
	m.drag.End()
	m.touch()
}

// touch hands the current document to the saver.
func (m *Model) touch() {
	if m.saver != nil {
		m.saver.Schedule(m.data)
	}
}

func (m *Model) setFlash(text string, danger bool) {
	m.flash = text
	m.flashDanger = danger
}

// applySnapshot records save health and raises the storage warning once.
func (m *Model) applySnapshot(s state.Snapshot) {
	m.snapshot = s
	if s.QuotaWarned && !m.quotaShown {
		m.quotaShown = true
		m.setFlash("Storage is full: changes stay in this session but are not saved", true)
	}
}

// projection is the card as it would be exported now.
func (m Model) projection() render.Projection {
	return render.Project(m.data, m.themes.Current())
}

func (m *Model) cycleTheme(dir int) tea.Cmd {
	if dir == 0 {
		dir = 1
	}
	bases := render.BaseThemes()
	cur := m.themes.Current().BaseID()
	idx := 0
	for i, t := range bases {
		if t.ID == cur {
			idx = i
			break
		}
	}
	next := bases[((idx+dir)%len(bases)+len(bases))%len(bases)]
	m.themes.SetTheme(next.ID)
	m.theme = ThemeFor(m.themes.Current())
	return m.savePrefs()
}

func (m *Model) toggleDark() tea.Cmd {
	if !m.themes.ToggleDark() {
		m.setFlash(m.themes.Current().Name+" has no dark variant", false)
		return nil
	}
	m.theme = ThemeFor(m.themes.Current())
	return m.savePrefs()
}

func (m *Model) savePrefs() tea.Cmd {
	if m.store == nil {
		return nil
	}
	p := prefs.Prefs{ThemeID: m.themes.Current().BaseID(), DarkMode: m.themes.Dark()}
	return savePrefsCmd(m.ctx, m.store, p)
}

func (m *Model) clearImage() tea.Cmd {
	m.image = nil
	m.imageName = ""
	m.drag.End()
	m.mutate(func(d *schedule.Data) error { d.ClearImage(); return nil })
	if m.store == nil {
		return nil
	}
	return clearImageCmd(m.ctx, m.store)
}

func (m Model) handleImageLoaded(msg imageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("path", msg.path).Msg("load image")
		m.setFlash("Could not load image: "+msg.err.Error(), true)
		return m, nil
	}
	f := msg.file
	m.image = f.Image
	m.imageName = f.Name
	m.mutate(func(d *schedule.Data) error { d.SetImage(f.DataURI); return nil })
	m.setFlash("Loaded "+f.Name+" ("+formatBytes(f.Size)+")", false)
	if m.store == nil {
		return m, nil
	}
	rec := persist.ImageRecord{
		Name:       f.Name,
		Type:       f.Type,
		Size:       f.Size,
		Data:       f.DataURI,
		UploadedAt: time.Now().UTC(),
	}
	return m, saveImageCmd(m.ctx, m.store, rec)
}

func (m *Model) handleImageSaved(msg imageSavedMsg) {
	switch {
	case msg.err == nil:
	case errors.Is(msg.err, persist.ErrImageTooLarge):
		m.setFlash("Image is too large to keep after restart; it is used for this session only", true)
	default:
		log.Error().Err(msg.err).Msg("save image")
		m.setFlash("Could not save image: "+msg.err.Error(), true)
	}
}

func (m Model) handleImageRestored(msg imageRestoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if !errors.Is(msg.err, kv.ErrNotFound) {
			log.Warn().Err(msg.err).Msg("restore image")
		}
		return m, nil
	}
	// An upload that finished first wins.
	if m.data.HasImage() {
		return m, nil
	}
	m.image = msg.img
	m.imageName = msg.rec.Name
	m.mutate(func(d *schedule.Data) error { d.RestoreImage(msg.rec.Data); return nil })
	return m, nil
}

func (m Model) startExport(opts export.Options) (tea.Model, tea.Cmd) {
	m.exportOpts = opts
	if m.exporter == nil {
		m.setFlash("Export is not configured", true)
		return m, nil
	}
	if m.exporting || m.exporter.InProgress() {
		m.setFlash(export.ErrExportInProgress.Error(), true)
		return m, nil
	}
	var surface export.Surface
	if m.ready {
		surface = raster.NewCard(m.projection(), m.image)
	}
	m.exporting = true
	m.endDrag()
	m.setFlash("Exporting "+strings.ToUpper(string(opts.Format))+"…", false)
	return m, exportCmd(m.ctx, m.exporter, surface, m.data.Clone(), opts)
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	m.exporting = false
	if msg.err != nil {
		m.setFlash("Export failed: "+msg.err.Error(), true)
		return m, nil
	}
	where := msg.res.Plan.Filename
	if len(msg.res.Locations) > 0 {
		where = strings.Join(msg.res.Locations, ", ")
	}
	m.setFlash("Exported "+truncateMiddle(where, 80), false)
	return m, nil
}

// Run starts the Bubble Tea program and returns the final document.
func Run(opts Options) (schedule.Data, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		return fm.data, err
	}
	return m.data, err
}
