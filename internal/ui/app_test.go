package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

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

type harness struct {
	store  *kv.FileStore
	status *state.Store
	saver  *persist.Saver
}

func newHarness(t *testing.T) harness {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	status := &state.Store{}
	return harness{store: store, status: status, saver: persist.NewSaver(store, status, 0)}
}

func newTestModel(t *testing.T, h harness, d schedule.Data) Model {
	t.Helper()
	if d.StartDate == "" {
		if err := d.SetStartDate("2024-01-01"); err != nil {
			t.Fatal(err)
		}
	}
	m := New(Options{
		Context:  context.Background(),
		Data:     d,
		Prefs:    prefs.Defaults(),
		Store:    h.store,
		Saver:    h.saver,
		Status:   h.status,
		Exporter: export.NewExporter(export.DirSink{Dir: t.TempDir()}),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return next.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func focus(t *testing.T, m Model, label string) Model {
	t.Helper()
	for i, f := range m.fields() {
		if strings.TrimSpace(f.label) == label {
			m.cursor = i
			return m
		}
	}
	t.Fatalf("field %q not found", label)
	return m
}

func TestEditor_ToggleSchedulesSave(t *testing.T) {
	h := newHarness(t)
	m := focus(t, newTestModel(t, h, schedule.Defaults()), "Show artist")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if m.data.ShowArtist {
		t.Fatal("ShowArtist still on after toggle")
	}
	if !h.status.Snapshot().Pending {
		t.Fatal("toggle did not schedule a save")
	}
}

func TestEditor_TextModalSubmit(t *testing.T) {
	m := focus(t, newTestModel(t, newHarness(t), schedule.Defaults()), "Title")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	modal, ok := m.modal.(*textModal)
	if !ok {
		t.Fatalf("modal = %T, want *textModal", m.modal)
	}
	if got := modal.input.Value(); got != "SCHEDULE" {
		t.Fatalf("input = %q, want current title", got)
	}
	modal.input.SetValue("THIS WEEK")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil {
		t.Fatal("modal still open after enter")
	}
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	m, _ = send(t, m, cmd())
	if m.data.ScheduleTitle != "THIS WEEK" {
		t.Fatalf("title = %q, want THIS WEEK", m.data.ScheduleTitle)
	}
}

func TestEditor_InvalidTimeKeepsDocument(t *testing.T) {
	d := schedule.Defaults()
	e, err := d.AddEntry("Monday")
	if err != nil {
		t.Fatal(err)
	}
	m := focus(t, newTestModel(t, newHarness(t), d), "Time")
	f := m.fields()[m.cursor]

	f.set(&m, "25:00")
	if got := m.data.Schedule["Monday"][0].Time; got != e.Time {
		t.Fatalf("time = %q, want unchanged %q", got, e.Time)
	}
	if !m.flashDanger || !strings.Contains(m.flash, "HH:MM") {
		t.Fatalf("flash = %q (danger %v), want time error", m.flash, m.flashDanger)
	}

	f.set(&m, "7:30")
	if got := m.data.Schedule["Monday"][0].Time; got != "07:30" {
		t.Fatalf("time = %q, want 07:30", got)
	}
}

func TestEditor_AddEntryStopsAtLimit(t *testing.T) {
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, runes("a"))
	}
	if got := len(m.data.Schedule["Monday"]); got != schedule.MaxEntriesPerDay {
		t.Fatalf("entries = %d, want %d", got, schedule.MaxEntriesPerDay)
	}
	if !strings.Contains(m.flash, "2 entries") {
		t.Fatalf("flash = %q, want day full", m.flash)
	}

	m, _ = send(t, m, runes("]"))
	if m.day != 1 {
		t.Fatalf("day = %d, want 1", m.day)
	}
	m, _ = send(t, m, runes("a"))
	if got := len(m.data.Schedule["Tuesday"]); got != 1 {
		t.Fatalf("tuesday entries = %d, want 1", got)
	}
}

func TestEditor_RemoveEntry(t *testing.T) {
	d := schedule.Defaults()
	if _, err := d.AddEntry("Monday"); err != nil {
		t.Fatal(err)
	}
	m := focus(t, newTestModel(t, newHarness(t), d), "Remove entry")
	m, _ = send(t, m, runes("x"))
	if got := len(m.data.Schedule["Monday"]); got != 0 {
		t.Fatalf("entries = %d, want 0", got)
	}
}

func TestEditor_OfflineEntryFields(t *testing.T) {
	d := schedule.Defaults()
	if _, err := d.AddEntry("Monday"); err != nil {
		t.Fatal(err)
	}
	m := focus(t, newTestModel(t, newHarness(t), d), "Entry 1 type")
	m, _ = send(t, m, runes("l"))

	e := m.data.Schedule["Monday"][0]
	if !e.IsOffline() || e.OfflineText != schedule.DefaultOfflineText {
		t.Fatalf("entry = %+v, want offline with default text", e)
	}
	for _, f := range m.fields() {
		if strings.TrimSpace(f.label) == "Title" && f.section == "Monday" {
			t.Fatal("offline entry still shows a title field")
		}
	}
	focus(t, m, "Offline text")
}

func TestEditor_CycleTimezoneKeepsEnabled(t *testing.T) {
	m := focus(t, newTestModel(t, newHarness(t), schedule.Defaults()), "Zone 1")
	m, _ = send(t, m, runes("l"))
	if got := m.data.Timezones[0].ID; got != timezoneAfter("est") {
		t.Fatalf("zone 1 = %q, want %q", got, timezoneAfter("est"))
	}
	if !m.data.Timezones[0].Enabled {
		t.Fatal("changing the zone dropped its enabled flag")
	}
}

func TestPreview_KeysNeedImage(t *testing.T) {
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabPreview {
		t.Fatalf("tab = %v, want preview", m.tab)
	}
	m, _ = send(t, m, runes("+"))
	if !strings.Contains(m.flash, "image") {
		t.Fatalf("flash = %q, want image hint", m.flash)
	}
	if m.data.ImageTransform != transform.DefaultImage() {
		t.Fatal("transform changed without an image")
	}
}

func TestPreview_ForegroundControls(t *testing.T) {
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AAAA")
	m := newTestModel(t, newHarness(t), d)
	m.tab = TabPreview

	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRight},
		{Type: tea.KeyDown},
		runes("+"),
		runes("r"),
		runes("f"),
	} {
		m, _ = send(t, m, k)
	}
	got := m.data.ImageTransform
	want := transform.Image{X: 10, Y: 10, Scale: 1.1, Rotation: 90, FlipX: true}
	if got != want {
		t.Fatalf("transform = %+v, want %+v", got, want)
	}

	m, _ = send(t, m, runes("0"))
	if m.data.ImageTransform != transform.DefaultImage() {
		t.Fatalf("reset = %+v, want default", m.data.ImageTransform)
	}
}

func TestPreview_BackgroundPresets(t *testing.T) {
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AAAA")
	d.TransparentBackground = true
	m := newTestModel(t, newHarness(t), d)
	m.tab = TabPreview

	m, _ = send(t, m, runes("1"))
	m, _ = send(t, m, runes("+"))
	m, _ = send(t, m, runes("r"))
	want := transform.Background{Scale: 1.1, PositionX: 0, PositionY: 0}
	if got := m.data.BackgroundTransform; got != want {
		t.Fatalf("background = %+v, want %+v", got, want)
	}
	if m.data.ImageTransform != transform.DefaultImage() {
		t.Fatal("rotate touched the foreground transform in background mode")
	}
}

func TestPreview_MouseDrag(t *testing.T) {
	h := newHarness(t)
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AAAA")
	m := newTestModel(t, h, d)
	m.tab = TabPreview

	m, _ = send(t, m, tea.MouseMsg{X: 80, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.drag.Active() {
		t.Fatal("drag did not start")
	}
	m, _ = send(t, m, tea.MouseMsg{X: 90, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{X: 90, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	// 10 cells of a 160 cell wide preview is 100 canvas pixels.
	if got := m.data.ImageTransform.X; got != 100 {
		t.Fatalf("X = %v, want 100", got)
	}
	if m.drag.Active() {
		t.Fatal("drag still active after release")
	}
	if !h.status.Snapshot().Pending {
		t.Fatal("drag end did not schedule a save")
	}
}

func TestPreview_MouseDragBlockedInBackgroundMode(t *testing.T) {
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AAAA")
	d.TransparentBackground = true
	m := newTestModel(t, newHarness(t), d)
	m.tab = TabPreview

	m, _ = send(t, m, tea.MouseMsg{X: 80, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.drag.Active() {
		t.Fatal("drag started in full background mode")
	}
}

func TestThemeCycleSavesPrefs(t *testing.T) {
	h := newHarness(t)
	m := newTestModel(t, h, schedule.Defaults())

	m, cmd := send(t, m, runes("T"))
	bases := render.BaseThemes()
	if got := m.themes.Current().ID; got != bases[1].ID {
		t.Fatalf("theme = %q, want %q", got, bases[1].ID)
	}
	if cmd == nil {
		t.Fatal("theme change returned no save command")
	}
	if msg := cmd().(prefsSavedMsg); msg.err != nil {
		t.Fatalf("save prefs: %v", msg.err)
	}

	m, cmd = send(t, m, runes("D"))
	if !m.themes.Dark() {
		t.Fatal("dark mode not enabled")
	}
	_ = cmd()

	p := prefs.Load(context.Background(), h.store)
	if p.ThemeID != bases[1].ID || !p.DarkMode {
		t.Fatalf("prefs = %+v, want %s dark", p, bases[1].ID)
	}
}

func TestImageLoaded_ResetsTransformAndPersists(t *testing.T) {
	h := newHarness(t)
	d := schedule.Defaults()
	d.ImageTransform = transform.Image{X: 40, Scale: 2}
	m := newTestModel(t, h, d)

	file := raster.ImageFile{Name: "me.png", Type: "image/png", Size: 4, DataURI: "data:image/png;base64,AAAA"}
	m, cmd := send(t, m, imageLoadedMsg{path: "/tmp/me.png", file: file})
	if !m.data.HasImage() || *m.data.BackgroundImage != file.DataURI {
		t.Fatal("image not installed")
	}
	if m.data.ImageTransform != transform.DefaultImage() {
		t.Fatalf("transform = %+v, want default after upload", m.data.ImageTransform)
	}
	if cmd == nil {
		t.Fatal("upload returned no save command")
	}
	m, _ = send(t, m, cmd())
	if m.flashDanger {
		t.Fatalf("flash = %q, want no error", m.flash)
	}

	rec, err := persist.LoadImage(context.Background(), h.store)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if rec.Name != "me.png" || rec.Data != file.DataURI {
		t.Fatalf("record = %+v", rec)
	}
}

func TestImageSaved_TooLargeWarns(t *testing.T) {
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m, _ = send(t, m, imageSavedMsg{err: persist.ErrImageTooLarge})
	if !m.flashDanger || !strings.Contains(m.flash, "this session only") {
		t.Fatalf("flash = %q, want session-only warning", m.flash)
	}
}

func TestImageRestored_KeepsTransform(t *testing.T) {
	d := schedule.Defaults()
	d.ImageTransform = transform.Image{X: 12, Scale: 1.5}
	m := newTestModel(t, newHarness(t), d)

	rec := persist.ImageRecord{Name: "old.png", Data: "data:image/png;base64,AAAA"}
	m, _ = send(t, m, imageRestoredMsg{rec: rec})
	if !m.data.HasImage() {
		t.Fatal("image not restored")
	}
	if m.data.ImageTransform.X != 12 || m.data.ImageTransform.Scale != 1.5 {
		t.Fatalf("transform = %+v, want kept", m.data.ImageTransform)
	}

	other := persist.ImageRecord{Name: "late.png", Data: "data:image/png;base64,BBBB"}
	m, _ = send(t, m, imageRestoredMsg{rec: other})
	if *m.data.BackgroundImage != rec.Data {
		t.Fatal("a late restore replaced the current image")
	}
}

func TestImageRestored_FailureIgnored(t *testing.T) {
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m, _ = send(t, m, imageRestoredMsg{err: kv.ErrNotFound})
	m, _ = send(t, m, imageRestoredMsg{err: errors.New("disk on fire")})
	if m.data.HasImage() || m.flash != "" {
		t.Fatalf("restore failure changed state: image=%v flash=%q", m.data.HasImage(), m.flash)
	}
}

func TestExport_WritesFileAndGates(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m.exporter = export.NewExporter(export.DirSink{Dir: dir})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if _, ok := m.modal.(*exportModal); !ok {
		t.Fatalf("modal = %T, want *exportModal", m.modal)
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("confirm returned no command")
	}
	m, exportRun := send(t, m, cmd())
	if !m.exporting || exportRun == nil {
		t.Fatal("export did not start")
	}

	again, _ := m.startExport(export.DefaultOptions())
	if got := again.(Model).flash; got != export.ErrExportInProgress.Error() {
		t.Fatalf("second export flash = %q, want in-progress", got)
	}

	m, _ = send(t, m, exportRun())
	if m.exporting {
		t.Fatal("exporting flag not cleared")
	}
	if m.flashDanger {
		t.Fatalf("export failed: %s", m.flash)
	}
	want := dir + "/stream-schedule-2024-01-01-to-2024-01-07.png"
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("export file: %v", err)
	}
}

func TestExport_NotReadyHasNoPreview(t *testing.T) {
	m := New(Options{Data: schedule.Defaults(), Exporter: export.NewExporter(export.DirSink{Dir: t.TempDir()})})
	next, cmd := m.startExport(export.DefaultOptions())
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)
	if !m.flashDanger || !strings.Contains(m.flash, "preview not found") {
		t.Fatalf("flash = %q, want preview not found", m.flash)
	}
}

func TestQuotaWarningShownOnce(t *testing.T) {
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m.applySnapshot(state.Snapshot{QuotaWarned: true})
	if !strings.Contains(m.flash, "Storage is full") {
		t.Fatalf("flash = %q, want quota warning", m.flash)
	}
	m.flash = ""
	m.applySnapshot(state.Snapshot{QuotaWarned: true})
	if m.flash != "" {
		t.Fatalf("quota warning repeated: %q", m.flash)
	}
}

func TestView_Renders(t *testing.T) {
	d := schedule.Defaults()
	if _, err := d.AddEntry("Monday"); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, newHarness(t), d)

	if out := m.View(); !strings.Contains(out, "Show artist") {
		t.Fatal("editor view missing fields")
	}
	m.tab = TabPreview
	if out := m.View(); !strings.Contains(out, "SCHEDULE") || !strings.Contains(out, "(EST)") {
		t.Fatal("preview missing title or badges")
	}
	m.showHelp = true
	if out := m.View(); !strings.Contains(out, "Keyboard Shortcuts") {
		t.Fatal("help overlay missing")
	}
	m.showHelp = false
	m.modal = newExportModal(export.DefaultOptions())
	if out := m.View(); !strings.Contains(out, "1600×900") {
		t.Fatal("export modal missing plan size")
	}
}

func TestLogView(t *testing.T) {
	path := t.TempDir() + "/streamcard.log"
	line := `{"level":"error","error":"kv: storage quota exceeded","time":"2024-01-01T10:00:00Z","message":"schedule save failed"}`
	if err := os.WriteFile(path, []byte(line+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m.logFile = path

	m, cmd := send(t, m, runes("L"))
	if cmd == nil {
		t.Fatal("L returned no command")
	}
	m, _ = send(t, m, cmd())
	if _, ok := m.modal.(*logModal); !ok {
		t.Fatalf("modal = %T, want *logModal", m.modal)
	}
	if out := m.View(); !strings.Contains(out, "schedule save failed") {
		t.Fatal("log view missing entry")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil {
		t.Fatal("esc did not close the log view")
	}
}

func TestLogView_Disabled(t *testing.T) {
	m := newTestModel(t, newHarness(t), schedule.Defaults())
	m, cmd := send(t, m, runes("L"))
	if cmd != nil || m.flash != "Logging is off" {
		t.Fatalf("flash = %q, want logging off", m.flash)
	}
}

func TestPreview_DragEndsWhenPreviewLosesFocus(t *testing.T) {
	h := newHarness(t)
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AAAA")
	m := newTestModel(t, h, d)
	m.tab = TabPreview

	m, _ = send(t, m, tea.MouseMsg{X: 80, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{X: 85, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.drag.Active() {
		t.Fatal("drag still active after leaving the preview")
	}
	if !h.status.Snapshot().Pending {
		t.Fatal("ending the drag did not schedule a save")
	}

	// Back on the preview a fresh press starts from the current offset.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.MouseMsg{X: 10, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{X: 12, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.data.ImageTransform.X; got != 70 {
		t.Fatalf("X = %v, want 70", got)
	}
}

func TestPreview_ReleaseOutsidePreviewEndsDrag(t *testing.T) {
	d := schedule.Defaults()
	d.SetImage("data:image/png;base64,AAAA")
	m := newTestModel(t, newHarness(t), d)
	m.tab = TabPreview

	m, _ = send(t, m, tea.MouseMsg{X: 80, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.modal = newExportModal(export.DefaultOptions())
	m, _ = send(t, m, tea.MouseMsg{X: 80, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.drag.Active() {
		t.Fatal("release under a modal left the drag active")
	}
}
