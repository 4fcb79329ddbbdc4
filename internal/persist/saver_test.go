package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/streamcard/internal/kv"
	"github.com/five82/streamcard/internal/schedule"
	"github.com/five82/streamcard/internal/state"
)

type recordingStore struct {
	mu     sync.Mutex
	writes [][]byte
	err    error
	wrote  chan struct{}
}

func newRecordingStore() *recordingStore {
	return &recordingStore{wrote: make(chan struct{}, 16)}
}

func (r *recordingStore) Get(context.Context, string) ([]byte, error) { return nil, kv.ErrNotFound }
func (r *recordingStore) Remove(context.Context, string) error        { return nil }
func (r *recordingStore) Close() error                                { return nil }

func (r *recordingStore) Set(_ context.Context, _ string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		r.wrote <- struct{}{}
		return r.err
	}
	r.writes = append(r.writes, append([]byte(nil), value...))
	r.wrote <- struct{}{}
	return nil
}

func (r *recordingStore) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func (r *recordingStore) last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[len(r.writes)-1]
}

func waitWrite(t *testing.T, r *recordingStore) {
	t.Helper()
	select {
	case <-r.wrote:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save")
	}
}

func TestSaver_CoalescesBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newRecordingStore()
	saver := NewSaver(store, nil, 30*time.Millisecond)
	saver.Start(ctx)

	d := schedule.Defaults()
	for _, title := range []string{"A", "B", "C"} {
		d.ScheduleTitle = title
		saver.Schedule(d)
	}
	waitWrite(t, store)
	time.Sleep(100 * time.Millisecond)

	if got := store.count(); got != 1 {
		t.Fatalf("writes = %d, want 1", got)
	}
	got, _ := Reconcile(store.last(), schedule.Defaults(), time.Now())
	if got.ScheduleTitle != "C" {
		t.Fatalf("saved title = %q, want last edit C", got.ScheduleTitle)
	}
	snap := saver.Status().Snapshot()
	if snap.Saves != 1 || snap.Pending {
		t.Fatalf("status = %+v", snap)
	}
}

func TestSaver_ScheduleCopiesDocument(t *testing.T) {
	store := newRecordingStore()
	saver := NewSaver(store, nil, time.Hour)

	d := schedule.Defaults()
	d.ScheduleTitle = "before"
	saver.Schedule(d)
	d.ScheduleTitle = "after"

	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got, _ := Reconcile(store.last(), schedule.Defaults(), time.Now())
	if got.ScheduleTitle != "before" {
		t.Fatalf("saved title = %q, want before", got.ScheduleTitle)
	}
}

func TestSaver_FlushWithoutPendingIsNoop(t *testing.T) {
	store := newRecordingStore()
	saver := NewSaver(store, nil, 0)
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("writes = %d, want 0", store.count())
	}
}

func TestSaver_QuotaFailureWarnsOnce(t *testing.T) {
	store := newRecordingStore()
	store.err = kv.ErrQuotaExceeded
	status := &state.Store{}
	saver := NewSaver(store, status, time.Hour)

	for i := 0; i < 2; i++ {
		saver.Schedule(schedule.Defaults())
		err := saver.Flush(context.Background())
		if !errors.Is(err, kv.ErrQuotaExceeded) {
			t.Fatalf("Flush = %v, want ErrQuotaExceeded", err)
		}
	}
	snap := status.Snapshot()
	if !snap.QuotaWarned || snap.ConsecutiveFailures != 2 || !snap.IsDegraded() {
		t.Fatalf("status = %+v", snap)
	}
	if status.WarnQuota() {
		t.Fatal("quota warning should already be spent")
	}
}
