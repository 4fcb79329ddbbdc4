package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_UpdateSuccess(t *testing.T) {
	var s Store

	s.MarkPending()
	if !s.Snapshot().Pending {
		t.Fatal("Pending = false after MarkPending")
	}

	before := time.Now()
	s.Update(nil)

	snap := s.Snapshot()
	if snap.Pending {
		t.Fatal("Pending = true after save")
	}
	if snap.Saves != 1 {
		t.Fatalf("Saves = %d, want 1", snap.Saves)
	}
	if snap.LastSaved.Before(before) {
		t.Fatalf("LastSaved = %v, want >= %v", snap.LastSaved, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_UpdateErrorKeepsLastSaved(t *testing.T) {
	var s Store

	s.Update(nil)
	prev := s.Snapshot()

	origErr := errors.New("disk full")
	s.Update(origErr)

	snap := s.Snapshot()
	if !snap.LastSaved.Equal(prev.LastSaved) {
		t.Fatalf("LastSaved changed on error: got %v want %v", snap.LastSaved, prev.LastSaved)
	}
	if snap.Saves != 1 {
		t.Fatalf("Saves = %d, want 1", snap.Saves)
	}
	if snap.LastError == nil || snap.LastError.Error() != "disk full" {
		t.Fatalf("LastError = %v, want disk full", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsDegraded() {
		t.Fatal("IsDegraded() = true, want false with 0 failures")
	}

	s.Update(errors.New("fail 1"))
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsDegraded() {
		t.Fatalf("after 1 failure: failures=%d degraded=%v", snap.ConsecutiveFailures, snap.IsDegraded())
	}

	s.Update(errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsDegraded() {
		t.Fatalf("after 2 failures: failures=%d degraded=%v", snap.ConsecutiveFailures, snap.IsDegraded())
	}

	s.Update(nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsDegraded() {
		t.Fatalf("after success: failures=%d degraded=%v", snap.ConsecutiveFailures, snap.IsDegraded())
	}
}

func TestStore_WarnQuotaOnce(t *testing.T) {
	var s Store

	if !s.WarnQuota() {
		t.Fatal("first WarnQuota() = false, want true")
	}
	if s.WarnQuota() {
		t.Fatal("second WarnQuota() = true, want false")
	}
	if !s.Snapshot().QuotaWarned {
		t.Fatal("QuotaWarned = false")
	}
}
