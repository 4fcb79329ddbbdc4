// Package state holds the thread-safe save status shared between the
// persistence goroutine and the UI.
//
// # Overview
//
// The saver writes the schedule in the background after each debounce window.
// The UI never waits on it; instead it reads a Snapshot on every tick and shows
// whether the last save succeeded, how many failures happened in a row and
// whether the storage quota warning has already been shown.
//
//	Producer (Saver):              Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ MarkPending()  │            │                 │
//	│ kv.Set(...)    │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   └─────────────────┘
//
// # Update Semantics
//
//	store.Update(nil)
//	→ snapshot.LastSaved = now
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	store.Update(err)
//	→ snapshot.LastSaved = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A failed save never touches the in-memory schedule; the editor keeps working
// and the next edit retries.
//
// # Quota Warning
//
// WarnQuota returns true exactly once per Store so the user sees the "storage
// full" notice a single time per session.
//
// The zero Store is ready to use.
package state
