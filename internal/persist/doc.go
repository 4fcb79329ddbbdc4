// Package persist loads and saves the schedule document through a kv.Store.
//
// # Keys
//
// Three keys are used, named after the browser storage keys older versions
// wrote so that exported data stays interchangeable:
//
//	schedule-maker-data   the schedule document (DataKey)
//	schedule-maker-image  the last uploaded image (ImageKey)
//	schedule-maker-theme  display theme preference, owned by package prefs
//
// # Loading
//
// Reconcile turns whatever bytes were stored under DataKey into a valid
// document. It never fails the load: a missing or unreadable snapshot yields
// the defaults for the current week, and the returned error (wrapping
// ErrCorruptSnapshot) only exists so the caller can log it.
//
// A snapshot goes through three steps:
//
//  1. Migrations, keyed on the "version" field (absent means 0).
//  2. A shallow merge: every top-level key present in the snapshot replaces
//     the default.
//  3. schedule.Data.Normalize, which clamps the result back into the
//     document's limits.
//
// Reconcile is idempotent: reconciling the encoding of a reconciled document
// yields the same document.
//
// # Saving
//
// The Saver debounces writes. Every edit restarts the quiet window and only the
// latest document is written when it elapses; nothing is queued. Write
// failures are reported to the state.Store and the log and never roll back the
// editor's in-memory document.
package persist
