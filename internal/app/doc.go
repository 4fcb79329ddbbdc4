// Package app provides the orchestration layer for streamcard.
//
// # Overview
//
// This package wires together configuration, logging, storage, the save
// loop and the UI. It is the composition root where every dependency is
// built and connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load .env and ~/.config/streamcard/config.toml
//  2. Point the zerolog logger at the log file
//  3. Open the key-value store (file or redis)
//  4. Load theme preferences and reconcile the saved schedule
//  5. Either export headlessly, or start the saver and the TUI
//  6. On quit, flush the last edit so the debounce window never drops it
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config and env overrides
//	       ├─────> logging.Init()         JSON lines to the log file
//	       ├─────> openStore()            kv.FileStore or kv.RedisStore
//	       ├─────> persist.LoadSchedule() Key A, migrated and merged
//	       ├─────> saver.Start()          Debounced writes
//	       └─────> ui.Run()               Start TUI (blocks)
//
//	Save loop:
//	┌─────────────────────────────────────────┐
//	│ Saver goroutine                         │
//	│  ├─> wait for a quiet period            │
//	│  ├─> persist.SaveSchedule()             │
//	│  └─> status.Update()                    │
//	│      └─> UI reads status.Snapshot()     │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid
//   - Log file or storage backend cannot be opened
//   - A headless export fails
//
// Recoverable errors (logged, the editor keeps going):
//   - A corrupt saved schedule, replaced by defaults
//   - Save failures, surfaced in the header
//   - A missing or unreadable saved image
package app
