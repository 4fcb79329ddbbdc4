// Package logtail reads the end of the streamcard log file for the in-app log
// view.
//
// The logging package writes zerolog JSON lines to a file because the TUI owns
// the terminal. Tail keeps only the last N lines in a ring buffer, so a large
// log is never loaded whole, and Parse turns each line into an Entry with the
// time, level, message and remaining fields pulled apart. Lines that are not
// JSON are kept as raw text.
package logtail
