// Package ui is the Bubble Tea editor for a weekly stream schedule card.
//
// The screen has two tabs. The Editor is a form of fields built from the
// current document on every render; each field carries closures that target
// the item it edits by id, so the form can be rebuilt freely. The Preview is
// a text projection of the card plus the image transform controls, driven by
// keys or a mouse drag.
//
// # Data flow
//
//  1. Every successful edit replaces the document with a mutated copy and
//     hands it to persist.Saver, which writes it once edits go quiet.
//  2. A tick re-reads state.Store so the header shows save health; a storage
//     quota failure is announced once.
//  3. Image uploads, image restore, preference writes and exports run as
//     tea.Cmds and report back with messages, so the UI never blocks on
//     storage or rasterization.
//
// Modals (text input, export options) and the help overlay take all keys
// while open.
package ui
